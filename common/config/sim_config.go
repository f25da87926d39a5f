package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type SimConfiguration struct {
	AppName      string `mapstructure:"appName"`
	MetricPort   int    `mapstructure:"metricPort"`
	LogConf      `mapstructure:"log"`
	SimConf      `mapstructure:"sim"`
	CacheConf    `mapstructure:"cache"`
	DatabaseConf `mapstructure:"database"`

	// Source 实际读取的配置文件，为空表示只用了默认值和环境变量
	Source string `mapstructure:"-"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// SimConf 批量模拟参数，命令行 flag 可以覆盖
type SimConf struct {
	Trials     int    `mapstructure:"trials"`
	DrawBudget *int   `mapstructure:"drawBudget"` // 未设置时按牌型取默认值，0 表示不摸牌
	FinalDraw  *bool  `mapstructure:"finalDraw"`  // 未设置时按牌型取默认值
	Shape      string `mapstructure:"shape"`
	Seed       int64  `mapstructure:"seed"` // 0 表示用当前时间
	Workers    int    `mapstructure:"workers"`
}

type CacheConf struct {
	Enabled    bool  `mapstructure:"enabled"`
	MaxEntries int64 `mapstructure:"maxEntries"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "sim")
	v.SetDefault("metricPort", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("sim.trials", 100000)
	v.SetDefault("sim.shape", "spaced7")
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.workers", 0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.maxEntries", 1<<18)
	v.SetDefault("database.mongo.url", "")
	v.SetDefault("database.mongo.db", "mahjong_sim")
	v.SetDefault("database.mongo.username", "")
	v.SetDefault("database.mongo.password", "")
	v.SetDefault("database.mongo.minPoolSize", 1)
	v.SetDefault("database.mongo.maxPoolSize", 4)
}

// Load 读取 yml 配置，环境变量覆盖文件，例如 SIM_TRIALS=1000
// 配置文件不存在时退回默认值，其它读取错误直接返回
func Load(configFile string) (*SimConfiguration, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// 没有默认值的 key 需要显式绑定才会读环境变量
	_ = v.BindEnv("sim.drawBudget")
	_ = v.BindEnv("sim.finalDraw")

	source := ""
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("读取配置文件 %s 失败: %w", configFile, err)
			}
		} else {
			source = v.ConfigFileUsed()
		}
	}

	var cfg SimConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.Source = source
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *SimConfiguration) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("%w: sim.trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.DrawBudget != nil && *c.DrawBudget < 0 {
		return fmt.Errorf("%w: sim.drawBudget must not be negative, got %d", ErrInvalidConfig, *c.DrawBudget)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: sim.workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.CacheConf.Enabled && c.MaxEntries <= 0 {
		return fmt.Errorf("%w: cache.maxEntries must be positive when the cache is enabled", ErrInvalidConfig)
	}
	return nil
}

// MongoEnabled 未配置 url 时不落库
func (c *SimConfiguration) MongoEnabled() bool {
	return c.DatabaseConf.MongoConf.Url != ""
}
