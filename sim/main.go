package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mahjongsim/common/config"
	"mahjongsim/common/log"
	"mahjongsim/common/metrics"
	"mahjongsim/framework/game/engines/mahjong"
	"mahjongsim/runtime/sim"
	"mahjongsim/sim/app"

	"github.com/spf13/cobra"
)

// 加载配置 -> 命令行覆盖 -> 启动监控 -> 执行子命令

var (
	configFile string
	conf       *config.SimConfiguration

	trials     int
	drawBudget int
	finalDraw  bool
	shape      string
	seed       int64
	workers    int
	logLevel   string
	metricPort int

	lenient      bool
	historyMode  string
	historyLimit int
	historyRun   string
)

var rootCmd = &cobra.Command{
	Use:           "sim",
	Short:         "sim 麻将牌型蒙特卡洛模拟",
	Long:          `sim 估计随机手牌与打烂、打烂七字、七对子等牌型的距离，并模拟摸打过程的成功率`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load(configFile)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := conf.Validate(); err != nil {
			return err
		}
		log.InitLog(conf.AppName, conf.Level)
		if conf.Source == "" {
			log.Debug("未找到配置文件 %s，使用默认配置", configFile)
		}
		log.Debug("模拟参数: trials=%d shape=%s workers=%d seed=%d cache=%v mongo=%v",
			conf.Trials, conf.Shape, conf.Workers, conf.Seed, conf.CacheConf.Enabled, conf.MongoEnabled())

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}
		return nil
	},
}

// applyFlags 只有显式给出的 flag 才覆盖配置文件
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("trials") {
		conf.Trials = trials
	}
	if flags.Changed("drawBudget") {
		conf.DrawBudget = &drawBudget
	}
	if flags.Changed("finalDraw") {
		conf.FinalDraw = &finalDraw
	}
	if flags.Changed("shape") {
		conf.Shape = shape
	}
	if flags.Changed("seed") {
		conf.Seed = seed
	}
	if flags.Changed("workers") {
		conf.Workers = workers
	}
	if flags.Changed("logLevel") {
		conf.Level = logLevel
	}
	if flags.Changed("metricPort") {
		conf.MetricPort = metricPort
	}
}

func simulate(mode sim.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := app.Options(mode, conf)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			_, err := a.Simulate(ctx, opts)
			return err
		})
	}
}

func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.New(ctx, conf, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("关闭资源失败: %v", err)
		}
	}()
	return app.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, a)
	})
}

var shantenCmd = &cobra.Command{
	Use:   "shanten",
	Short: "随机 14 张手牌的打烂距离分布",
	RunE:  simulate(sim.ModeShanten),
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "从牌山摸打直到达成目标牌型，统计成功率",
	RunE:  simulate(sim.ModeRounds),
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "七对子摸打模拟，等价于 rounds --shape pairs",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf.Shape = mahjong.ShapeSevenPairs.String()
		return simulate(sim.ModeRounds)(cmd, args)
	},
}

var compositionCmd = &cobra.Command{
	Use:   "composition",
	Short: "随机 14 张手牌的字牌、幺九、对子数量分布",
	RunE:  simulate(sim.ModeComposition),
}

var checkCmd = &cobra.Command{
	Use:   "check <tiles...>",
	Short: "判定一手牌，例如 sim check 1m4m7m 1p4p7p 1s4s7s 1z2z3z4z5z",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		discardShape, err := mahjong.ParseShape(conf.Shape)
		if err != nil {
			return err
		}
		_, err = app.NewOffline(os.Stdout).Check(args, discardShape, lenient)
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近保存到 mongo 的模拟记录，--run 查看单条记录详情",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyMode != "" {
			if _, err := sim.ParseMode(historyMode); err != nil {
				return err
			}
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if historyRun != "" {
				return a.ShowRun(ctx, historyRun)
			}
			return a.History(ctx, historyMode, historyLimit)
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "configFile", "resource/application.yml", "config file")
	pf.IntVar(&trials, "trials", 0, "number of simulated hands or rounds")
	pf.IntVar(&drawBudget, "drawBudget", 0, "draws per round, the shape default when omitted")
	pf.BoolVar(&finalDraw, "finalDraw", false, "one extra draw after the budget is spent")
	pf.StringVar(&shape, "shape", "", "target shape: spaced, spaced7, pairs")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 uses the current time")
	pf.IntVar(&workers, "workers", 0, "worker goroutines, 0 uses the logical cpu count")
	pf.StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	pf.IntVar(&metricPort, "metricPort", 0, "statsviz port, 0 disables it")

	checkCmd.Flags().BoolVar(&lenient, "lenient", false, "skip malformed tiles instead of failing")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "filter by mode: shanten, rounds, composition")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of records, must be positive")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "show one record by run id")

	rootCmd.AddCommand(shantenCmd, roundsCmd, pairsCmd, compositionCmd, checkCmd, historyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("模拟被中断")
			os.Exit(130)
		}
		log.Error("发生异常: %v", err)
		os.Exit(1)
	}
}
