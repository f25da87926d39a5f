package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mahjongsim/common/cache"
	"mahjongsim/common/config"
	"mahjongsim/common/database"
	"mahjongsim/common/log"
	"mahjongsim/core/domain/repository"
	"mahjongsim/core/infrastructure/persistence"
	"mahjongsim/framework/game/engines/mahjong"
	"mahjongsim/runtime/sim"
)

var (
	ErrNoRecordStore = errors.New("mongo is not configured")
	ErrInvalidLimit  = errors.New("history limit must be positive")
)

// App 持有一次命令执行期间共享的资源
type App struct {
	conf     *config.SimConfiguration
	searcher *mahjong.Searcher
	cache    *cache.ScoreCache
	mongo    *database.MongoManager
	records  repository.RunRecordRepository
	out      io.Writer
}

// New 按配置创建评分缓存和 mongo 连接，两者都是可选的
func New(ctx context.Context, conf *config.SimConfiguration, out io.Writer) (*App, error) {
	a := &App{conf: conf, searcher: mahjong.NewSearcher(), out: out}
	if conf.CacheConf.Enabled {
		c, err := cache.NewScoreCache(conf.MaxEntries)
		if err != nil {
			return nil, err
		}
		a.cache = c
		a.searcher = mahjong.NewCachedSearcher(c)
	}
	if conf.MongoEnabled() {
		m, err := database.NewMongo(ctx, conf.DatabaseConf.MongoConf)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mongo = m
		a.records = persistence.NewRunRecordRepository(m)
		log.Info("模拟记录将写入 mongo db=%s", conf.DatabaseConf.MongoConf.Db)
	}
	return a, nil
}

// NewOffline 不带缓存和 mongo，用于单手牌判定
func NewOffline(out io.Writer) *App {
	return &App{conf: &config.SimConfiguration{}, searcher: mahjong.NewSearcher(), out: out}
}

func (a *App) Close() error {
	if a.cache != nil {
		a.cache.Close()
	}
	return a.mongo.Close()
}

// Options 由配置生成批量模拟参数
func Options(mode sim.Mode, conf *config.SimConfiguration) (sim.Options, error) {
	opts := sim.Options{
		Mode:             mode,
		Trials:           conf.Trials,
		Workers:          conf.Workers,
		Seed:             conf.Seed,
		ProgressInterval: 5 * time.Second,
	}
	if mode == sim.ModeComposition {
		return opts, nil
	}
	shape, err := mahjong.ParseShape(conf.Shape)
	if err != nil {
		return opts, err
	}
	opts.Round = mahjong.DefaultRoundConfig(shape)
	if conf.DrawBudget != nil {
		opts.Round.DrawBudget = *conf.DrawBudget
	}
	if conf.FinalDraw != nil {
		opts.Round.FinalDraw = *conf.FinalDraw
	}
	return opts, nil
}

// Simulate 运行、输出并保存报告，被中断时部分结果同样输出和保存
func (a *App) Simulate(ctx context.Context, opts sim.Options) (*sim.Report, error) {
	runner, err := sim.NewRunner(opts, a.searcher)
	if err != nil {
		return nil, err
	}
	report, runErr := runner.Run(ctx)
	if report == nil {
		return nil, runErr
	}
	RenderReport(a.out, report)

	if a.records != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.records.SaveRunRecord(saveCtx, report.Record()); err != nil {
			log.Warn("保存模拟记录失败 run=%s: %v", report.RunID, err)
		} else {
			log.Info("模拟记录已保存 run=%s", report.RunID)
		}
	}
	return report, runErr
}

// Check 判定命令行给出的一手牌
func (a *App) Check(tokens []string, discardShape mahjong.Shape, lenient bool) (CheckResult, error) {
	var split []string
	for _, tok := range tokens {
		split = append(split, mahjong.SplitTiles(tok)...)
	}
	var (
		hand    []mahjong.Tile
		skipped []string
	)
	if lenient {
		hand, skipped = mahjong.ParseHandLenient(split)
		for _, s := range skipped {
			log.Warn("忽略非法牌 %q", s)
		}
	} else {
		var err error
		if hand, err = mahjong.ParseHand(split); err != nil {
			return CheckResult{}, err
		}
	}
	if len(hand) == 0 {
		return CheckResult{}, fmt.Errorf("%w: empty hand", mahjong.ErrInvalidHandSize)
	}
	res := Inspect(hand, discardShape, a.searcher)
	res.Skipped = skipped
	RenderCheck(a.out, res, discardShape)
	return res, nil
}

func (a *App) History(ctx context.Context, mode string, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if a.records == nil {
		return ErrNoRecordStore
	}
	records, err := a.records.FindRecentRunRecords(ctx, mode, limit)
	if err != nil {
		return err
	}
	RenderHistory(a.out, records)
	return nil
}

// ShowRun 按 run id 输出一条记录及其分布
func (a *App) ShowRun(ctx context.Context, runID string) error {
	if a.records == nil {
		return ErrNoRecordStore
	}
	record, err := a.records.FindRunRecord(ctx, runID)
	if err != nil {
		return err
	}
	RenderRunRecord(a.out, record)
	return nil
}

// Run 执行 job，收到中断信号时取消 ctx 并等待 job 收尾，最多 5 秒
func Run(ctx context.Context, job func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- job(ctx)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)

	select {
	case err := <-done:
		return err
	case s := <-c:
		log.Info("收到信号 %s，停止模拟...", s)
		cancel()
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	select {
	case err := <-done:
		return err
	case <-shutdownCtx.Done():
		log.Warn("等待模拟退出超时（5秒）")
		return context.Canceled
	}
}
