package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"mahjongsim/common/log"
	"mahjongsim/framework/game/engines/mahjong"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Mode int

const (
	ModeShanten     Mode = iota + 1 // 随机 14 张的打烂距离分布
	ModeRounds                      // 摸打模拟的成功率
	ModeComposition                 // 字牌、幺九、对子数量分布
)

func (m Mode) String() string {
	switch m {
	case ModeShanten:
		return "shanten"
	case ModeRounds:
		return "rounds"
	case ModeComposition:
		return "composition"
	default:
		return "unknown"
	}
}

func (m Mode) IsValid() bool {
	return m >= ModeShanten && m <= ModeComposition
}

var (
	ErrUnknownMode   = errors.New("unknown simulation mode")
	ErrInvalidTrials = errors.New("trials must be positive")
)

func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shanten":
		return ModeShanten, nil
	case "rounds":
		return ModeRounds, nil
	case "composition":
		return ModeComposition, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

type Options struct {
	Mode    Mode
	Round   mahjong.RoundConfig // shanten 模式只用其中的 Shape
	Trials  int
	Workers int   // 0 表示按逻辑 CPU 数
	Seed    int64 // 0 表示用当前时间
	// ProgressInterval 为 0 时不输出进度
	ProgressInterval time.Duration
}

// Runner 把 Trials 次试验分给多个 worker 并发执行
// worker i 使用种子 Seed+i，相同 (Seed, Workers, Trials) 的结果可以复现
type Runner struct {
	opts     Options
	vocab    *mahjong.Vocabulary
	searcher *mahjong.Searcher

	done      atomic.Int64
	successes atomic.Int64
}

func NewRunner(opts Options, searcher *mahjong.Searcher) (*Runner, error) {
	if !opts.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, opts.Mode)
	}
	if opts.Trials <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, opts.Trials)
	}
	if opts.Mode != ModeComposition && !opts.Round.Shape.IsValid() {
		return nil, fmt.Errorf("%w: %d", mahjong.ErrUnknownShape, opts.Round.Shape)
	}
	if opts.Mode == ModeShanten && !opts.Round.Shape.HasEstimator() {
		return nil, fmt.Errorf("%w: %s", mahjong.ErrNoEstimator, opts.Round.Shape)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers()
	}
	if opts.Workers > opts.Trials {
		opts.Workers = opts.Trials
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if searcher == nil {
		searcher = mahjong.NewSearcher()
	}
	return &Runner{
		opts:     opts,
		vocab:    mahjong.NewVocabulary(),
		searcher: searcher,
	}, nil
}

func (r *Runner) Options() Options {
	return r.opts
}

// Progress 已完成的试验数和其中成功的数量
func (r *Runner) Progress() (done, successes int64) {
	return r.done.Load(), r.successes.Load()
}

// share 把余数分给前面的 worker
func share(trials, workers, i int) int {
	n := trials / workers
	if i < trials%workers {
		n++
	}
	return n
}

// Run 被取消时返回已完成部分的报告和 ctx 的错误
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Mode:      r.opts.Mode,
		Round:     r.opts.Round,
		Requested: r.opts.Trials,
		Workers:   r.opts.Workers,
		Seed:      r.opts.Seed,
		StartedAt: time.Now(),
	}
	log.Info("开始模拟 run=%s mode=%s shape=%s trials=%d workers=%d seed=%d",
		report.RunID, r.opts.Mode, r.opts.Round.Shape, r.opts.Trials, r.opts.Workers, r.opts.Seed)

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	if r.opts.ProgressInterval > 0 {
		go NewMonitor(r, r.opts.ProgressInterval).Start(monitorCtx)
	}

	tallies := make([]*Tally, r.opts.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.opts.Workers; i++ {
		tallies[i] = NewTally()
		n := share(r.opts.Trials, r.opts.Workers, i)
		rng := rand.New(rand.NewSource(r.opts.Seed + int64(i)))
		g.Go(func() error {
			return r.work(gctx, n, rng, tallies[i])
		})
	}
	err := g.Wait()
	stopMonitor()

	total := NewTally()
	for _, t := range tallies {
		total.Merge(t)
	}
	report.Tally = total
	report.Elapsed = time.Since(report.StartedAt)
	report.Host = SnapshotHost()
	if err != nil {
		report.Cancelled = errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		log.Warn("模拟中断 run=%s 完成 %d/%d: %v", report.RunID, total.Trials, r.opts.Trials, err)
		return report, err
	}
	log.Info("模拟完成 run=%s 成功 %d/%d 耗时 %s", report.RunID, total.Successes, total.Trials, report.Elapsed)
	return report, nil
}

func (r *Runner) work(ctx context.Context, n int, rng *rand.Rand, t *Tally) error {
	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := t.Successes
		r.trial(rng, t)
		r.done.Add(1)
		if t.Successes > before {
			r.successes.Add(1)
		}
	}
	return nil
}

// trial 单次出错只记为失败，不影响整批
func (r *Runner) trial(rng *rand.Rand, t *Tally) {
	t.Trials++
	switch r.opts.Mode {
	case ModeShanten:
		hand := mahjong.RandomHand(r.vocab, rng, mahjong.HandSize)
		d, err := r.searcher.ApproximateDistance(hand, r.opts.Round.Shape)
		if err != nil {
			t.Faults++
			log.Warn("估计距离失败 hand=%s: %v", mahjong.TilesName(hand), err)
			return
		}
		t.Distance.Add(d)
		// spaced7 的距离不含缺字数，是否和牌以判定为准
		if ok, _ := mahjong.Satisfies(hand, r.opts.Round.Shape); ok {
			t.Successes++
		}
	case ModeRounds:
		res, err := mahjong.SimulateRound(r.opts.Round, r.vocab, r.searcher, rng)
		if err != nil {
			t.Faults++
			log.Warn("模拟局出错 state=%s: %v", res.FinalState, err)
			return
		}
		if res.WallEmpty {
			t.WallEmpty++
		}
		if res.Success {
			t.Successes++
			t.Draws.Add(res.Draws)
		}
	case ModeComposition:
		hand := mahjong.RandomHand(r.vocab, rng, mahjong.HandSize)
		t.Honors.Add(mahjong.CountHonors(hand))
		t.Terminals.Add(mahjong.CountTerminals(hand))
		t.Pairs.Add(mahjong.CountExactPairs(hand))
	}
}
