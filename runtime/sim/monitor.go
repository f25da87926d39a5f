package sim

import (
	"context"
	"time"

	"mahjongsim/common/log"
)

// Monitor 定期输出批量模拟进度和机器负载
type Monitor struct {
	runner         *Runner
	updateInterval time.Duration
	lastDone       int64
	lastTick       time.Time
}

func NewMonitor(runner *Runner, updateInterval time.Duration) *Monitor {
	return &Monitor{
		runner:         runner,
		updateInterval: updateInterval,
		lastTick:       time.Now(),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.report()
		}
	}
}

func (m *Monitor) report() {
	done, successes := m.runner.Progress()
	total := int64(m.runner.opts.Trials)
	now := time.Now()
	rate := float64(done-m.lastDone) / now.Sub(m.lastTick).Seconds()
	m.lastDone, m.lastTick = done, now

	host := SnapshotHost()
	log.Info("进度 %d/%d (%.1f%%) 成功 %d, %.0f 次/秒, CPU=%.1f%%, Mem=%.1f%%",
		done, total, percentOf(done, total), successes, rate, host.CPUUsedPct, host.MemoryUsedPct)
}

func percentOf(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
