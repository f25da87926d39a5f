package sim

import (
	"strconv"
	"time"

	"mahjongsim/core/domain/entity"
	"mahjongsim/framework/game/engines/mahjong"
)

// Report 一次批量模拟的汇总
type Report struct {
	RunID     string
	Mode      Mode
	Round     mahjong.RoundConfig
	Requested int
	Workers   int
	Seed      int64
	Tally     *Tally
	StartedAt time.Time
	Elapsed   time.Duration
	Host      HostInfo
	Cancelled bool
}

// Distributions 按模式返回需要展示的分布，顺序固定
func (r *Report) Distributions() []NamedDistribution {
	switch r.Mode {
	case ModeShanten:
		return []NamedDistribution{{Name: "distance", Dist: r.Tally.Distance}}
	case ModeRounds:
		return []NamedDistribution{{Name: "draws", Dist: r.Tally.Draws}}
	case ModeComposition:
		return []NamedDistribution{
			{Name: "honors", Dist: r.Tally.Honors},
			{Name: "terminals", Dist: r.Tally.Terminals},
			{Name: "pairs", Dist: r.Tally.Pairs},
		}
	default:
		return nil
	}
}

type NamedDistribution struct {
	Name string
	Dist *Distribution
}

// Record 转成落库用的实体
func (r *Report) Record() *entity.RunRecord {
	record := entity.NewRunRecord(r.RunID, r.Mode.String())
	if r.Mode != ModeComposition {
		record.Shape = r.Round.Shape.String()
	}
	if r.Mode == ModeRounds {
		record.DrawBudget = r.Round.DrawBudget
		record.FinalDraw = r.Round.FinalDraw
	}
	record.Requested = r.Requested
	record.Workers = r.Workers
	record.Seed = r.Seed
	record.Trials = r.Tally.Trials
	record.Successes = r.Tally.Successes
	record.Faults = r.Tally.Faults
	record.WallEmpty = r.Tally.WallEmpty
	record.SuccessRate = r.Tally.SuccessRate()
	for _, nd := range r.Distributions() {
		record.Distributions[nd.Name] = distributionRecord(nd.Dist)
	}
	record.Host = entity.HostRecord{
		LogicalCPUs:   r.Host.LogicalCPUs,
		TotalMemory:   r.Host.TotalMemory,
		MemoryUsedPct: r.Host.MemoryUsedPct,
		CPUUsedPct:    r.Host.CPUUsedPct,
	}
	record.StartTime = r.StartedAt
	record.Finish(r.Elapsed, r.Cancelled)
	return record
}

func distributionRecord(d *Distribution) entity.DistributionRecord {
	counts := make(map[string]int64, len(d.Counts))
	for v, n := range d.Counts {
		counts[strconv.Itoa(v)] = n
	}
	return entity.DistributionRecord{
		Counts: counts,
		Total:  d.Total,
		Sum:    d.Sum,
		Mean:   d.Mean(),
	}
}
