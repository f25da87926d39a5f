package sim

import (
	"maps"
	"slices"
)

// Distribution 整数取值的频数统计
type Distribution struct {
	Counts map[int]int64
	Total  int64
	Sum    int64
}

func NewDistribution() *Distribution {
	return &Distribution{Counts: make(map[int]int64)}
}

func (d *Distribution) Add(v int) {
	d.Counts[v]++
	d.Total++
	d.Sum += int64(v)
}

func (d *Distribution) Merge(o *Distribution) {
	if o == nil {
		return
	}
	for v, n := range o.Counts {
		d.Counts[v] += n
	}
	d.Total += o.Total
	d.Sum += o.Sum
}

// Mean 空分布返回 0
func (d *Distribution) Mean() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Sum) / float64(d.Total)
}

// Percent v 出现的百分比，0-100
func (d *Distribution) Percent(v int) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Counts[v]) / float64(d.Total) * 100
}

// Keys 升序
func (d *Distribution) Keys() []int {
	return slices.Sorted(maps.Keys(d.Counts))
}

// Tally 一个 worker 的统计结果，Merge 后得到整批结果
type Tally struct {
	Trials    int64
	Successes int64
	Faults    int64
	WallEmpty int64

	Distance  *Distribution
	Draws     *Distribution // 只统计成功的局
	Honors    *Distribution
	Terminals *Distribution
	Pairs     *Distribution
}

func NewTally() *Tally {
	return &Tally{
		Distance:  NewDistribution(),
		Draws:     NewDistribution(),
		Honors:    NewDistribution(),
		Terminals: NewDistribution(),
		Pairs:     NewDistribution(),
	}
}

func (t *Tally) Merge(o *Tally) {
	if o == nil {
		return
	}
	t.Trials += o.Trials
	t.Successes += o.Successes
	t.Faults += o.Faults
	t.WallEmpty += o.WallEmpty
	t.Distance.Merge(o.Distance)
	t.Draws.Merge(o.Draws)
	t.Honors.Merge(o.Honors)
	t.Terminals.Merge(o.Terminals)
	t.Pairs.Merge(o.Pairs)
}

func (t *Tally) Failures() int64 {
	return t.Trials - t.Successes
}

// SuccessRate 百分比
func (t *Tally) SuccessRate() float64 {
	if t.Trials == 0 {
		return 0
	}
	return float64(t.Successes) / float64(t.Trials) * 100
}
