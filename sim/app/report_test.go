package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mahjongsim/core/domain/entity"
	"mahjongsim/framework/game/engines/mahjong"
	"mahjongsim/runtime/sim"
)

func TestHistogramBar(t *testing.T) {
	cases := []struct {
		count, max int64
		want       int
	}{
		{0, 10, 0},
		{10, 10, 40},
		{5, 10, 20},
		{1, 1000, 1}, // 非零至少一格
	}
	for _, tc := range cases {
		got := []rune(histogramBar(tc.count, tc.max, histogramWidth))
		if len(got) != tc.want {
			t.Fatalf("histogramBar(%d,%d) has %d cells, want %d", tc.count, tc.max, len(got), tc.want)
		}
	}
}

func TestRenderReport(t *testing.T) {
	tally := sim.NewTally()
	tally.Trials, tally.Successes, tally.Faults = 4, 1, 1
	tally.Draws.Add(12)
	report := &sim.Report{
		RunID:     "run-x",
		Mode:      sim.ModeRounds,
		Round:     mahjong.DefaultRoundConfig(mahjong.ShapeSevenPairs),
		Requested: 10,
		Workers:   2,
		Seed:      1,
		Tally:     tally,
		Elapsed:   time.Second,
		Cancelled: true,
	}
	var out bytes.Buffer
	RenderReport(&out, report)
	text := out.String()
	for _, want := range []string{
		"模拟 rounds", "牌型: pairs", "摸牌预算: 21", "试验: 4/10",
		"成功率: 25.0000%", "出错局数: 1", "部分结果", "和牌巡数 分布", "12:          1  100.00%",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var out bytes.Buffer
	RenderHistory(&out, nil)
	if !strings.Contains(out.String(), "没有模拟记录") {
		t.Fatalf("empty history message missing")
	}

	rec := entity.NewRunRecord("run-y", "shanten")
	rec.Shape = "spaced"
	rec.Trials = 99
	rec.Finish(time.Second, false)
	out.Reset()
	RenderHistory(&out, []*entity.RunRecord{rec})
	if !strings.Contains(out.String(), "run-y") || !strings.Contains(out.String(), "completed") {
		t.Fatalf("unexpected history line: %s", out.String())
	}
}

func TestRenderRunRecord(t *testing.T) {
	rec := entity.NewRunRecord("run-z", "rounds")
	rec.Shape = "pairs"
	rec.DrawBudget, rec.FinalDraw = 21, true
	rec.Trials, rec.Requested, rec.Successes, rec.SuccessRate = 10, 10, 2, 20
	rec.Host = entity.HostRecord{LogicalCPUs: 8, CPUUsedPct: 12.5, MemoryUsedPct: 40}
	rec.Distributions["draws"] = entity.DistributionRecord{
		Counts: map[string]int64{"15": 1, "22": 1, "bad": 9},
		Total:  2,
		Sum:    37,
		Mean:   18.5,
	}
	rec.Finish(250*time.Millisecond, false)

	var out bytes.Buffer
	RenderRunRecord(&out, rec)
	text := out.String()
	for _, want := range []string{
		"记录 run-z", "牌型: pairs", "摸牌预算: 21", "试验: 10/10", "耗时: 250ms",
		"成功率: 20.0000%", "CPU=12.5%", "和牌巡数 分布", "平均 18.50", " 15:          1   50.00%",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "bad") {
		t.Fatalf("unparsable keys must be skipped:\n%s", text)
	}
}
