package app

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"mahjongsim/core/domain/entity"
	"mahjongsim/framework/game/engines/mahjong"
	"mahjongsim/runtime/sim"

	"github.com/fatih/color"
)

const histogramWidth = 40

var (
	titleColor = color.New(color.FgHiCyan, color.Bold)
	goodColor  = color.New(color.FgHiGreen)
	badColor   = color.New(color.FgHiRed)
	warnColor  = color.New(color.FgHiYellow)
	barColor   = color.New(color.FgHiBlue)
	dimColor   = color.New(color.FgHiBlack)

	distributionLabel = map[string]string{
		"distance":  "打烂距离",
		"draws":     "和牌巡数",
		"honors":    "字牌张数",
		"terminals": "幺九张数",
		"pairs":     "对子数",
	}
)

// histogramBar 按最大频数缩放，非零频数至少一格
func histogramBar(count, maxCount int64, width int) string {
	if count <= 0 || maxCount <= 0 {
		return ""
	}
	n := int(math.Round(float64(count) / float64(maxCount) * float64(width)))
	return strings.Repeat("█", max(n, 1))
}

func renderDistribution(w io.Writer, name string, d *sim.Distribution) {
	label := distributionLabel[name]
	if label == "" {
		label = name
	}
	titleColor.Fprintf(w, "%s 分布", label)
	fmt.Fprintf(w, "  (样本 %d, 平均 %.2f)\n", d.Total, d.Mean())
	if d.Total == 0 {
		dimColor.Fprintln(w, "  无样本")
		return
	}
	var maxCount int64
	for _, n := range d.Counts {
		maxCount = max(maxCount, n)
	}
	for _, k := range d.Keys() {
		fmt.Fprintf(w, "  %3d: %10d  %6.2f%%  ", k, d.Counts[k], d.Percent(k))
		barColor.Fprintln(w, histogramBar(d.Counts[k], maxCount, histogramWidth))
	}
}

// RenderReport 输出到终端，颜色由 fatih/color 根据是否为 tty 自动关闭
func RenderReport(w io.Writer, r *sim.Report) {
	t := r.Tally
	titleColor.Fprintf(w, "模拟 %s", r.Mode)
	fmt.Fprintf(w, "  run=%s\n", r.RunID)
	if r.Mode != sim.ModeComposition {
		fmt.Fprintf(w, "  牌型: %s", r.Round.Shape)
		if r.Mode == sim.ModeRounds {
			fmt.Fprintf(w, "  摸牌预算: %d  最后一摸: %v", r.Round.DrawBudget, r.Round.FinalDraw)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  试验: %d/%d  workers: %d  seed: %d  耗时: %s\n",
		t.Trials, r.Requested, r.Workers, r.Seed, r.Elapsed.Round(time.Millisecond))

	if r.Mode != sim.ModeComposition {
		fmt.Fprint(w, "  成功: ")
		goodColor.Fprintf(w, "%d", t.Successes)
		fmt.Fprint(w, "  失败: ")
		badColor.Fprintf(w, "%d", t.Failures())
		fmt.Fprintf(w, "  成功率: %.4f%%\n", t.SuccessRate())
	}
	if t.WallEmpty > 0 {
		fmt.Fprintf(w, "  牌山摸空: %d\n", t.WallEmpty)
	}
	if t.Faults > 0 {
		warnColor.Fprintf(w, "  出错局数: %d\n", t.Faults)
	}
	if r.Cancelled {
		warnColor.Fprintln(w, "  模拟被中断，以上为部分结果")
	}
	for _, nd := range r.Distributions() {
		fmt.Fprintln(w)
		renderDistribution(w, nd.Name, nd.Dist)
	}
}

// CheckResult 单手牌的判定结果
type CheckResult struct {
	Hand      []mahjong.Tile
	Skipped   []string
	Satisfies map[mahjong.Shape]bool
	Distance  map[mahjong.Shape]int // 只含有估计器的牌型
	Combined  map[mahjong.Shape]int
	OddCounts int
	Honors    int
	Terminals int
	Pairs     int
	// Discard 仅 14 张时给出，Discard < 0 表示没有建议
	Discard     int
	DiscardTile mahjong.Tile
	SizeErr     error
}

var checkShapes = []mahjong.Shape{mahjong.ShapeSpaced, mahjong.ShapeSpacedHonors, mahjong.ShapeSevenPairs}

// Inspect 对一手牌做全部判定，牌数不对时只给出构成统计
func Inspect(hand []mahjong.Tile, discardShape mahjong.Shape, searcher *mahjong.Searcher) CheckResult {
	res := CheckResult{
		Hand:      hand,
		Satisfies: make(map[mahjong.Shape]bool),
		Distance:  make(map[mahjong.Shape]int),
		Combined:  make(map[mahjong.Shape]int),
		Honors:    mahjong.CountHonors(hand),
		Terminals: mahjong.CountTerminals(hand),
		Pairs:     mahjong.CountExactPairs(hand),
		Discard:   -1,
	}
	h, _ := mahjong.Hand34FromTiles(hand)
	res.OddCounts = mahjong.OddCounts(h)

	for _, shape := range checkShapes {
		if ok, err := mahjong.Satisfies(hand, shape); err != nil {
			res.SizeErr = err
		} else {
			res.Satisfies[shape] = ok
		}
		if !shape.HasEstimator() {
			continue
		}
		if d, err := searcher.ApproximateDistance(hand, shape); err == nil {
			res.Distance[shape] = d
		}
		if c, err := searcher.CombinedScore(hand, shape); err == nil {
			res.Combined[shape] = c
		}
	}

	if len(hand) == mahjong.HandSize && discardShape.HasEstimator() {
		p := &mahjong.GreedyPolicy{Searcher: searcher, Shape: discardShape}
		if i, err := p.Choose(hand); err == nil {
			res.Discard = i
			res.DiscardTile = hand[i]
		}
	}
	return res
}

func RenderCheck(w io.Writer, res CheckResult, discardShape mahjong.Shape) {
	titleColor.Fprint(w, "手牌")
	fmt.Fprintf(w, "  %s  (%d 张)\n", mahjong.TilesName(res.Hand), len(res.Hand))
	if len(res.Skipped) > 0 {
		warnColor.Fprintf(w, "  已忽略非法牌: %s\n", strings.Join(res.Skipped, " "))
	}
	if res.SizeErr != nil {
		warnColor.Fprintf(w, "  牌型判定需要 %d 张: %v\n", mahjong.HandSize, res.SizeErr)
	}
	for _, shape := range checkShapes {
		ok, checked := res.Satisfies[shape]
		fmt.Fprintf(w, "  %-8s ", shape)
		switch {
		case !checked:
			dimColor.Fprint(w, "-")
		case ok:
			goodColor.Fprint(w, "和牌")
		default:
			badColor.Fprint(w, "未和")
		}
		if d, has := res.Distance[shape]; has {
			fmt.Fprintf(w, "  距离 %d  评分 %d", d, res.Combined[shape])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  字牌 %d  幺九 %d  对子 %d  奇数张种类 %d\n", res.Honors, res.Terminals, res.Pairs, res.OddCounts)
	if res.Discard >= 0 {
		fmt.Fprintf(w, "  建议打出 (%s): ", discardShape)
		goodColor.Fprintf(w, "%s", res.DiscardTile)
		fmt.Fprintf(w, "  (第 %d 张)\n", res.Discard+1)
	}
}

// RenderHistory 最近的模拟记录
func RenderHistory(w io.Writer, records []*entity.RunRecord) {
	if len(records) == 0 {
		dimColor.Fprintln(w, "没有模拟记录")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(w, "%s  %-11s %-7s trials=%-9d ", rec.StartTime.Format("2006-01-02 15:04:05"), rec.Mode, rec.Shape, rec.Trials)
		if rec.Mode != sim.ModeComposition.String() {
			fmt.Fprintf(w, "success=%.4f%% ", rec.SuccessRate)
		}
		if rec.Status == entity.RunStatusCancelled {
			warnColor.Fprint(w, rec.Status)
		} else {
			dimColor.Fprint(w, rec.Status)
		}
		fmt.Fprintf(w, "  %s\n", rec.RunID)
	}
}

// RenderRunRecord 单条记录详情，分布从落库格式还原后按同样方式绘制
func RenderRunRecord(w io.Writer, rec *entity.RunRecord) {
	titleColor.Fprintf(w, "记录 %s", rec.RunID)
	fmt.Fprintf(w, "  %s  %s\n", rec.StartTime.Format("2006-01-02 15:04:05"), rec.Status)
	fmt.Fprintf(w, "  模式: %s", rec.Mode)
	if rec.Shape != "" {
		fmt.Fprintf(w, "  牌型: %s", rec.Shape)
	}
	if rec.Mode == sim.ModeRounds.String() {
		fmt.Fprintf(w, "  摸牌预算: %d  最后一摸: %v", rec.DrawBudget, rec.FinalDraw)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  试验: %d/%d  workers: %d  seed: %d  耗时: %dms\n",
		rec.Trials, rec.Requested, rec.Workers, rec.Seed, rec.Duration)
	if rec.Mode != sim.ModeComposition.String() {
		fmt.Fprintf(w, "  成功: %d  成功率: %.4f%%\n", rec.Successes, rec.SuccessRate)
	}
	if rec.Faults > 0 {
		warnColor.Fprintf(w, "  出错局数: %d\n", rec.Faults)
	}
	fmt.Fprintf(w, "  主机: %d CPU  CPU=%.1f%%  Mem=%.1f%%\n", rec.Host.LogicalCPUs, rec.Host.CPUUsedPct, rec.Host.MemoryUsedPct)

	names := make([]string, 0, len(rec.Distributions))
	for name := range rec.Distributions {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintln(w)
		renderDistribution(w, name, distributionFromRecord(rec.Distributions[name]))
	}
}

// distributionFromRecord 跳过无法解析的 key
func distributionFromRecord(d entity.DistributionRecord) *sim.Distribution {
	dist := sim.NewDistribution()
	for k, n := range d.Counts {
		v, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		dist.Counts[v] = n
	}
	dist.Total = d.Total
	dist.Sum = d.Sum
	return dist
}
