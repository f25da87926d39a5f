package mahjong

import (
	"fmt"
	"slices"
)

// ScoreCache 评分缓存，实现见 common/cache
type ScoreCache interface {
	Get(key string) (int, bool)
	Set(key string, score int) bool
}

// Searcher 计算手牌距目标牌型的近似距离
// 距离是贪心得到的上界，只在 0 处保证精确，不是严格的向听数
type Searcher struct {
	cache ScoreCache
}

func NewSearcher() *Searcher {
	return &Searcher{}
}

// NewCachedSearcher cache 可以为 nil
func NewCachedSearcher(cache ScoreCache) *Searcher {
	return &Searcher{cache: cache}
}

// MaxNonConflicting 排序后从小到大贪心保留，与上一张保留的牌相差 >= gap 才保留
func MaxNonConflicting(ranks []int, gap int) int {
	if len(ranks) == 0 {
		return 0
	}
	sorted := slices.Clone(ranks)
	slices.Sort(sorted)
	kept := 1
	last := sorted[0]
	for _, r := range sorted[1:] {
		if r-last >= gap {
			kept++
			last = r
		}
	}
	return kept
}

// keptByCounts 与 MaxNonConflicting 等价，直接在计数上扫描
func keptByCounts(counts []uint8, gap int) int {
	kept := 0
	last := -gap
	for r := 1; r < len(counts); r++ {
		if counts[r] == 0 {
			continue
		}
		if r-last >= gap {
			kept++
			last = r
		}
	}
	return kept
}

// StructuralDistance 打烂结构需要替换的张数：
// 每个花色 张数-贪心保留数，字牌每种多出的张数
func StructuralDistance(h Hand34) int {
	d := 0
	for _, f := range []Family{FamilyMan, FamilyPin, FamilySo} {
		counts := h.Ranks(f)
		total := 0
		for _, c := range counts {
			total += int(c)
		}
		d += total - keptByCounts(counts, SpacingGap)
	}
	for _, c := range h.Ranks(FamilyHonor) {
		if c > 1 {
			d += int(c) - 1
		}
	}
	return d
}

// MissingHonors 距七种字牌齐全还差几种
func MissingHonors(h Hand34) int {
	distinct := 0
	for _, c := range h.Ranks(FamilyHonor) {
		if c > 0 {
			distinct++
		}
	}
	return max(0, HonorRanks-distinct)
}

// OddCounts 张数为奇数的牌种数，七对子的辅助指标
func OddCounts(h Hand34) int {
	n := 0
	for _, c := range h {
		if c%2 == 1 {
			n++
		}
	}
	return n
}

// ApproximateDistance 13 或 14 张手牌的结构距离
// 非法牌会被忽略而不是报错，因此对损坏的输入可能偏小
func (s *Searcher) ApproximateDistance(hand []Tile, shape Shape) (int, error) {
	if err := checkEstimatorInput(hand, shape); err != nil {
		return 0, err
	}
	h, _ := Hand34FromTiles(hand)
	return StructuralDistance(h), nil
}

// CombinedScore 弃牌比较用的综合评分：结构距离，spaced7 再加缺少的字牌种数
func (s *Searcher) CombinedScore(hand []Tile, shape Shape) (int, error) {
	if err := checkEstimatorInput(hand, shape); err != nil {
		return 0, err
	}
	h, _ := Hand34FromTiles(hand)
	return s.scoreHand34(h, shape), nil
}

func (s *Searcher) scoreHand34(h Hand34, shape Shape) int {
	var key string
	if s != nil && s.cache != nil {
		key = h.keyWithShape(shape)
		if v, ok := s.cache.Get(key); ok {
			return v
		}
	}

	score := StructuralDistance(h)
	if shape == ShapeSpacedHonors {
		score += MissingHonors(h)
	}

	if s != nil && s.cache != nil {
		s.cache.Set(key, score)
	}
	return score
}

func checkEstimatorInput(hand []Tile, shape Shape) error {
	if !shape.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownShape, shape)
	}
	if !shape.HasEstimator() {
		return fmt.Errorf("%w: %s", ErrNoEstimator, shape)
	}
	if len(hand) != HandSize && len(hand) != HandSize-1 {
		return fmt.Errorf("%w: estimator needs %d or %d tiles, got %d", ErrInvalidHandSize, HandSize-1, HandSize, len(hand))
	}
	return nil
}
