package mahjong

import (
	"fmt"
	"math/rand"
)

// DiscardPolicy 从 14 张手牌中选出要打出的一张，返回其在手牌中的下标
type DiscardPolicy interface {
	Choose(hand []Tile) (int, error)
}

// NewDiscardPolicy 打烂类牌型用贪心评分，七对子用奇数张随机弃牌
func NewDiscardPolicy(shape Shape, searcher *Searcher, rng *rand.Rand) (DiscardPolicy, error) {
	switch {
	case shape.HasEstimator():
		return &GreedyPolicy{Searcher: searcher, Shape: shape}, nil
	case shape == ShapeSevenPairs:
		return &OddCountPolicy{Rng: rng}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, shape)
	}
}

// GreedyPolicy 逐张尝试打出，取剩余 13 张综合评分最小的那张，并列时取先出现的
type GreedyPolicy struct {
	Searcher *Searcher
	Shape    Shape
}

func (p *GreedyPolicy) Choose(hand []Tile) (int, error) {
	if err := checkDiscardInput(hand); err != nil {
		return -1, err
	}

	h14, _ := Hand34FromTiles(hand)
	best := -1
	bestScore := 0
	for i, t := range hand {
		// 计数视图上减一张，等价于在副本上删除下标 i，不改动原手牌
		h13 := h14
		if tt := t.Type(); tt >= 0 {
			h13[tt]--
		}
		score := p.Searcher.scoreHand34(h13, p.Shape)
		if best < 0 || score < bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return -1, ErrNoDiscardCandidate
	}
	return best, nil
}

// Scores 每个下标打出后的评分，便于展示与测试
func (p *GreedyPolicy) Scores(hand []Tile) ([]int, error) {
	if err := checkDiscardInput(hand); err != nil {
		return nil, err
	}
	scores := make([]int, len(hand))
	for i := range hand {
		rest := withoutIndex(hand, i)
		s, err := p.Searcher.CombinedScore(rest, p.Shape)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

// OddCountPolicy 七对子：张数为 1 或 3 的牌视为无用牌，随机打出其中一张；
// 没有无用牌时打出最后一张
type OddCountPolicy struct {
	Rng *rand.Rand
}

func (p *OddCountPolicy) Choose(hand []Tile) (int, error) {
	if err := checkDiscardInput(hand); err != nil {
		return -1, err
	}

	counts := make(map[Tile]int, len(hand))
	for _, t := range hand {
		counts[t]++
	}
	useless := make([]int, 0, len(hand))
	for i, t := range hand {
		if counts[t]%2 == 1 {
			useless = append(useless, i)
		}
	}
	if len(useless) == 0 {
		return len(hand) - 1, nil
	}
	return useless[p.Rng.Intn(len(useless))], nil
}

// ChooseDiscard 用默认贪心策略选择弃牌
func ChooseDiscard(hand []Tile, shape Shape) (int, Tile, error) {
	if !shape.HasEstimator() {
		return -1, Tile{}, fmt.Errorf("%w: %s", ErrNoEstimator, shape)
	}
	p := &GreedyPolicy{Searcher: NewSearcher(), Shape: shape}
	i, err := p.Choose(hand)
	if err != nil {
		return -1, Tile{}, err
	}
	return i, hand[i], nil
}

func checkDiscardInput(hand []Tile) error {
	if len(hand) == 0 {
		return ErrNoDiscardCandidate
	}
	if len(hand) != HandSize {
		return fmt.Errorf("%w: discard needs %d tiles, got %d", ErrInvalidHandSize, HandSize, len(hand))
	}
	return nil
}

// withoutIndex 返回去掉下标 i 的新切片
func withoutIndex(hand []Tile, i int) []Tile {
	out := make([]Tile, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
