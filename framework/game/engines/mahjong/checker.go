package mahjong

import "fmt"

// HandSize 和牌判定时的手牌张数
const HandSize = 14

// Satisfies 判断 14 张手牌是否满足目标牌型
func Satisfies(hand []Tile, shape Shape) (bool, error) {
	if len(hand) != HandSize {
		return false, fmt.Errorf("%w: classifier needs %d tiles, got %d", ErrInvalidHandSize, HandSize, len(hand))
	}
	switch shape {
	case ShapeSpaced:
		return IsSpaced(hand) && HasNoHonorDuplicates(hand), nil
	case ShapeSpacedHonors:
		return IsSpaced(hand) && HasNoHonorDuplicates(hand) && HasAllHonors(hand), nil
	case ShapeSevenPairs:
		return IsSevenPairs(hand), nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownShape, shape)
	}
}

// IsSpaced 同花色任意两张数牌点数差 >= 3
func IsSpaced(hand []Tile) bool {
	for i := 0; i < len(hand); i++ {
		if !hand[i].IsNumbered() {
			continue
		}
		for j := i + 1; j < len(hand); j++ {
			if hand[j].Family != hand[i].Family {
				continue
			}
			if absInt(hand[i].Rank-hand[j].Rank) < SpacingGap {
				return false
			}
		}
	}
	return true
}

// HasNoHonorDuplicates 同一种字牌不能出现两次
func HasNoHonorDuplicates(hand []Tile) bool {
	for i := 0; i < len(hand); i++ {
		if !hand[i].IsHonor() {
			continue
		}
		for j := i + 1; j < len(hand); j++ {
			if hand[j] == hand[i] {
				return false
			}
		}
	}
	return true
}

// HasAllHonors 七种字牌各至少一张
func HasAllHonors(hand []Tile) bool {
	var seen [HonorRanks + 1]bool
	distinct := 0
	for _, t := range hand {
		if !t.IsHonor() || !t.IsValid() || seen[t.Rank] {
			continue
		}
		seen[t.Rank] = true
		distinct++
	}
	return distinct == HonorRanks
}

// IsSevenPairs 每种牌张数都是偶数，四张相同算两对
func IsSevenPairs(hand []Tile) bool {
	counts := make(map[Tile]int, len(hand))
	for _, t := range hand {
		counts[t]++
	}
	for _, c := range counts {
		if c%2 != 0 {
			return false
		}
	}
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
