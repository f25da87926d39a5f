package mahjong

import (
	"fmt"
	"strings"
)

// Shape 目标牌型
type Shape int

const (
	ShapeSpaced       Shape = iota + 1 // 打烂：同花色数牌间隔 >= 3，字牌不重复
	ShapeSpacedHonors                  // 打烂 + 七种字牌齐全
	ShapeSevenPairs                    // 七对子
)

// SpacingGap 同花色两张数牌的最小点数差
const SpacingGap = 3

func (s Shape) String() string {
	switch s {
	case ShapeSpaced:
		return "spaced"
	case ShapeSpacedHonors:
		return "spaced7"
	case ShapeSevenPairs:
		return "pairs"
	default:
		return "unknown"
	}
}

func (s Shape) IsValid() bool {
	return s >= ShapeSpaced && s <= ShapeSevenPairs
}

// HasEstimator 七对子没有贪心估计，只做精确判定
func (s Shape) HasEstimator() bool {
	return s == ShapeSpaced || s == ShapeSpacedHonors
}

// DefaultDrawBudget 每局摸牌上限
func (s Shape) DefaultDrawBudget() int {
	if s == ShapeSevenPairs {
		return 21
	}
	return 20
}

// DefaultFinalDraw 七对子在预算用完后再摸一张做最后判定
func (s Shape) DefaultFinalDraw() bool {
	return s == ShapeSevenPairs
}

func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "spaced", "dalan":
		return ShapeSpaced, nil
	case "spaced7", "dalan7", "spaced-honors":
		return ShapeSpacedHonors, nil
	case "pairs", "seven-pairs", "chiitoi":
		return ShapeSevenPairs, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}
