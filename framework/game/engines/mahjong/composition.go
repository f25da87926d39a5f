package mahjong

// CountHonors 字牌张数
func CountHonors(hand []Tile) int {
	n := 0
	for _, t := range hand {
		if t.IsHonor() {
			n++
		}
	}
	return n
}

// CountTerminals 幺九牌张数（字牌 + 1、9 数牌）
func CountTerminals(hand []Tile) int {
	n := 0
	for _, t := range hand {
		if t.IsValid() && t.IsTerminal() {
			n++
		}
	}
	return n
}

// CountExactPairs 恰好两张的牌种数，刻子和杠不算对子
func CountExactPairs(hand []Tile) int {
	h, _ := Hand34FromTiles(hand)
	n := 0
	for _, c := range h {
		if c == 2 {
			n++
		}
	}
	return n
}
