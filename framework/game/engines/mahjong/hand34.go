package mahjong

// Hand34 按牌种计数的手牌视图
type Hand34 [NumTileTypes]uint8

// Hand34FromTiles 非法牌不计入，返回被跳过的张数
func Hand34FromTiles(tiles []Tile) (Hand34, int) {
	var h Hand34
	skipped := 0
	for _, t := range tiles {
		tt := t.Type()
		if tt < 0 {
			skipped++
			continue
		}
		h[tt]++
	}
	return h, skipped
}

func (h Hand34) Count() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Ranks 某个花色的点数计数，下标为点数 1..MaxRank
func (h Hand34) Ranks(f Family) []uint8 {
	maxRank := f.MaxRank()
	out := make([]uint8, maxRank+1)
	base := int(f) * NumberedRanks
	for r := 1; r <= maxRank; r++ {
		out[r] = h[base+r-1]
	}
	return out
}

func (h Hand34) keyWithShape(shape Shape) string {
	var b [NumTileTypes + 1]byte
	for i := 0; i < NumTileTypes; i++ {
		b[i] = byte(h[i])
	}
	b[NumTileTypes] = byte(shape)
	return string(b[:])
}
