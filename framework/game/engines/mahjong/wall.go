package mahjong

import (
	"fmt"
	"math/rand"
	"slices"
)

// Wall 牌山，只摸不补
type Wall struct {
	tiles []Tile
	index int // 当前摸牌位置
}

// NewShuffledWall 34 种牌各 4 张，用传入的随机源洗牌
func NewShuffledWall(vocab *Vocabulary, rng *rand.Rand) *Wall {
	w := &Wall{
		tiles: make([]Tile, 0, WallSize),
	}
	for i := 0; i < vocab.Len(); i++ {
		t := vocab.At(i)
		for c := 0; c < CopiesPerType; c++ {
			w.tiles = append(w.tiles, t)
		}
	}
	rng.Shuffle(len(w.tiles), func(i, j int) {
		w.tiles[i], w.tiles[j] = w.tiles[j], w.tiles[i]
	})
	return w
}

// NewWallFromTiles 按给定顺序构造牌山，主要用于复现对局
func NewWallFromTiles(tiles []Tile) *Wall {
	return &Wall{tiles: slices.Clone(tiles)}
}

// Draw 摸一张，牌山空时 ok 为 false
func (w *Wall) Draw() (Tile, bool) {
	if w.index >= len(w.tiles) {
		return Tile{}, false
	}
	t := w.tiles[w.index]
	w.index++
	return t, true
}

// DrawN 一次摸 n 张，不够时一张都不摸
func (w *Wall) DrawN(n int) ([]Tile, error) {
	if n > w.Remaining() {
		return nil, fmt.Errorf("%w: tried to draw %d tiles, wall has %d", ErrWallExhausted, n, w.Remaining())
	}
	drawn := slices.Clone(w.tiles[w.index : w.index+n])
	w.index += n
	return drawn, nil
}

func (w *Wall) Remaining() int {
	return len(w.tiles) - w.index
}

// Tiles 剩余牌的副本
func (w *Wall) Tiles() []Tile {
	return slices.Clone(w.tiles[w.index:])
}

// RandomTile 34 种牌等概率抽取，与牌山无关（有放回）
func RandomTile(vocab *Vocabulary, rng *rand.Rand) Tile {
	return vocab.At(rng.Intn(vocab.Len()))
}

// RandomHand 有放回地随机生成 n 张牌并排序
func RandomHand(vocab *Vocabulary, rng *rand.Rand, n int) []Tile {
	hand := make([]Tile, n)
	for i := range hand {
		hand[i] = RandomTile(vocab, rng)
	}
	slices.SortFunc(hand, CompareTiles)
	return hand
}
