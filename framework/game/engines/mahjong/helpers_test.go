package mahjong

import (
	"math/rand"
	"testing"
)

func mustHand(t testing.TB, s string) []Tile {
	t.Helper()
	hand, err := ParseHand(SplitTiles(s))
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return hand
}

var spacedTriples = [][3]int{
	{1, 4, 7}, {2, 5, 8}, {3, 6, 9},
	{1, 4, 8}, {1, 4, 9}, {1, 5, 8},
	{1, 5, 9}, {2, 5, 9}, {1, 6, 9},
}

// randomSpacedHand 9 张间隔数牌 + 5 种不重复字牌
func randomSpacedHand(rng *rand.Rand) []Tile {
	hand := make([]Tile, 0, HandSize)
	for _, f := range []Family{FamilyMan, FamilyPin, FamilySo} {
		for _, r := range spacedTriples[rng.Intn(len(spacedTriples))] {
			hand = append(hand, NewTile(f, r))
		}
	}
	for _, r := range rng.Perm(HonorRanks)[:5] {
		hand = append(hand, NewTile(FamilyHonor, r+1))
	}
	rng.Shuffle(len(hand), func(i, j int) { hand[i], hand[j] = hand[j], hand[i] })
	return hand
}
