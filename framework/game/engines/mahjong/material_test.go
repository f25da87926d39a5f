package mahjong

import (
	"errors"
	"slices"
	"testing"
)

func TestParseTile(t *testing.T) {
	cases := []struct {
		in   string
		want Tile
		ok   bool
	}{
		{"1m", NewTile(FamilyMan, 1), true},
		{"9p", NewTile(FamilyPin, 9), true},
		{"5s", NewTile(FamilySo, 5), true},
		{"7z", NewTile(FamilyHonor, 7), true},
		{"8z", Tile{}, false},
		{"0m", Tile{}, false},
		{"10s", Tile{}, false},
		{"5x", Tile{}, false},
		{"m", Tile{}, false},
		{"", Tile{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTile(tc.in)
			if !tc.ok {
				if !errors.Is(err, ErrMalformedTile) {
					t.Fatalf("expected ErrMalformedTile for %q, got %v", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseTile(%q) = %v, want %v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Fatalf("String() = %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestSplitTiles(t *testing.T) {
	got := SplitTiles("1m4m7m, 1z 2z\t3s")
	want := []string{"1m", "4m", "7m", "1z", "2z", "3s"}
	if !slices.Equal(got, want) {
		t.Fatalf("SplitTiles = %v, want %v", got, want)
	}
}

func TestTileTypeRoundTrip(t *testing.T) {
	for i := 0; i < NumTileTypes; i++ {
		tt := TileType(i)
		tile := tt.Tile()
		if !tile.IsValid() {
			t.Fatalf("tile for type %d should be valid, got %v", i, tile)
		}
		if tile.Type() != tt {
			t.Fatalf("round trip of %d gave %d", i, tile.Type())
		}
		if tt.IsHonor() != tile.IsHonor() {
			t.Fatalf("honor mismatch for %v", tile)
		}
	}
	if East.Tile() != NewTile(FamilyHonor, 1) || Red.Tile() != NewTile(FamilyHonor, 7) {
		t.Fatalf("honor numbering expected East=1z Red=7z")
	}
	if (Tile{Family: FamilyMan, Rank: 10}).Type() != -1 {
		t.Fatalf("invalid tile should map to -1")
	}
}

func TestCompareTiles(t *testing.T) {
	hand := mustHand(t, "3z 9s 1m 5p 1z 2m")
	slices.SortFunc(hand, CompareTiles)
	if got := TilesName(hand); got != "1m 2m 5p 9s 1z 3z" {
		t.Fatalf("sorted hand = %s", got)
	}
}

func TestParseHandLenient(t *testing.T) {
	tokens := []string{"1m", "x9", "4m", "8z", "7m"}
	if _, err := ParseHand(tokens); !errors.Is(err, ErrMalformedTile) {
		t.Fatalf("strict parse expected ErrMalformedTile, got %v", err)
	}
	hand, skipped := ParseHandLenient(tokens)
	if len(hand) != 3 {
		t.Fatalf("lenient parse expected 3 tiles, got %d", len(hand))
	}
	if !slices.Equal(skipped, []string{"x9", "8z"}) {
		t.Fatalf("skipped = %v", skipped)
	}
}

func TestVocabularyIsReadOnly(t *testing.T) {
	v := NewVocabulary()
	tiles := v.Tiles()
	tiles[0] = NewTile(FamilyHonor, 7)
	if v.At(0) != NewTile(FamilyMan, 1) {
		t.Fatalf("mutating Tiles() copy must not change the vocabulary")
	}
	if v.Len() != 34 {
		t.Fatalf("expected 34 tile kinds, got %d", v.Len())
	}
}
