package mahjong

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func TestChooseDiscard_RemovesDuplicateHonor(t *testing.T) {
	hand := mustHand(t, "1m4m7m 1p4p7p 1s4s7s 1z2z3z4z1z")
	i, tile, err := ChooseDiscard(hand, ShapeSpaced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 两张 1z 打出任意一张评分都为 0，取先出现的下标 9
	if i != 9 || tile != NewTile(FamilyHonor, 1) {
		t.Fatalf("expected index 9 (1z), got %d (%v)", i, tile)
	}
	if TilesName(hand) != "1m 4m 7m 1p 4p 7p 1s 4s 7s 1z 2z 3z 4z 1z" {
		t.Fatalf("choosing a discard must not mutate the hand: %s", TilesName(hand))
	}
}

func TestGreedyPolicy_OptimalWithinOneStep(t *testing.T) {
	vocab := NewVocabulary()
	rng := rand.New(rand.NewSource(21))
	searcher := NewSearcher()
	for _, shape := range []Shape{ShapeSpaced, ShapeSpacedHonors} {
		p := &GreedyPolicy{Searcher: searcher, Shape: shape}
		for n := 0; n < 500; n++ {
			w := NewShuffledWall(vocab, rng)
			hand, _ := w.DrawN(HandSize)
			i, err := p.Choose(hand)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if i < 0 || i >= len(hand) {
				t.Fatalf("discard index %d out of range", i)
			}
			scores, err := p.Scores(hand)
			if err != nil {
				t.Fatalf("scores: %v", err)
			}
			best := slices.Min(scores)
			if scores[i] != best {
				t.Fatalf("%s: chose index %d with score %d, best is %d (%v)", shape, i, scores[i], best, scores)
			}
			if first := slices.Index(scores, best); first != i {
				t.Fatalf("%s: ties must go to the first index %d, got %d", shape, first, i)
			}
		}
	}
}

func TestGreedyPolicy_InputErrors(t *testing.T) {
	p := &GreedyPolicy{Searcher: NewSearcher(), Shape: ShapeSpaced}
	if _, err := p.Choose(nil); !errors.Is(err, ErrNoDiscardCandidate) {
		t.Fatalf("expected ErrNoDiscardCandidate, got %v", err)
	}
	if _, err := p.Choose(mustHand(t, "1m4m7m 1p4p7p 1s4s7s 1z2z3z4z")); !errors.Is(err, ErrInvalidHandSize) {
		t.Fatalf("expected ErrInvalidHandSize, got %v", err)
	}
	if _, _, err := ChooseDiscard(mustHand(t, spacedHand), ShapeSevenPairs); !errors.Is(err, ErrNoEstimator) {
		t.Fatalf("expected ErrNoEstimator, got %v", err)
	}
}

func TestOddCountPolicy(t *testing.T) {
	p := &OddCountPolicy{Rng: rand.New(rand.NewSource(1))}
	hand := mustHand(t, "1m1m 2m2m 3p3p 4p4p 5s5s 6s6s6s 7z")
	for n := 0; n < 50; n++ {
		i, err := p.Choose(hand)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := hand[i]
		if got != NewTile(FamilySo, 6) && got != NewTile(FamilyHonor, 7) {
			t.Fatalf("expected an odd-count tile (6s or 7z), got %v", got)
		}
	}

	even := mustHand(t, "1m1m 2m2m 3p3p 4p4p 5s5s 6s6s 7z7z")
	if i, err := p.Choose(even); err != nil || i != len(even)-1 {
		t.Fatalf("without odd tiles the last tile is discarded, got %d (err %v)", i, err)
	}
}

func TestNewDiscardPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if p, _ := NewDiscardPolicy(ShapeSpacedHonors, NewSearcher(), rng); p == nil {
		t.Fatalf("expected greedy policy")
	} else if _, ok := p.(*GreedyPolicy); !ok {
		t.Fatalf("expected *GreedyPolicy, got %T", p)
	}
	if p, _ := NewDiscardPolicy(ShapeSevenPairs, NewSearcher(), rng); p == nil {
		t.Fatalf("expected odd-count policy")
	} else if _, ok := p.(*OddCountPolicy); !ok {
		t.Fatalf("expected *OddCountPolicy, got %T", p)
	}
	if _, err := NewDiscardPolicy(Shape(42), nil, rng); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
}
