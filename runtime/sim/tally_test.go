package sim

import (
	"math"
	"slices"
	"testing"
)

func TestDistribution_MeanAndPercent(t *testing.T) {
	d := NewDistribution()
	for _, v := range []int{1, 2, 2, 3} {
		d.Add(v)
	}
	if d.Mean() != 2 {
		t.Fatalf("expected mean 2, got %v", d.Mean())
	}
	if d.Percent(2) != 50 || d.Percent(9) != 0 {
		t.Fatalf("unexpected percents: %v %v", d.Percent(2), d.Percent(9))
	}
	if !slices.Equal(d.Keys(), []int{1, 2, 3}) {
		t.Fatalf("unexpected keys %v", d.Keys())
	}

	empty := NewDistribution()
	if empty.Mean() != 0 || empty.Percent(0) != 0 {
		t.Fatalf("empty distribution must report zeros")
	}
}

func TestTally_Merge(t *testing.T) {
	a, b := NewTally(), NewTally()
	a.Trials, a.Successes, a.Faults = 10, 3, 1
	b.Trials, b.Successes, b.WallEmpty = 30, 1, 2
	a.Distance.Add(0)
	a.Distance.Add(4)
	b.Distance.Add(4)

	a.Merge(b)
	a.Merge(nil)
	if a.Trials != 40 || a.Successes != 4 || a.Faults != 1 || a.WallEmpty != 2 {
		t.Fatalf("unexpected counters %+v", a)
	}
	if a.Failures() != 36 {
		t.Fatalf("expected 36 failures, got %d", a.Failures())
	}
	if a.SuccessRate() != 10 {
		t.Fatalf("expected 10%% success rate, got %v", a.SuccessRate())
	}
	if a.Distance.Total != 3 || a.Distance.Counts[4] != 2 || a.Distance.Sum != 8 {
		t.Fatalf("unexpected merged distribution %+v", a.Distance)
	}
	if math.Abs(a.Distance.Mean()-8.0/3) > 1e-9 {
		t.Fatalf("unexpected mean %v", a.Distance.Mean())
	}
}

func TestShare(t *testing.T) {
	cases := []struct{ trials, workers int }{{10, 3}, {7, 7}, {100, 8}, {1, 1}}
	for _, tc := range cases {
		sum := 0
		for i := 0; i < tc.workers; i++ {
			n := share(tc.trials, tc.workers, i)
			if n < tc.trials/tc.workers || n > tc.trials/tc.workers+1 {
				t.Fatalf("share(%d,%d,%d)=%d is unbalanced", tc.trials, tc.workers, i, n)
			}
			sum += n
		}
		if sum != tc.trials {
			t.Fatalf("shares of %d over %d workers sum to %d", tc.trials, tc.workers, sum)
		}
	}
}
