package counting

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/sorttrace/pkg/bounds"
	"github.com/matzehuels/sorttrace/pkg/errors"
)

func TestQuicksort(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		want        []int
		comparisons int
	}{
		{"empty", []int{}, []int{}, 0},
		{"nil", nil, []int{}, 0},
		{"single", []int{5}, []int{5}, 0},
		// pivot 1 (index 1): scan 2 elements.
		{"pair", []int{2, 1}, []int{1, 2}, 2},
		// pivot 2: 3 scans, less=[1], greater=[3].
		{"three", []int{3, 2, 1}, []int{1, 2, 3}, 3},
		// all equal: one scan of 4, nothing to recurse on.
		{"all equal", []int{7, 7, 7, 7}, []int{7, 7, 7, 7}, 4},
		// pivot 7 (index 3): less=[3,1,0,2] greater=[8,10].
		// less pivot 0 (index 2): 4 scans, greater=[3,1,2] -> pivot 1: 3 scans, greater=[3,2] -> pivot 2: 2 scans.
		// greater [8,10] pivot 10: 2 scans.
		{"mixed", []int{8, 3, 1, 7, 0, 10, 2}, []int{0, 1, 2, 3, 7, 8, 10}, 7 + 4 + 3 + 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, comparisons, err := Quicksort(tt.input)
			if err != nil {
				t.Fatalf("Quicksort() error: %v", err)
			}
			if !slices.Equal(got, tt.want) || got == nil {
				t.Errorf("Quicksort(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if comparisons != tt.comparisons {
				t.Errorf("Quicksort(%v) comparisons = %d, want %d", tt.input, comparisons, tt.comparisons)
			}
		})
	}
}

func TestMergesort(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		want        []int
		comparisons int
	}{
		{"empty", []int{}, []int{}, 0},
		{"single", []int{5}, []int{5}, 0},
		{"pair", []int{2, 1}, []int{1, 2}, 1},
		{"three", []int{3, 1, 2}, []int{1, 2, 3}, 3},
		// [1,2] + [3,4]: left drains after 2 comparisons; 1 + 1 + 2.
		{"sorted four", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 4},
		{"equal four", []int{4, 4, 4, 4}, []int{4, 4, 4, 4}, 4},
		// [3,4] + [1,2]: right drains after 2 comparisons.
		{"best four", []int{3, 4, 1, 2}, []int{1, 2, 3, 4}, 4},
		{"interleaved four", []int{1, 3, 2, 4}, []int{1, 2, 3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, comparisons, err := Mergesort(tt.input)
			if err != nil {
				t.Fatalf("Mergesort() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Mergesort(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if comparisons != tt.comparisons {
				t.Errorf("Mergesort(%v) comparisons = %d, want %d", tt.input, comparisons, tt.comparisons)
			}
		})
	}
}

func TestSortersDoNotMutateInput(t *testing.T) {
	in := []int{5, 3, 9, 1, 3}
	original := slices.Clone(in)

	if _, _, err := Quicksort(in); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Mergesort(in); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(in, original) {
		t.Errorf("input mutated: %v, want %v", in, original)
	}
}

func TestSortednessRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 50; trial++ {
		in := make([]int, rng.IntN(200))
		for i := range in {
			in[i] = rng.IntN(100) - 50
		}
		want := slices.Clone(in)
		slices.Sort(want)

		qs, _, err := Quicksort(in)
		if err != nil {
			t.Fatal(err)
		}
		ms, _, err := Mergesort(in)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(qs, want) {
			t.Errorf("Quicksort(%v) = %v", in, qs)
		}
		if !slices.Equal(ms, want) {
			t.Errorf("Mergesort(%v) = %v", in, ms)
		}
	}
}

func TestMergesortWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for n := 0; n <= 64; n++ {
		best, err := bounds.BestCase(n)
		if err != nil {
			t.Fatal(err)
		}
		worst, err := bounds.WorstCase(n)
		if err != nil {
			t.Fatal(err)
		}

		for trial := 0; trial < 20; trial++ {
			in := make([]int, n)
			for i := range in {
				in[i] = rng.IntN(n + 1)
			}
			_, got, err := Mergesort(in)
			if err != nil {
				t.Fatal(err)
			}
			if got < best || got > worst {
				t.Errorf("n=%d: comparisons %d outside [%d, %d] for %v", n, got, best, worst, in)
			}
		}

		ascending := make([]int, n)
		for i := range ascending {
			ascending[i] = i
		}
		if _, got, _ := Mergesort(ascending); got != best {
			t.Errorf("n=%d: sorted input comparisons = %d, want best case %d", n, got, best)
		}
	}
}

func TestNaNIsInvalidInput(t *testing.T) {
	in := []float64{2, math.NaN(), 1}
	if _, _, err := Quicksort(in); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Quicksort() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, _, err := Mergesort(in); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Mergesort() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestStrings(t *testing.T) {
	in := []string{"pear", "apple", "fig"}
	want := []string{"apple", "fig", "pear"}
	if got, _, _ := Quicksort(in); !slices.Equal(got, want) {
		t.Errorf("Quicksort(%v) = %v", in, got)
	}
	if got, _, _ := Mergesort(in); !slices.Equal(got, want) {
		t.Errorf("Mergesort(%v) = %v", in, got)
	}
}
