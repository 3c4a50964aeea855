// Package bounds computes exact best-case and worst-case comparison counts of
// top-down merge sort as a function of the input length.
//
// For n elements the sort splits into a = n/2 and b = n-a and merges the two
// sorted runs. Merging costs at least min(a, b) comparisons (one run is
// entirely smaller than the other) and at most n-1 (one run is exhausted only
// after every other element has been compared). Hence
//
//	best(n)  = best(a)  + best(b)  + min(a, b)    best(0)  = best(1)  = 0
//	worst(n) = worst(a) + worst(b) + (n - 1)      worst(0) = worst(1) = 0
//
// Values depend only on n. Results are memoized in a process-wide cache that
// only ever grows, so repeated queries for growing n are cheap.
//
// Lengths above MaxLength are rejected: worst(n) grows as n*log2(n) and must
// fit in an int.
package bounds

import (
	"math/bits"
	"sync"

	"github.com/matzehuels/sorttrace/pkg/errors"
)

// Bounds holds the best and worst comparison counts for one length.
type Bounds struct {
	N     int `json:"n"`
	Best  int `json:"best"`
	Worst int `json:"worst"`
}

const (
	// MaxLength is the largest n accepted. worst(MaxLength) is below 2^54 on
	// 64-bit platforms and below 2^21 on 32-bit ones.
	MaxLength = 1 << (bits.UintSize - 16)

	// MaxTableRows caps the number of rows one Table call returns.
	MaxTableRows = 10_000
)

var memo = struct {
	sync.Mutex
	best  map[int]int
	worst map[int]int
}{
	best:  map[int]int{},
	worst: map[int]int{},
}

// BestCase returns the fewest comparisons merge sort can make on n elements.
func BestCase(n int) (int, error) {
	if err := validate(n); err != nil {
		return 0, err
	}
	memo.Lock()
	defer memo.Unlock()
	return best(n), nil
}

// WorstCase returns the most comparisons merge sort can make on n elements.
func WorstCase(n int) (int, error) {
	if err := validate(n); err != nil {
		return 0, err
	}
	memo.Lock()
	defer memo.Unlock()
	return worst(n), nil
}

// Of returns both bounds for n.
func Of(n int) (Bounds, error) {
	if err := validate(n); err != nil {
		return Bounds{}, err
	}
	memo.Lock()
	defer memo.Unlock()
	return Bounds{N: n, Best: best(n), Worst: worst(n)}, nil
}

// Table returns the bounds for every length in [from, to].
func Table(from, to int) ([]Bounds, error) {
	if err := validate(from); err != nil {
		return nil, err
	}
	if err := validate(to); err != nil {
		return nil, err
	}
	if to < from {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid length range %d..%d", from, to)
	}
	if to-from >= MaxTableRows {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at most %d rows per table, got %d..%d", MaxTableRows, from, to)
	}
	memo.Lock()
	defer memo.Unlock()
	out := make([]Bounds, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, Bounds{N: n, Best: best(n), Worst: worst(n)})
	}
	return out, nil
}

func validate(n int) error {
	if err := errors.ValidateLength(n); err != nil {
		return err
	}
	if n > MaxLength {
		return errors.New(errors.ErrCodeInvalidInput, "length %d exceeds the maximum of %d", n, MaxLength)
	}
	return nil
}

// best and worst must be called with memo held.

func best(n int) int {
	if n <= 1 {
		return 0
	}
	if v, ok := memo.best[n]; ok {
		return v
	}
	a := n / 2
	b := n - a
	v := best(a) + best(b) + min(a, b)
	memo.best[n] = v
	return v
}

func worst(n int) int {
	if n <= 1 {
		return 0
	}
	if v, ok := memo.worst[n]; ok {
		return v
	}
	a := n / 2
	b := n - a
	v := worst(a) + worst(b) + (n - 1)
	memo.worst[n] = v
	return v
}

// cached reports how many lengths are memoized. Used by tests.
func cached() int {
	memo.Lock()
	defer memo.Unlock()
	return len(memo.best) + len(memo.worst)
}
