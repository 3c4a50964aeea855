// Package counting sorts whole arrays while counting key comparisons.
//
// The two sorters answer "how many comparisons does this concrete input
// cost?" and are used for empirical measurement across array sizes. They use
// different counting conventions on purpose:
//
//   - [Quicksort] counts one comparison per element scanned against the pivot,
//     including the pivot itself and ties. A partition of k elements costs k.
//   - [Mergesort] counts one comparison per head-to-head comparison while
//     merging. Draining an exhausted run costs nothing.
//
// Neither function modifies its argument.
package counting

import (
	"cmp"

	"github.com/matzehuels/sorttrace/internal/order"
)

// Quicksort sorts a copy of arr with a 3-way partition around the middle
// element and returns it with the number of element-vs-pivot comparisons.
func Quicksort[T cmp.Ordered](arr []T) ([]T, int, error) {
	comparisons := 0
	sorted, err := quicksort(arr, &comparisons)
	if err != nil {
		return nil, 0, err
	}
	return sorted, comparisons, nil
}

func quicksort[T cmp.Ordered](a []T, comparisons *int) ([]T, error) {
	if len(a) <= 1 {
		out := make([]T, len(a))
		copy(out, a)
		return out, nil
	}
	pivot := a[len(a)/2]
	var less, equal, greater []T
	for _, x := range a {
		*comparisons++
		if err := order.Check(x, pivot); err != nil {
			return nil, err
		}
		switch {
		case x < pivot:
			less = append(less, x)
		case x == pivot:
			equal = append(equal, x)
		default:
			greater = append(greater, x)
		}
	}

	left, err := quicksort(less, comparisons)
	if err != nil {
		return nil, err
	}
	right, err := quicksort(greater, comparisons)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(a))
	out = append(out, left...)
	out = append(out, equal...)
	return append(out, right...), nil
}

// Mergesort sorts a copy of arr with top-down merge sort and returns it with
// the number of head-to-head comparisons made while merging. Ties take the
// left run first.
func Mergesort[T cmp.Ordered](arr []T) ([]T, int, error) {
	comparisons := 0
	sorted, err := mergesort(arr, &comparisons)
	if err != nil {
		return nil, 0, err
	}
	return sorted, comparisons, nil
}

func mergesort[T cmp.Ordered](a []T, comparisons *int) ([]T, error) {
	if len(a) <= 1 {
		out := make([]T, len(a))
		copy(out, a)
		return out, nil
	}
	mid := len(a) / 2
	left, err := mergesort(a[:mid], comparisons)
	if err != nil {
		return nil, err
	}
	right, err := mergesort(a[mid:], comparisons)
	if err != nil {
		return nil, err
	}
	return merge(left, right, comparisons)
}

func merge[T cmp.Ordered](left, right []T, comparisons *int) ([]T, error) {
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		*comparisons++
		if err := order.Check(left[i], right[j]); err != nil {
			return nil, err
		}
		if left[i] <= right[j] {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...), nil
}
