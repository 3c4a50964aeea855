package mergetrace

import (
	"cmp"
	"iter"
	"slices"

	"github.com/matzehuels/sorttrace/internal/order"
	"github.com/matzehuels/sorttrace/pkg/errors"
)

// ErrEndOfTrace is returned by Next once the final Exit event has been pulled.
var ErrEndOfTrace error = errors.New(errors.ErrCodeEndOfTrace, "merge trace exhausted")

type phase uint8

const (
	phaseEnter  phase = iota // emit Enter
	phaseLeft                // push left half
	phaseRight               // push right half
	phaseMerge               // compare heads or drain
	phaseTake                // emit Take for the compared pair
	phaseWrite               // emit Write for merged[k]
	phaseCommit              // store merged[k] into the array
	phaseExit                // emit Exit and pop
)

// frame is the suspended state of one recursive call over [l, r).
type frame[T any] struct {
	l, m, r int
	phase   phase
	i, j    int
	merged  []T
	k       int
}

// Generator produces the events of a top-down merge sort one at a time.
//
// Recursion is modeled by an explicit stack of frames, so a Generator can be
// left suspended between pulls for as long as the caller likes. It is not safe
// for concurrent use and cannot be restarted.
type Generator[T cmp.Ordered] struct {
	arr    []T
	stack  []frame[T]
	pulled int
	err    error
}

// Begin starts a trace over a private copy of arr. The returned slice is that
// copy; it is sorted in place as Write events are consumed. arr itself is
// never modified.
func Begin[T cmp.Ordered](arr []T) (*Generator[T], []T) {
	g, handle, _ := BeginRange(arr, 0, len(arr))
	return g, handle
}

// BeginRange is like Begin but sorts only [l, r) of the copy.
func BeginRange[T cmp.Ordered](arr []T, l, r int) (*Generator[T], []T, error) {
	if err := errors.ValidateRange(l, r, len(arr)); err != nil {
		return nil, nil, err
	}
	work := make([]T, len(arr))
	copy(work, arr)
	return &Generator[T]{
		arr:   work,
		stack: []frame[T]{{l: l, r: r}},
	}, work, nil
}

// Next returns the next event. After the last event it returns ErrEndOfTrace
// on every call. If a comparison touches a value that is not totally ordered
// (NaN), Next returns an INVALID_INPUT error and keeps returning it.
func (g *Generator[T]) Next() (Event[T], error) {
	if g.err != nil {
		return Event[T]{}, g.err
	}
	for len(g.stack) > 0 {
		f := &g.stack[len(g.stack)-1]
		switch f.phase {
		case phaseEnter:
			ev := Enter(f.l, f.r, g.snapshot(f.l, f.r))
			if f.r-f.l <= 1 {
				f.phase = phaseExit
			} else {
				f.m = (f.l + f.r) / 2
				f.phase = phaseLeft
			}
			return g.emit(ev)

		case phaseLeft:
			f.phase = phaseRight
			g.stack = append(g.stack, frame[T]{l: f.l, r: f.m})

		case phaseRight:
			f.phase = phaseMerge
			f.i, f.j = f.l, f.m
			f.merged = make([]T, 0, f.r-f.l)
			g.stack = append(g.stack, frame[T]{l: f.m, r: f.r})

		case phaseMerge:
			switch {
			case f.i < f.m && f.j < f.r:
				if err := order.Check(g.arr[f.i], g.arr[f.j]); err != nil {
					return g.fail(err)
				}
				f.phase = phaseTake
				return g.emit(Compare[T](f.i, f.j))
			case f.i < f.m:
				idx := f.i
				f.merged = append(f.merged, g.arr[idx])
				f.i++
				return g.emit(Take[T](idx))
			case f.j < f.r:
				idx := f.j
				f.merged = append(f.merged, g.arr[idx])
				f.j++
				return g.emit(Take[T](idx))
			default:
				f.phase = phaseWrite
			}

		case phaseTake:
			// Left wins ties.
			idx := f.j
			if g.arr[f.i] <= g.arr[f.j] {
				idx = f.i
				f.i++
			} else {
				f.j++
			}
			f.merged = append(f.merged, g.arr[idx])
			f.phase = phaseMerge
			return g.emit(Take[T](idx))

		case phaseWrite:
			if f.k == len(f.merged) {
				f.merged = nil
				f.phase = phaseExit
				continue
			}
			f.phase = phaseCommit
			return g.emit(Write(f.l, f.r, f.l+f.k, f.merged[f.k]))

		case phaseCommit:
			g.arr[f.l+f.k] = f.merged[f.k]
			f.k++
			f.phase = phaseWrite

		case phaseExit:
			ev := Exit(f.l, f.r, g.snapshot(f.l, f.r))
			g.stack = g.stack[:len(g.stack)-1]
			return g.emit(ev)
		}
	}
	return Event[T]{}, ErrEndOfTrace
}

// All returns an iterator that pulls events until the end of the trace.
// A comparison error is yielded once and ends the iteration.
func (g *Generator[T]) All() iter.Seq2[Event[T], error] {
	return func(yield func(Event[T], error) bool) {
		for {
			ev, err := g.Next()
			if err == ErrEndOfTrace {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// Done reports whether no further events will be produced.
func (g *Generator[T]) Done() bool {
	return g.err != nil || len(g.stack) == 0
}

// Pulled returns the number of events produced so far.
func (g *Generator[T]) Pulled() int {
	return g.pulled
}

// Err returns the comparison error that stopped the trace, if any.
func (g *Generator[T]) Err() error {
	return g.err
}

func (g *Generator[T]) emit(ev Event[T]) (Event[T], error) {
	g.pulled++
	return ev, nil
}

func (g *Generator[T]) fail(err error) (Event[T], error) {
	g.err = err
	g.stack = nil
	return Event[T]{}, err
}

func (g *Generator[T]) snapshot(l, r int) []T {
	return slices.Clone(g.arr[l:r])
}
