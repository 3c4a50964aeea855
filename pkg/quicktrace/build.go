package quicktrace

import (
	"cmp"

	"github.com/matzehuels/sorttrace/internal/order"
)

// Build runs a recording quicksort over a copy of arr and returns the
// complete trace. The pivot of each call is its last element; the remaining
// elements are split, in their original order, into those strictly less than
// the pivot and those greater than or equal to it. Both sides are always
// recursed into, so every non-base call has exactly two children.
//
// Build fails with INVALID_INPUT if a value cannot be ordered against a pivot.
func Build[T cmp.Ordered](arr []T) (*Trace[T], error) {
	b := &builder[T]{}
	if _, err := b.sort(clone(arr), 0, 0); err != nil {
		return nil, err
	}
	return &Trace[T]{steps: b.steps, nodes: b.nodes}, nil
}

type builder[T cmp.Ordered] struct {
	steps []Step[T]
	nodes []Node[T]
}

func (b *builder[T]) sort(list []T, level, parent int) ([]T, error) {
	id := len(b.nodes) + 1
	b.nodes = append(b.nodes, Node[T]{
		ID:        id,
		ParentID:  parent,
		Level:     level,
		Children:  []int{},
		Input:     clone(list),
		StartedAt: len(b.steps),
	})
	if parent != 0 {
		p := &b.nodes[parent-1]
		p.Children = append(p.Children, id)
	}
	b.record(Step[T]{Kind: StepStart, NodeID: id, Level: level, List: clone(list)})

	if len(list) <= 1 {
		out := clone(list)
		b.resolve(id, out, Step[T]{Kind: StepBase, NodeID: id, Level: level, List: clone(out)})
		return out, nil
	}

	pivot := list[len(list)-1]
	lesser, geq := []T{}, []T{}
	for _, v := range list[:len(list)-1] {
		if err := order.Check(v, pivot); err != nil {
			return nil, err
		}
		if v < pivot {
			lesser = append(lesser, v)
		} else {
			geq = append(geq, v)
		}
	}
	b.record(Step[T]{
		Kind:           StepPartition,
		NodeID:         id,
		Level:          level,
		List:           clone(list),
		Pivot:          pivot,
		Lesser:         clone(lesser),
		GreaterOrEqual: clone(geq),
	})

	left, err := b.sort(lesser, level+1, id)
	if err != nil {
		return nil, err
	}
	right, err := b.sort(geq, level+1, id)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(list))
	out = append(out, left...)
	out = append(out, pivot)
	out = append(out, right...)
	b.resolve(id, out, Step[T]{Kind: StepResult, NodeID: id, Level: level, List: clone(out)})
	return out, nil
}

func (b *builder[T]) record(s Step[T]) {
	b.steps = append(b.steps, s)
}

func (b *builder[T]) resolve(id int, out []T, s Step[T]) {
	n := &b.nodes[id-1]
	n.Output = clone(out)
	n.ResolvedAt = len(b.steps)
	b.record(s)
}

func clone[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}
