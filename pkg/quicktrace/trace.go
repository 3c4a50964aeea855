package quicktrace

import (
	"encoding/json"
	"slices"
)

// Trace is the immutable result of Build: the ordered step list and the call
// tree it describes.
type Trace[T any] struct {
	steps []Step[T]
	nodes []Node[T]
}

// Len returns the number of steps.
func (t *Trace[T]) Len() int { return len(t.steps) }

// Step returns the step at index i.
func (t *Trace[T]) Step(i int) (Step[T], bool) {
	if i < 0 || i >= len(t.steps) {
		return Step[T]{}, false
	}
	return t.steps[i], true
}

// Steps returns a copy of the step list.
func (t *Trace[T]) Steps() []Step[T] { return slices.Clone(t.steps) }

// Node returns the call with the given id.
func (t *Trace[T]) Node(id int) (Node[T], bool) {
	if id < 1 || id > len(t.nodes) {
		return Node[T]{}, false
	}
	return t.nodes[id-1], true
}

// Nodes returns every call in id order.
func (t *Trace[T]) Nodes() []Node[T] { return slices.Clone(t.nodes) }

// Root returns the top-level call.
func (t *Trace[T]) Root() Node[T] { return t.nodes[0] }

// Result returns the sorted output of the whole run.
func (t *Trace[T]) Result() []T { return slices.Clone(t.nodes[0].Output) }

// ListAt returns the list a call displays once steps 0..step have been
// applied: its sorted output from its Base or Result step onwards, and its
// input before that. Because it depends only on the step index, moving a
// cursor backwards restores earlier lists.
func (t *Trace[T]) ListAt(id, step int) []T {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	if step >= n.ResolvedAt {
		return n.Output
	}
	return n.Input
}

// Started reports whether the call's Start step is within 0..step.
func (t *Trace[T]) Started(id, step int) bool {
	n, ok := t.Node(id)
	return ok && step >= n.StartedAt
}

// Levels groups node ids by recursion depth, each level in id order.
func (t *Trace[T]) Levels() [][]int {
	var levels [][]int
	for _, n := range t.nodes {
		for len(levels) <= n.Level {
			levels = append(levels, nil)
		}
		levels[n.Level] = append(levels[n.Level], n.ID)
	}
	return levels
}

// Depth returns the number of levels in the call tree.
func (t *Trace[T]) Depth() int {
	d := 0
	for _, n := range t.nodes {
		d = max(d, n.Level+1)
	}
	return d
}

// Leaves returns the ids of base-case calls in id order.
func (t *Trace[T]) Leaves() []int {
	var out []int
	for _, n := range t.nodes {
		if n.IsLeaf() {
			out = append(out, n.ID)
		}
	}
	return out
}

// MarshalJSON encodes the trace as {"steps": [...], "nodes": [...]}.
func (t *Trace[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Steps []Step[T] `json:"steps"`
		Nodes []Node[T] `json:"nodes"`
	}{t.steps, t.nodes})
}
