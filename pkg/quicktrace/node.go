package quicktrace

// Node is one recursive call in the quicksort call tree.
//
// IDs are assigned from 1 in call order. The root has ParentID 0. StartedAt
// and ResolvedAt are indices into the step list: the call's Start step and
// its Base or Result step.
type Node[T any] struct {
	ID         int   `json:"id"`
	ParentID   int   `json:"parent,omitempty"`
	Level      int   `json:"level"`
	Children   []int `json:"children"`
	Input      []T   `json:"input"`
	Output     []T   `json:"output"`
	StartedAt  int   `json:"started_at"`
	ResolvedAt int   `json:"resolved_at"`
}

// IsRoot reports whether n is the top-level call.
func (n Node[T]) IsRoot() bool { return n.ParentID == 0 }

// IsLeaf reports whether n is a base case.
func (n Node[T]) IsLeaf() bool { return len(n.Children) == 0 }
