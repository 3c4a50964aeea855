package mergetrace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the variants of Event.
type Kind uint8

// Event kinds, in the order they can first appear for a range.
const (
	KindEnter Kind = iota + 1
	KindCompare
	KindTake
	KindWrite
	KindExit
)

var kindNames = map[Kind]string{
	KindEnter:   "enter",
	KindCompare: "compare",
	KindTake:    "take",
	KindWrite:   "write",
	KindExit:    "exit",
}

// String returns the lowercase kind name used in JSON.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is one step of a merge sort trace.
//
// Only the fields belonging to Kind are meaningful:
//
//	Enter, Exit: L, R, Snapshot
//	Compare:     I, J
//	Take:        Index
//	Write:       L, R, Pos, Value
//
// Snapshot is a copy owned by the event; the generator never touches it again.
type Event[T any] struct {
	Kind     Kind
	L, R     int
	I, J     int
	Index    int
	Pos      int
	Value    T
	Snapshot []T
}

// Enter returns an Enter event.
func Enter[T any](l, r int, snapshot []T) Event[T] {
	return Event[T]{Kind: KindEnter, L: l, R: r, Snapshot: snapshot}
}

// Exit returns an Exit event.
func Exit[T any](l, r int, snapshot []T) Event[T] {
	return Event[T]{Kind: KindExit, L: l, R: r, Snapshot: snapshot}
}

// Compare returns a Compare event.
func Compare[T any](i, j int) Event[T] {
	return Event[T]{Kind: KindCompare, I: i, J: j}
}

// Take returns a Take event.
func Take[T any](index int) Event[T] {
	return Event[T]{Kind: KindTake, Index: index}
}

// Write returns a Write event.
func Write[T any](l, r, pos int, value T) Event[T] {
	return Event[T]{Kind: KindWrite, L: l, R: r, Pos: pos, Value: value}
}

// String renders the event as e.g. "Enter(0,3,[3,1,2])" or "Compare(1,2)".
func (e Event[T]) String() string {
	switch e.Kind {
	case KindEnter:
		return fmt.Sprintf("Enter(%d,%d,%s)", e.L, e.R, FormatSlice(e.Snapshot))
	case KindExit:
		return fmt.Sprintf("Exit(%d,%d,%s)", e.L, e.R, FormatSlice(e.Snapshot))
	case KindCompare:
		return fmt.Sprintf("Compare(%d,%d)", e.I, e.J)
	case KindTake:
		return fmt.Sprintf("Take(%d)", e.Index)
	case KindWrite:
		return fmt.Sprintf("Write(%d,%d,%d,%v)", e.L, e.R, e.Pos, e.Value)
	}
	return e.Kind.String()
}

// FormatSlice renders values as "[a,b,c]".
func FormatSlice[T any](values []T) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

type eventJSON[T any] struct {
	Kind     string `json:"kind"`
	L        *int   `json:"l,omitempty"`
	R        *int   `json:"r,omitempty"`
	I        *int   `json:"i,omitempty"`
	J        *int   `json:"j,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Pos      *int   `json:"pos,omitempty"`
	Value    *T     `json:"value,omitempty"`
	Snapshot *[]T   `json:"snapshot,omitempty"`
}

// MarshalJSON encodes only the fields that belong to the event's kind.
func (e Event[T]) MarshalJSON() ([]byte, error) {
	out := eventJSON[T]{Kind: e.Kind.String()}
	switch e.Kind {
	case KindEnter, KindExit:
		out.L, out.R = &e.L, &e.R
		snap := e.Snapshot
		if snap == nil {
			snap = []T{}
		}
		out.Snapshot = &snap
	case KindCompare:
		out.I, out.J = &e.I, &e.J
	case KindTake:
		out.Index = &e.Index
	case KindWrite:
		out.L, out.R, out.Pos = &e.L, &e.R, &e.Pos
		out.Value = &e.Value
	}
	return json.Marshal(out)
}
