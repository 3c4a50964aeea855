package quicktrace

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sorttrace/pkg/mergetrace"
)

// StepKind discriminates the variants of Step.
type StepKind uint8

// Step kinds.
const (
	StepStart StepKind = iota + 1
	StepBase
	StepPartition
	StepResult
)

var stepNames = map[StepKind]string{
	StepStart:     "start",
	StepBase:      "base",
	StepPartition: "partition",
	StepResult:    "result",
}

// String returns the lowercase kind name used in JSON.
func (k StepKind) String() string {
	if s, ok := stepNames[k]; ok {
		return s
	}
	return fmt.Sprintf("step(%d)", uint8(k))
}

// Step is one entry of a quicksort trace.
//
// Pivot, Lesser and GreaterOrEqual are only set for StepPartition. For
// StepResult, List is the sorted output of the call; for the other kinds it
// is the call's input.
type Step[T any] struct {
	Kind           StepKind
	NodeID         int
	Level          int
	List           []T
	Pivot          T
	Lesser         []T
	GreaterOrEqual []T
}

// String renders the step as e.g. "Partition(1,0,[3,1,2],2,[1],[3])".
func (s Step[T]) String() string {
	name := s.Kind.String()
	if len(name) > 0 {
		name = string(name[0]-'a'+'A') + name[1:]
	}
	if s.Kind == StepPartition {
		return fmt.Sprintf("%s(%d,%d,%s,%v,%s,%s)", name, s.NodeID, s.Level,
			mergetrace.FormatSlice(s.List), s.Pivot,
			mergetrace.FormatSlice(s.Lesser), mergetrace.FormatSlice(s.GreaterOrEqual))
	}
	return fmt.Sprintf("%s(%d,%d,%s)", name, s.NodeID, s.Level, mergetrace.FormatSlice(s.List))
}

type stepJSON[T any] struct {
	Kind           string `json:"kind"`
	Node           int    `json:"node"`
	Level          int    `json:"level"`
	List           []T    `json:"list"`
	Pivot          *T     `json:"pivot,omitempty"`
	Lesser         *[]T   `json:"lesser,omitempty"`
	GreaterOrEqual *[]T   `json:"greater_or_equal,omitempty"`
}

// MarshalJSON encodes the partition fields only for partition steps.
func (s Step[T]) MarshalJSON() ([]byte, error) {
	out := stepJSON[T]{
		Kind:  s.Kind.String(),
		Node:  s.NodeID,
		Level: s.Level,
		List:  nonNil(s.List),
	}
	if s.Kind == StepPartition {
		lesser, geq := nonNil(s.Lesser), nonNil(s.GreaterOrEqual)
		out.Pivot = &s.Pivot
		out.Lesser = &lesser
		out.GreaterOrEqual = &geq
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
