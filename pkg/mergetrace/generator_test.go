package mergetrace_test

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/sorttrace/pkg/counting"
	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/mergetrace"
)

func collect[T int | float64](t *testing.T, g *mergetrace.Generator[T]) []mergetrace.Event[T] {
	t.Helper()
	var events []mergetrace.Event[T]
	for ev, err := range g.All() {
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func strings[T any](events []mergetrace.Event[T]) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.String()
	}
	return out
}

func TestTraceThreeElements(t *testing.T) {
	g, arr := mergetrace.Begin([]int{3, 1, 2})
	got := strings(collect(t, g))

	want := []string{
		"Enter(0,3,[3,1,2])",
		"Enter(0,1,[3])", "Exit(0,1,[3])",
		"Enter(1,3,[1,2])",
		"Enter(1,2,[1])", "Exit(1,2,[1])",
		"Enter(2,3,[2])", "Exit(2,3,[2])",
		"Compare(1,2)", "Take(1)", "Take(2)",
		"Write(1,3,1,1)", "Write(1,3,2,2)",
		"Exit(1,3,[1,2])",
		"Compare(0,1)", "Take(1)",
		"Compare(0,2)", "Take(2)",
		"Take(0)",
		"Write(0,3,0,1)", "Write(0,3,1,2)", "Write(0,3,2,3)",
		"Exit(0,3,[1,2,3])",
	}
	if !slices.Equal(got, want) {
		t.Errorf("events mismatch\ngot:  %v\nwant: %v", got, want)
	}
	if !slices.Equal(arr, []int{1, 2, 3}) {
		t.Errorf("array = %v, want [1 2 3]", arr)
	}
}

func TestDegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{"nil", nil, []string{"Enter(0,0,[])", "Exit(0,0,[])"}},
		{"empty", []int{}, []string{"Enter(0,0,[])", "Exit(0,0,[])"}},
		{"single", []int{5}, []string{"Enter(0,1,[5])", "Exit(0,1,[5])"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := mergetrace.Begin(tt.input)
			got := strings(collect(t, g))
			if !slices.Equal(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedness(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	inputs := [][]int{
		{},
		{1},
		{2, 1},
		{5, 5, 5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		{1, 2, 3, 4, 5},
	}
	for n := 1; n <= 64; n *= 2 {
		in := make([]int, n+1)
		for i := range in {
			in[i] = rng.IntN(20)
		}
		inputs = append(inputs, in)
	}

	for _, in := range inputs {
		original := slices.Clone(in)
		g, arr := mergetrace.Begin(in)
		collect(t, g)

		if !slices.IsSorted(arr) {
			t.Errorf("Begin(%v): array not sorted after exhaustion: %v", original, arr)
		}
		want := slices.Clone(original)
		slices.Sort(want)
		if !slices.Equal(arr, want) {
			t.Errorf("Begin(%v): array = %v, want %v", original, arr, want)
		}
		if !slices.Equal(in, original) {
			t.Errorf("caller array was mutated: %v, want %v", in, original)
		}
	}
}

func TestCompareCountMatchesCountingMergesort(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, n := range []int{0, 1, 2, 7, 100} {
		in := make([]int, n)
		for i := range in {
			in[i] = rng.IntN(50)
		}

		g, _ := mergetrace.Begin(in)
		compares := 0
		for _, ev := range collect(t, g) {
			if ev.Kind == mergetrace.KindCompare {
				compares++
			}
		}

		_, want, err := counting.Mergesort(in)
		if err != nil {
			t.Fatalf("counting.Mergesort() error: %v", err)
		}
		if compares != want {
			t.Errorf("n=%d: Compare events = %d, counting.Mergesort comparisons = %d", n, compares, want)
		}
	}
}

func TestEventNesting(t *testing.T) {
	in := []int{4, 9, 1, 7, 3, 3, 8, 0, 2}
	g, _ := mergetrace.Begin(in)
	events := collect(t, g)

	type span struct{ l, r int }
	var stack []span
	// children records the ranges entered directly under each open range.
	children := map[span][]span{}

	for _, ev := range events {
		switch ev.Kind {
		case mergetrace.KindEnter:
			s := span{ev.L, ev.R}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if s.l < parent.l || s.r > parent.r {
					t.Fatalf("%v entered outside parent %v", s, parent)
				}
				children[parent] = append(children[parent], s)
			}
			stack = append(stack, s)
		case mergetrace.KindExit:
			top := stack[len(stack)-1]
			if top != (span{ev.L, ev.R}) {
				t.Fatalf("Exit(%d,%d) does not close %v", ev.L, ev.R, top)
			}
			stack = stack[:len(stack)-1]
			if !slices.IsSorted(ev.Snapshot) {
				t.Errorf("Exit(%d,%d) snapshot not sorted: %v", ev.L, ev.R, ev.Snapshot)
			}
		case mergetrace.KindCompare, mergetrace.KindTake, mergetrace.KindWrite:
			top := stack[len(stack)-1]
			if top.r-top.l <= 1 {
				t.Fatalf("%v inside base case %v", ev, top)
			}
			// All sub-ranges must be closed before merging starts.
			if got := len(children[top]); got != 2 {
				t.Fatalf("%v in %v after %d children, want 2", ev, top, got)
			}
		}
	}
	if len(stack) != 0 {
		t.Errorf("unclosed ranges: %v", stack)
	}

	for parent, kids := range children {
		m := (parent.l + parent.r) / 2
		want := []span{{parent.l, m}, {m, parent.r}}
		if !slices.Equal(kids, want) {
			t.Errorf("children of %v = %v, want %v", parent, kids, want)
		}
	}
}

func TestLeftWinsTies(t *testing.T) {
	g, _ := mergetrace.Begin([]int{1, 1})
	got := strings(collect(t, g))
	want := []string{
		"Enter(0,2,[1,1])",
		"Enter(0,1,[1])", "Exit(0,1,[1])",
		"Enter(1,2,[1])", "Exit(1,2,[1])",
		"Compare(0,1)", "Take(0)", "Take(1)",
		"Write(0,2,0,1)", "Write(0,2,1,1)",
		"Exit(0,2,[1,1])",
	}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestWriteVisibleBeforeCommit(t *testing.T) {
	g, arr := mergetrace.Begin([]int{2, 1})

	var writes int
	for {
		ev, err := g.Next()
		if err == mergetrace.ErrEndOfTrace {
			break
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if ev.Kind != mergetrace.KindWrite {
			continue
		}
		writes++
		switch ev.Pos {
		case 0:
			if arr[0] != 2 {
				t.Errorf("arr[0] = %d while Write(pos=0) is pending, want 2", arr[0])
			}
		case 1:
			if arr[0] != 1 {
				t.Errorf("arr[0] = %d after first write committed, want 1", arr[0])
			}
		}
	}
	if writes != 2 {
		t.Errorf("writes = %d, want 2", writes)
	}
	if !slices.Equal(arr, []int{1, 2}) {
		t.Errorf("arr = %v, want [1 2]", arr)
	}
}

func TestEndOfTrace(t *testing.T) {
	g, _ := mergetrace.Begin([]int{2, 1})
	n := len(collect(t, g))

	if !g.Done() {
		t.Error("Done() = false after exhaustion")
	}
	if g.Pulled() != n {
		t.Errorf("Pulled() = %d, want %d", g.Pulled(), n)
	}
	for i := 0; i < 3; i++ {
		_, err := g.Next()
		if err != mergetrace.ErrEndOfTrace {
			t.Fatalf("Next() after end = %v, want ErrEndOfTrace", err)
		}
		if !errors.Is(err, errors.ErrCodeEndOfTrace) {
			t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeEndOfTrace)
		}
	}
	if g.Pulled() != n {
		t.Errorf("Pulled() changed after end: %d, want %d", g.Pulled(), n)
	}
}

func TestNaNFailsAtFirstComparison(t *testing.T) {
	g, _ := mergetrace.Begin([]float64{1, math.NaN(), 0})

	var err error
	var before int
	for {
		_, err = g.Next()
		if err != nil {
			break
		}
		before++
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	// Enter root, Enter/Exit [0,1), Enter [1,3), Enter/Exit [1,2), Enter/Exit [2,3).
	if before != 8 {
		t.Errorf("events before failure = %d, want 8", before)
	}
	if _, again := g.Next(); again != err {
		t.Errorf("Next() after failure = %v, want sticky %v", again, err)
	}
	if !g.Done() || g.Err() == nil {
		t.Error("generator should report Done and Err after failure")
	}
}

func TestNaNWithoutComparison(t *testing.T) {
	g, arr := mergetrace.Begin([]float64{math.NaN()})
	events := collect(t, g)
	if len(events) != 2 || !math.IsNaN(arr[0]) {
		t.Errorf("single NaN: events = %v, arr = %v", events, arr)
	}
}

func TestBeginRange(t *testing.T) {
	in := []int{9, 4, 3, 2, 1, 0}
	g, arr, err := mergetrace.BeginRange(in, 1, 5)
	if err != nil {
		t.Fatalf("BeginRange() error: %v", err)
	}
	events := collect(t, g)
	if first := events[0].String(); first != "Enter(1,5,[4,3,2,1])" {
		t.Errorf("first event = %s", first)
	}
	if !slices.Equal(arr, []int{9, 1, 2, 3, 4, 0}) {
		t.Errorf("arr = %v, want [9 1 2 3 4 0]", arr)
	}

	if _, _, err := mergetrace.BeginRange(in, 4, 2); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("BeginRange(4, 2) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestRangesMatchEnterOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5, 8, 13} {
		in := make([]int, n)
		g, _ := mergetrace.Begin(in)

		var entered []mergetrace.Range
		depth := 0
		for _, ev := range collect(t, g) {
			switch ev.Kind {
			case mergetrace.KindEnter:
				entered = append(entered, mergetrace.Range{L: ev.L, R: ev.R, Depth: depth})
				depth++
			case mergetrace.KindExit:
				depth--
			}
		}
		if got := mergetrace.Ranges(n); !slices.Equal(got, entered) {
			t.Errorf("Ranges(%d) = %v, want %v", n, got, entered)
		}
	}
	if mergetrace.Ranges(-1) != nil {
		t.Error("Ranges(-1) should be nil")
	}
}

func TestEventMarshalJSON(t *testing.T) {
	tests := []struct {
		ev   mergetrace.Event[int]
		want string
	}{
		{mergetrace.Enter(0, 0, []int(nil)), `{"kind":"enter","l":0,"r":0,"snapshot":[]}`},
		{mergetrace.Exit(1, 3, []int{1, 2}), `{"kind":"exit","l":1,"r":3,"snapshot":[1,2]}`},
		{mergetrace.Compare[int](0, 2), `{"kind":"compare","i":0,"j":2}`},
		{mergetrace.Take[int](0), `{"kind":"take","index":0}`},
		{mergetrace.Write(0, 3, 2, 0), `{"kind":"write","l":0,"r":3,"pos":2,"value":0}`},
	}

	for _, tt := range tests {
		got, err := json.Marshal(tt.ev)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", tt.ev, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.ev, got, tt.want)
		}
	}
}
