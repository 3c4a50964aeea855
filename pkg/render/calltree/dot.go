package calltree

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/sorttrace/pkg/mergetrace"
	"github.com/matzehuels/sorttrace/pkg/quicktrace"
)

// FinalStep selects the state after the last step.
const FinalStep = -1

// Colors shared with the terminal UI palette.
const (
	colorActive  = "#ffd75f"
	colorDone    = "#d7f5d7"
	colorPending = "#eeeeee"
	colorGray    = "#8a8a8a"
)

// Options configures call-tree generation.
type Options struct {
	// Step is the quicksort step index whose state is drawn. FinalStep draws
	// the finished tree. Ignored by MergeDOT.
	Step int

	// Detailed adds node ids, levels and pivots (quicksort) or the sorted
	// segment (merge sort) to labels.
	Detailed bool
}

func header(buf *bytes.Buffer, name string) {
	fmt.Fprintf(buf, "digraph %s {\n", name)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.45;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")
}

// QuicksortDOT renders the quicksort call tree of tr as Graphviz DOT. Each
// call is a box labeled with the list it shows at opts.Step. The call whose
// step is current is highlighted, resolved calls are green, and calls that
// have not started yet are dashed.
func QuicksortDOT[T any](tr *quicktrace.Trace[T], opts Options) string {
	step := opts.Step
	if step < 0 || step >= tr.Len() {
		step = tr.Len() - 1
	}
	current, _ := tr.Step(step)

	pivots := map[int]T{}
	for _, s := range tr.Steps() {
		if s.Kind == quicktrace.StepPartition {
			pivots[s.NodeID] = s.Pivot
		}
	}

	var buf bytes.Buffer
	header(&buf, "quicksort")

	for _, n := range tr.Nodes() {
		label := mergetrace.FormatSlice(tr.ListAt(n.ID, step))
		if opts.Detailed {
			label = fmt.Sprintf("#%d  L%d\n%s", n.ID, n.Level, label)
			if p, ok := pivots[n.ID]; ok {
				label += fmt.Sprintf("\npivot %v", p)
			}
		}

		attrs := []string{fmt.Sprintf("label=%q", label)}
		switch {
		case n.ID == current.NodeID:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorActive), "penwidth=2")
		case step >= n.ResolvedAt:
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorDone))
		case step < n.StartedAt:
			attrs = append(attrs, "style=\"rounded,dashed\"", fmt.Sprintf("fontcolor=%q", colorGray))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range tr.Nodes() {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ID, c)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// MergeDOT renders the merge sort recursion tree over values as Graphviz
// DOT. Each [l:r] range is a box labeled with its range and initial
// contents; with Detailed the sorted segment is shown as well.
func MergeDOT[T cmp.Ordered](values []T, opts Options) string {
	ranges := mergetrace.Ranges(len(values))

	var buf bytes.Buffer
	header(&buf, "mergesort")

	for _, r := range ranges {
		seg := values[r.L:r.R]
		label := fmt.Sprintf("[%d:%d]\n%s", r.L, r.R, mergetrace.FormatSlice(seg))
		if opts.Detailed && !r.Leaf() {
			label += "\n" + mergetrace.FormatSlice(slices.Sorted(slices.Values(seg)))
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if r.Leaf() {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorPending))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", rangeID(r.L, r.R), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range ranges {
		if r.Leaf() {
			continue
		}
		m := (r.L + r.R) / 2
		fmt.Fprintf(&buf, "  %s -> %s;\n", rangeID(r.L, r.R), rangeID(r.L, m))
		fmt.Fprintf(&buf, "  %s -> %s;\n", rangeID(r.L, r.R), rangeID(m, r.R))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func rangeID(l, r int) string {
	return fmt.Sprintf("r%d_%d", l, r)
}
