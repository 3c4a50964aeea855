// Package calltree draws sorting recursion trees with Graphviz.
//
// [QuicksortDOT] draws the call tree recorded by a quicksort trace at any
// step, and [MergeDOT] draws the fixed [l:r] recursion of merge sort. Both
// produce DOT source that [Render] turns into SVG or PNG:
//
//	tr, _ := quicktrace.Build(values)
//	dot := calltree.QuicksortDOT(tr, calltree.Options{Step: calltree.FinalStep})
//	svg, err := calltree.RenderSVG(ctx, dot)
package calltree
