package mergetrace

// Range is one recursive call of the merge sort over [L, R) at recursion
// depth Depth.
type Range struct {
	L, R  int
	Depth int
}

// Leaf reports whether the range is a base case.
func (r Range) Leaf() bool {
	return r.R-r.L <= 1
}

// Ranges lists every range the merge sort of n elements recurses into, in
// the order their Enter events are produced. It depends only on n, so a
// consumer can lay out the recursion tree before pulling any event.
func Ranges(n int) []Range {
	if n < 0 {
		return nil
	}
	var out []Range
	var walk func(l, r, depth int)
	walk = func(l, r, depth int) {
		out = append(out, Range{L: l, R: r, Depth: depth})
		if r-l <= 1 {
			return
		}
		m := (l + r) / 2
		walk(l, m, depth+1)
		walk(m, r, depth+1)
	}
	walk(0, n, 0)
	return out
}
