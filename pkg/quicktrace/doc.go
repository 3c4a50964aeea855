// Package quicktrace records a complete quicksort run as a replayable list of
// steps and the call tree those steps describe.
//
// Unlike [github.com/matzehuels/sorttrace/pkg/mergetrace], which is pull
// based, a quicksort trace is built eagerly by [Build] and then navigated in
// both directions with a [Cursor]. Each recursive call emits:
//
//	Start(node, level, list)
//	Base(node, level, list)                                 len(list) <= 1
//	Partition(node, level, list, pivot, lesser, greaterOrEqual)
//	...steps of the lesser call, then the greaterOrEqual call...
//	Result(node, level, sorted)
//
// The pivot is always the last element, which makes already sorted input the
// worst case with a call tree of depth n.
package quicktrace
