// Package mergetrace turns top-down merge sort into a pull-based stream of
// execution events.
//
// # Overview
//
// A [Generator] sorts a private copy of its input while producing one
// [Event] per call to [Generator.Next]. Between calls it stays suspended
// with its recursion position and partially merged buffer intact, so a
// consumer can animate, pause and single-step the sort at any pace:
//
//	gen, arr := mergetrace.Begin([]int{3, 1, 2})
//	for {
//	    ev, err := gen.Next()
//	    if err == mergetrace.ErrEndOfTrace {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(ev, arr)
//	}
//
// # Event order
//
// For every range [l, r) the events are Enter, then the complete trace of the
// left half [l, m), then the right half [m, r), then the merge (Compare and
// Take pairs, Take only while draining), then one Write per position, then
// Exit. The left element wins ties, so the sort is stable.
//
// A Write event is produced before its value is stored; the store happens on
// the following pull. The returned array therefore shows the pre-write state
// while a Write is being displayed.
//
// # Lifetime
//
// Generators cannot rewind or restart. Once [ErrEndOfTrace] has been
// returned, start a new trace from a fresh copy of the input to replay.
package mergetrace
