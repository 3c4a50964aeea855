package quicktrace

import "github.com/matzehuels/sorttrace/pkg/errors"

// Cursor walks a Trace one step at a time in either direction. It starts on
// step 0. A Cursor is not safe for concurrent use.
type Cursor[T any] struct {
	trace *Trace[T]
	index int
}

// NewCursor returns a cursor positioned on the first step of t.
func NewCursor[T any](t *Trace[T]) *Cursor[T] {
	return &Cursor[T]{trace: t}
}

// Trace returns the trace being walked.
func (c *Cursor[T]) Trace() *Trace[T] { return c.trace }

// Index returns the current step index.
func (c *Cursor[T]) Index() int { return c.index }

// Current returns the step under the cursor.
func (c *Cursor[T]) Current() Step[T] {
	s, _ := c.trace.Step(c.index)
	return s
}

// Next advances one step. It reports false, without moving, on the last step.
func (c *Cursor[T]) Next() bool {
	if c.AtEnd() {
		return false
	}
	c.index++
	return true
}

// Prev moves back one step. It reports false, without moving, on step 0.
func (c *Cursor[T]) Prev() bool {
	if c.AtStart() {
		return false
	}
	c.index--
	return true
}

// Reset returns to step 0.
func (c *Cursor[T]) Reset() { c.index = 0 }

// Seek jumps to step i.
func (c *Cursor[T]) Seek(i int) error {
	if i < 0 || i >= c.trace.Len() {
		return errors.New(errors.ErrCodeInvalidInput, "step %d out of range [0, %d)", i, c.trace.Len())
	}
	c.index = i
	return nil
}

// AtStart reports whether the cursor is on the first step.
func (c *Cursor[T]) AtStart() bool { return c.index == 0 }

// AtEnd reports whether the cursor is on the last step.
func (c *Cursor[T]) AtEnd() bool { return c.index >= c.trace.Len()-1 }

// ListAt returns the list node id displays at the current step.
func (c *Cursor[T]) ListAt(id int) []T { return c.trace.ListAt(id, c.index) }
