// Package order holds the comparison guard shared by the sorting packages.
package order

import (
	"cmp"

	"github.com/matzehuels/sorttrace/pkg/errors"
)

// Valid reports whether v takes part in a total order. Only floating-point
// NaN fails.
func Valid[T cmp.Ordered](v T) bool {
	return v == v
}

// Check returns an INVALID_INPUT error if either operand of a comparison is
// not totally ordered.
func Check[T cmp.Ordered](a, b T) error {
	if !Valid(a) {
		return errors.New(errors.ErrCodeInvalidInput, "value %v is not comparable", a)
	}
	if !Valid(b) {
		return errors.New(errors.ErrCodeInvalidInput, "value %v is not comparable", b)
	}
	return nil
}
