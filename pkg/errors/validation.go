package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxValues caps the number of values accepted by ParseValues.
const MaxValues = 100_000

// ParseValues parses a list of integers separated by commas and/or whitespace.
//
// Empty tokens are skipped, so "8, 3,,1" parses as [8 3 1]. The validation
// rules are:
//   - At least one value must be present
//   - Every token must be a base-10 integer
//   - No more than MaxValues values
func ParseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, New(ErrCodeInvalidInput, "at least one number is required")
	}
	if len(fields) > MaxValues {
		return nil, New(ErrCodeInvalidInput, "too many values (max %d)", MaxValues)
	}

	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, Wrap(ErrCodeInvalidInput, err, "%q is not a valid integer", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseLength parses an array length. Non-integer and negative inputs are
// rejected with ErrCodeInvalidInput.
func ParseLength(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "length %q is not an integer", s)
	}
	if err := ValidateLength(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateLength rejects negative array lengths.
func ValidateLength(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "length must be non-negative, got %d", n)
	}
	return nil
}

// ValidateSize checks that n is within [1, max].
func ValidateSize(n, max int) error {
	if n < 1 || n > max {
		return New(ErrCodeInvalidLength, "size must be between 1 and %d, got %d", max, n)
	}
	return nil
}

// ValidateRange checks that [l, r) is a valid half-open range over a slice of
// length n.
func ValidateRange(l, r, n int) error {
	if l < 0 || r > n || l > r {
		return New(ErrCodeInvalidInput, "invalid range [%d, %d) for length %d", l, r, n)
	}
	return nil
}
