package sweep

import (
	"slices"

	"github.com/matzehuels/sorttrace/pkg/cache"
	"github.com/matzehuels/sorttrace/pkg/errors"
)

// Defaults follow the classroom comparison tool: random sizes between 100 and
// 10,000 filled with values in [1, 10,000].
const (
	DefaultMinSize  = 100
	DefaultMaxSize  = 10_000
	DefaultMaxValue = 10_000

	// MaxArraySize caps a single measured array.
	MaxArraySize = 1_000_000
	// MaxLists caps the number of random sizes per sweep.
	MaxLists = 1_000
)

// Options describes one sweep. Either Sizes or RandomLists must be set; when
// both are, Sizes wins.
type Options struct {
	Sizes       []int  `json:"sizes,omitempty"`
	RandomLists int    `json:"random_lists,omitempty"`
	MinSize     int    `json:"min_size,omitempty"`
	MaxSize     int    `json:"max_size,omitempty"`
	MaxValue    int    `json:"max_value,omitempty"`
	Seed        uint64 `json:"seed,omitempty"`

	// Refresh skips the cache read; the fresh report is still stored.
	Refresh bool `json:"-"`
}

// ValidateAndSetDefaults fills zero fields with defaults and checks ranges.
func (o *Options) ValidateAndSetDefaults() error {
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.MaxValue == 0 {
		o.MaxValue = DefaultMaxValue
	}
	return o.Validate()
}

// Validate checks the options without changing them.
func (o *Options) Validate() error {
	if len(o.Sizes) == 0 && o.RandomLists <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "either sizes or a positive number of random lists is required")
	}
	for _, n := range o.Sizes {
		if err := errors.ValidateSize(n, MaxArraySize); err != nil {
			return err
		}
	}
	if len(o.Sizes) == 0 {
		if err := errors.ValidateSize(o.RandomLists, MaxLists); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "random lists")
		}
		if err := errors.ValidateSize(o.MinSize, MaxArraySize); err != nil {
			return err
		}
		if err := errors.ValidateSize(o.MaxSize, MaxArraySize); err != nil {
			return err
		}
		if o.MinSize > o.MaxSize {
			return errors.New(errors.ErrCodeInvalidInput, "min size %d exceeds max size %d", o.MinSize, o.MaxSize)
		}
	}
	if o.MaxValue < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max value must be positive, got %d", o.MaxValue)
	}
	return nil
}

// KeyOpts returns the cache key options. Fields that do not affect the report
// are left zero.
func (o *Options) KeyOpts() cache.SweepKeyOpts {
	k := cache.SweepKeyOpts{MaxValue: o.MaxValue, Seed: o.Seed}
	if len(o.Sizes) > 0 {
		k.Sizes = slices.Clone(o.Sizes)
	} else {
		k.RandomLists = o.RandomLists
		k.MinSize = o.MinSize
		k.MaxSize = o.MaxSize
	}
	return k
}
