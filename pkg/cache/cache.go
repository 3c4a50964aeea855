// Package cache stores computed results keyed by their inputs.
//
// The sweep runner caches whole reports here, and the CLI caches rendered
// call-tree artifacts. Three backends are provided:
//
//   - [FileCache]: JSON entries under a local directory, used by the CLI.
//   - [RedisCache]: a shared Redis instance, used by the HTTP API.
//   - [NullCache]: stores nothing, used with --no-cache.
//
// Keys are built by a [Keyer] so that every backend sees the same layout.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default entry lifetimes.
const (
	TTLSweep  = 7 * 24 * time.Hour
	TTLRender = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SweepKeyOpts identifies one comparison sweep. Two sweeps with equal options
// produce identical reports.
type SweepKeyOpts struct {
	Sizes       []int  `json:"sizes,omitempty"`
	RandomLists int    `json:"random_lists,omitempty"`
	MinSize     int    `json:"min_size,omitempty"`
	MaxSize     int    `json:"max_size,omitempty"`
	MaxValue    int    `json:"max_value"`
	Seed        uint64 `json:"seed"`
}

// RenderKeyOpts identifies one rendered call tree.
type RenderKeyOpts struct {
	Algorithm string `json:"algorithm"`
	Format    string `json:"format"`
	Step      int    `json:"step"`
	Detailed  bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	SweepKey(opts SweepKeyOpts) string
	RenderKey(values []int, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the key options so keys have a fixed length.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SweepKey returns "sweep:<sha256>".
func (DefaultKeyer) SweepKey(opts SweepKeyOpts) string {
	return hashKey("sweep", opts)
}

// RenderKey returns "render:<algorithm>:<format>:<sha256>".
func (DefaultKeyer) RenderKey(values []int, opts RenderKeyOpts) string {
	return hashKey(fmt.Sprintf("render:%s:%s", opts.Algorithm, opts.Format), values, opts)
}

var _ Keyer = DefaultKeyer{}
