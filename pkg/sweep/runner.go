// Package sweep measures how many comparisons quicksort and merge sort make on
// random arrays of chosen sizes and checks the merge sort counts against the
// exact best and worst case bounds.
package sweep

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sorttrace/pkg/bounds"
	"github.com/matzehuels/sorttrace/pkg/cache"
	"github.com/matzehuels/sorttrace/pkg/counting"
	"github.com/matzehuels/sorttrace/pkg/observability"
)

// Row is the measurement for one array.
type Row struct {
	Size      int           `json:"size"`
	Quick     int           `json:"quick"`
	Merge     int           `json:"merge"`
	Best      int           `json:"best"`
	Worst     int           `json:"worst"`
	QuickTime time.Duration `json:"quick_ns"`
	MergeTime time.Duration `json:"merge_ns"`
}

// WithinBounds reports whether the merge sort count lies in [Best, Worst].
func (r Row) WithinBounds() bool {
	return r.Merge >= r.Best && r.Merge <= r.Worst
}

// Report is the result of a sweep. Rows are sorted by size; equal sizes keep
// their generation order.
type Report struct {
	Seed uint64 `json:"seed"`
	Rows []Row  `json:"rows"`
}

// Result wraps a report with run metadata.
type Result struct {
	Report   *Report
	CacheHit bool
	Duration time.Duration
}

// Runner executes sweeps with caching. It holds no per-run state and may be
// shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// means the default keyer, and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLSweep}
}

// Run validates opts, serves the report from cache when possible, and
// otherwise measures every size. A zero Seed is replaced by a random one,
// which is recorded in the report.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	key := r.Keyer.SweepKey(opts.KeyOpts())
	if !opts.Refresh {
		if rep, ok := r.lookup(ctx, key); ok {
			r.Logger.Debug("sweep served from cache", "rows", len(rep.Rows))
			return &Result{Report: rep, CacheHit: true, Duration: time.Since(start)}, nil
		}
	}

	rep, err := r.measure(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, rep)
	return &Result{Report: rep, Duration: time.Since(start)}, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("sweep cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "sweep")
		return nil, false
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		observability.Cache().OnCacheMiss(ctx, "sweep")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "sweep")
	return &rep, true
}

func (r *Runner) store(ctx context.Context, key string, rep *Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("sweep cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "sweep", len(data))
}

func (r *Runner) measure(ctx context.Context, opts Options) (rep *Report, err error) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sizes := planSizes(rng, opts)

	hooks := observability.Sweep()
	start := time.Now()
	hooks.OnSweepStart(ctx, len(sizes))
	defer func() { hooks.OnSweepComplete(ctx, len(sizes), time.Since(start), err) }()

	rows := make([]Row, 0, len(sizes))
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := measureOne(rng, n, opts.MaxValue)
		if err != nil {
			return nil, err
		}
		r.Logger.Debug("measured size", "n", n, "quick", row.Quick, "merge", row.Merge)
		hooks.OnSizeComplete(ctx, n, row.Quick, row.Merge, row.QuickTime+row.MergeTime)
		rows = append(rows, row)
	}
	slices.SortStableFunc(rows, func(a, b Row) int { return a.Size - b.Size })
	return &Report{Seed: opts.Seed, Rows: rows}, nil
}

// planSizes returns the explicit sizes, or RandomLists sizes drawn uniformly
// from [MinSize, MaxSize].
func planSizes(rng *rand.Rand, opts Options) []int {
	if len(opts.Sizes) > 0 {
		return slices.Clone(opts.Sizes)
	}
	sizes := make([]int, opts.RandomLists)
	for i := range sizes {
		sizes[i] = opts.MinSize + rng.IntN(opts.MaxSize-opts.MinSize+1)
	}
	return sizes
}

func measureOne(rng *rand.Rand, n, maxValue int) (Row, error) {
	arr := make([]int, n)
	for i := range arr {
		arr[i] = 1 + rng.IntN(maxValue)
	}

	t0 := time.Now()
	_, quick, err := counting.Quicksort(arr)
	if err != nil {
		return Row{}, err
	}
	t1 := time.Now()
	_, merge, err := counting.Mergesort(arr)
	if err != nil {
		return Row{}, err
	}
	t2 := time.Now()

	b, err := bounds.Of(n)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Size:      n,
		Quick:     quick,
		Merge:     merge,
		Best:      b.Best,
		Worst:     b.Worst,
		QuickTime: t1.Sub(t0),
		MergeTime: t2.Sub(t1),
	}, nil
}
