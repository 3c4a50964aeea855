package cli

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/sorttrace/pkg/config"
	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/server"
)

// inputOpts are the flags shared by commands that take an array.
type inputOpts struct {
	size     int
	maxValue int
	seed     uint64
}

// resolveValues picks the array to sort: the positional arguments if any,
// then input.values from the config file, then a random array.
func resolveValues(args []string, cfg *config.Config, opts inputOpts) ([]int, error) {
	if len(args) > 0 {
		return errors.ParseValues(strings.Join(args, " "))
	}
	if len(cfg.Input.Values) > 0 {
		return append([]int(nil), cfg.Input.Values...), nil
	}
	return randomInput(cfg, opts)
}

// parseTraceValues parses the positional values of the quick and tree
// commands. A quicksort trace of sorted input holds O(n^2) values, so arrays
// are capped like the API's trace endpoints.
func parseTraceValues(args []string) ([]int, error) {
	values, err := errors.ParseValues(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if len(values) > server.MaxTraceValues {
		return nil, errors.New(errors.ErrCodeInvalidInput, "too many values to trace (max %d, got %d)", server.MaxTraceValues, len(values))
	}
	return values, nil
}

// randomInput generates an array of opts.size values in [0, maxValue]. Zero
// options fall back to the config file; the default maximum is five times the
// size.
func randomInput(cfg *config.Config, opts inputOpts) ([]int, error) {
	n := opts.size
	if n == 0 {
		n = cfg.Input.Size
	}
	if err := errors.ValidateSize(n, config.MaxInputSize); err != nil {
		return nil, err
	}
	maxValue := opts.maxValue
	if maxValue == 0 {
		maxValue = cfg.InputMaxValue(n)
	}
	if maxValue < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max value must not be negative, got %d", maxValue)
	}
	seed := opts.seed
	if seed == 0 {
		seed = cfg.Input.Seed
	}
	return randomValues(n, maxValue, seed), nil
}

// randomValues returns n values in [0, maxValue]. A zero seed draws a fresh
// sequence.
func randomValues(n, maxValue int, seed uint64) []int {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(maxValue + 1)
	}
	return out
}
