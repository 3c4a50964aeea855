package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/cache"
	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/observability"
	"github.com/matzehuels/sorttrace/pkg/quicktrace"
	"github.com/matzehuels/sorttrace/pkg/render/calltree"
)

const (
	algQuick = "quick"
	algMerge = "merge"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string // output file path; stdout when empty
	format   string // dot, svg or png
	step     int    // quicksort step to draw; -1 for the final state
	detailed bool   // add ids, levels, pivots and sorted segments to labels
}

// treeCommand creates the call tree rendering command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: calltree.FormatSVG, step: calltree.FinalStep}

	cmd := &cobra.Command{
		Use:       "tree quick|merge [values...]",
		Short:     "Render a quicksort call tree or merge sort recursion tree",
		ValidArgs: []string{algQuick, algMerge},
		Example: `  sorttrace tree quick 8,3,1,7,0,10,2 -o quick.svg
  sorttrace tree quick 8,3,1,7,0,10,2 --step 5 --format dot
  sorttrace tree merge 5 2 4 6 1 3 --detailed -o merge.png --format png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg := args[0]
			if alg != algQuick && alg != algMerge {
				return errors.New(errors.ErrCodeInvalidInput, "unknown tree %q (must be quick or merge)", alg)
			}
			if err := calltree.ValidateFormat(opts.format); err != nil {
				return err
			}
			values := defaultQuickInput
			if len(args) > 1 {
				v, err := parseTraceValues(args[1:])
				if err != nil {
					return err
				}
				values = v
			}
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), alg, values, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png")
	cmd.Flags().IntVar(&opts.step, "step", opts.step, "quicksort step to draw, 0-based (-1 = finished tree)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids, levels, pivots and sorted segments")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, stdout io.Writer, alg string, values []int, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	key := keyer.RenderKey(values, cache.RenderKeyOpts{
		Algorithm: alg,
		Format:    opts.format,
		Step:      opts.step,
		Detailed:  opts.detailed,
	})
	data, hit, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "render")
	} else {
		observability.Cache().OnCacheMiss(ctx, "render")
		prog := newProgress(logger)
		data, err = renderTree(ctx, alg, values, opts)
		if err != nil {
			return err
		}
		prog.done("Rendered " + alg + " tree")
		if err := store.Set(ctx, key, data, cache.TTLRender); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Rendered %s tree", alg)
	printFile(opts.output)
	return nil
}

// renderTree builds the DOT source for alg and converts it to opts.format.
func renderTree(ctx context.Context, alg string, values []int, opts treeOpts) ([]byte, error) {
	copts := calltree.Options{Step: opts.step, Detailed: opts.detailed}
	var dot string
	switch alg {
	case algQuick:
		tr, err := quicktrace.Build(values)
		if err != nil {
			return nil, err
		}
		if opts.step >= tr.Len() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "step %d out of range (trace has %d steps)", opts.step, tr.Len())
		}
		dot = calltree.QuicksortDOT(tr, copts)
	default:
		dot = calltree.MergeDOT(values, copts)
	}
	return calltree.Render(ctx, dot, opts.format)
}
