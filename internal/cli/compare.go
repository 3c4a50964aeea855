package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/observability"
	"github.com/matzehuels/sorttrace/pkg/sweep"
)

// compareCommand creates the empirical comparison sweep command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		sizesStr string
		opts     sweep.Options
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare quicksort and merge sort comparison counts",
		Long: `Sort random arrays with both algorithms and count key comparisons.

Sizes come from --sizes, or --lists random sizes are drawn from
--min-size..--max-size. Values are drawn from 1..--max-value. Each row also
shows the merge sort bounds for its size. Reports are cached by their options;
--refresh recomputes.`,
		Example: `  sorttrace compare --sizes 100,1000,10000
  sorttrace compare --lists 8 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings().Sweep
			if sizesStr != "" {
				sizes, err := errors.ParseValues(sizesStr)
				if err != nil {
					return err
				}
				opts.Sizes = sizes
			} else if !cmd.Flags().Changed("lists") && len(cfg.Sizes) > 0 {
				opts.Sizes = cfg.Sizes
			}
			if !cmd.Flags().Changed("lists") {
				opts.RandomLists = cfg.RandomLists
			}
			if !cmd.Flags().Changed("min-size") {
				opts.MinSize = cfg.MinSize
			}
			if !cmd.Flags().Changed("max-size") {
				opts.MaxSize = cfg.MaxSize
			}
			if !cmd.Flags().Changed("max-value") {
				opts.MaxValue = cfg.MaxValue
			}
			return c.runCompare(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&sizesStr, "sizes", "", "comma-separated array sizes")
	cmd.Flags().IntVar(&opts.RandomLists, "lists", 0, "number of random sizes (default from config)")
	cmd.Flags().IntVar(&opts.MinSize, "min-size", 0, "smallest random size")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", 0, "largest random size")
	cmd.Flags().IntVar(&opts.MaxValue, "max-value", 0, "largest array value")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 = random, not cached)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached reports")

	return cmd
}

func (c *CLI) runCompare(cmd *cobra.Command, opts sweep.Options) error {
	ctx := cmd.Context()
	runner, store, err := c.newSweepRunner(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	spinner := newSpinnerWithContext(ctx, "Measuring...")
	observability.SetSweepHooks(spinnerHooks{logHooks: logHooks{logger: c.Logger}, spinner: spinner})
	defer observability.SetSweepHooks(logHooks{logger: c.Logger})

	prog := newProgress(c.Logger)
	spinner.Start()
	res, err := runner.Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Sweep failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Measured %d sizes", len(res.Report.Rows)))

	rows := make([][]string, len(res.Report.Rows))
	for i, r := range res.Report.Rows {
		within := iconSuccess
		if !r.WithinBounds() {
			within = iconError
		}
		rows[i] = []string{
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Quick),
			strconv.Itoa(r.Merge),
			strconv.Itoa(r.Best),
			strconv.Itoa(r.Worst),
			within,
		}
	}
	headers := []string{"size", "quicksort", "merge sort", "best", "worst", "bounds"}
	highlight := func(row int) bool { return !res.Report.Rows[row].WithinBounds() }
	fmt.Fprintln(cmd.OutOrStdout(), newTable(headers, rows, highlight).Render())

	printSweepStats(len(rows), res.Report.Seed, res.Duration, res.CacheHit)
	for _, r := range res.Report.Rows {
		if !r.WithinBounds() {
			printWarning("merge sort comparisons for n=%d fall outside [%d, %d]", r.Size, r.Best, r.Worst)
		}
	}
	return nil
}

// spinnerHooks keeps the spinner text in step with the sweep.
type spinnerHooks struct {
	logHooks
	spinner *Spinner
}

func (h spinnerHooks) OnSweepStart(ctx context.Context, sizes int) {
	h.logHooks.OnSweepStart(ctx, sizes)
	h.spinner.SetMessage(fmt.Sprintf("Measuring %d sizes...", sizes))
}

func (h spinnerHooks) OnSizeComplete(ctx context.Context, n, quick, merge int, d time.Duration) {
	h.logHooks.OnSizeComplete(ctx, n, quick, merge, d)
	h.spinner.SetMessage(fmt.Sprintf("Measured n=%d", n))
}
