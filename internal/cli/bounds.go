package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sorttrace/pkg/bounds"
	"github.com/matzehuels/sorttrace/pkg/errors"
)

// boundsCommand creates the command printing merge sort comparison bounds.
func (c *CLI) boundsCommand() *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "bounds [n]",
		Short: "Print best and worst case merge sort comparisons",
		Long: `Print the fewest and most comparisons a top-down merge sort can make on
n elements, for a single n or for every n in --from..--to.`,
		Example: `  sorttrace bounds 1000
  sorttrace bounds --from 1 --to 16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				n, err := errors.ParseLength(args[0])
				if err != nil {
					return err
				}
				from, to = n, n
			} else if !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
				return errors.New(errors.ErrCodeInvalidInput, "give a length or --from and --to")
			}
			table, err := bounds.Table(from, to)
			if err != nil {
				return err
			}
			rows := make([][]string, len(table))
			for i, b := range table {
				rows[i] = []string{strconv.Itoa(b.N), strconv.Itoa(b.Best), strconv.Itoa(b.Worst)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), newTable([]string{"n", "best", "worst"}, rows, nil).Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 1, "first length of the range")
	cmd.Flags().IntVar(&to, "to", 16, "last length of the range")

	return cmd
}
