package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history <query>",
		Short:   "Show sold-price statistics for a query",
		Example: `  grailctl history "carhartt detroit jacket"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().PriceHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(resp)
			}

			fmt.Printf("%s: %d sales\n", resp.Query, resp.Count)
			if resp.Count > 0 {
				fmt.Printf("  average %.2f  median %.2f  min %.2f  max %.2f\n",
					resp.Average, resp.Median, resp.Min, resp.Max)
			}
			return nil
		},
	}

	return cmd
}
