package cmd

import (
	"github.com/spf13/cobra"
)

func trendingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the trending thrift-fashion feed",
		Example: `  grailctl trending
  grailctl trending --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().Trending(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(resp)
			}

			printItems(resp.Items)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")

	return cmd
}
