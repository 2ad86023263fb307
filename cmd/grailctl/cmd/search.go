package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/grailfeed/grailfeed/internal/api/client"
)

func searchCmd() *cobra.Command {
	var (
		sort    string
		page    int
		limit   int
		country string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search thrift-fashion listings",
		Example: `  grailctl search "vintage jacket"
  grailctl search "levis 501" --sort price_low --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Search(cmd.Context(), args[0], apiclient.SearchParams{
				Sort:    sort,
				Page:    page,
				Limit:   limit,
				Country: country,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return printJSON(resp)
			}

			printItems(resp.Items)
			fmt.Printf("\npage %d (%d of %d results)\n", resp.Page, len(resp.Items), resp.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&sort, "sort", "", "sort order (price_low, price_high, newest)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&country, "country", "", "two-letter marketplace country code")

	return cmd
}
