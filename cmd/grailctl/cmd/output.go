package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	apiclient "github.com/grailfeed/grailfeed/internal/api/client"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printItems writes listings as an aligned table.
func printItems(items []apiclient.FeedItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRICE\tCONDITION\tBRAND\tTITLE")
	for _, it := range items {
		fmt.Fprintf(w, "%.2f %s\t%s\t%s\t%s\n",
			it.Price, it.Currency, it.Condition, it.Brand, truncate(it.Title, 70))
	}
	w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
