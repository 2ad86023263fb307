// Package cmd implements the CLI commands for the grailfeed server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "grailfeed",
	Short: "Curated thrift-fashion feed over the eBay APIs",
	Long: "grailfeed proxies the eBay search APIs into a curated secondhand-fashion\n" +
		"feed: trending items, filtered search, barcode lookup, recommendations,\n" +
		"and sold-price statistics.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
