// Package cmd implements the grailctl CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/grailfeed/grailfeed/internal/api/client"
)

var rootCmd = &cobra.Command{
	Use:   "grailctl",
	Short: "CLI client for the grailfeed API",
	Long: "grailctl queries a running grailfeed server from the terminal:\n" +
		"trending feed, filtered search, and sold-price statistics.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "grailfeed server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	viper.SetEnvPrefix("GRAILFEED")
	viper.AutomaticEnv()

	rootCmd.AddCommand(trendingCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(historyCmd())
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
