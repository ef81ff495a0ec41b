package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:          "tickerdeck",
	Short:        "Collect daily market series into CSV",
	Long:         "tickerdeck picks commodities, stocks and exchange rates, fetches their daily price and volume history and exports a merged CSV.",
	SilenceUsage: true,
	RunE:         runTUI,
	Version:      version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(exportsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
