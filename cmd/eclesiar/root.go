package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eclesiar",
		Short: "Eclesiar analyzer - currency arbitrage and production efficiency",
		Long: `Eclesiar analyzer polls the Eclesiar game API, detects profitable
currency cycles on the coin market and ranks regions by production efficiency.

Examples:
  eclesiar run
  eclesiar run --cli
  eclesiar analyze
  eclesiar regions --item WEAPON --top 10
  eclesiar history --limit 20`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRegionsCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
