package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxbot",
	Short: "A bar-polling FX signal bot for OANDA",
	Long: `fxbot scans currency pairs on a fixed cadence, derives technical
indicators, evaluates a configurable strategy variant, and submits
risk-managed market orders through the OANDA v20 API.

It provides tools for:
  - Running the live scan loop against a practice or live account
  - Backtesting strategy variants over historical candles
  - Comparing win rate and expectancy across all variants
  - Journaling signals, orders, and backtest runs to SQLite`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}
