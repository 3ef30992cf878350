package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxbot/backtest"
	"github.com/rustyeddy/fxbot/broker/oanda"
	"github.com/rustyeddy/fxbot/journal"
	"github.com/rustyeddy/fxbot/pkg/id"
	"github.com/rustyeddy/fxbot/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay strategy variants over historical candles",
	Long: `Backtest fetches historical candles from OANDA and replays the same
indicator pipeline and strategy evaluator the live loop uses, classifying
each signal as a win or loss by scanning forward to its target or stop.

Example:
  fxbot backtest -i EUR_USD -g M5 -n 1000 --all`,
	RunE: runBacktestCmd,
}

var (
	btInstrument  string
	btGranularity string
	btCount       int
	btStrategy    string
	btAll         bool
	btHighLow     bool
	btDBPath      string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btInstrument, "instrument", "i", "EUR_USD", "instrument to replay")
	backtestCmd.Flags().StringVarP(&btGranularity, "granularity", "g", "M5", "candle granularity")
	backtestCmd.Flags().IntVarP(&btCount, "count", "n", 1000, "number of historical candles")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "trend-pullback", "strategy variant to replay")
	backtestCmd.Flags().BoolVar(&btAll, "all", false, "replay every variant and print a comparison report")
	backtestCmd.Flags().BoolVar(&btHighLow, "highlow", false, "detect stop/target on intrabar high/low instead of close")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "SQLite journal to record runs into (optional)")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	creds, err := oanda.LoadCredentials()
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	client, err := oanda.New(creds)
	if err != nil {
		return err
	}

	ctx := context.Background()
	candles, err := client.GetCandles(ctx, btInstrument, btGranularity, btCount)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched %d candles for %s %s\n\n", len(candles), btInstrument, btGranularity)

	opts := backtest.Options{DetectHighLow: btHighLow}

	var results []backtest.Result
	if btAll {
		results, err = backtest.Compare(candles, opts)
		if err != nil {
			return err
		}
	} else {
		variant, err := strategy.ParseVariant(btStrategy)
		if err != nil {
			return err
		}
		res, err := backtest.Replay(variant, candles, opts)
		if err != nil {
			return err
		}
		results = []backtest.Result{res}
	}

	if err := backtest.WriteReport(os.Stdout, btInstrument, results); err != nil {
		return err
	}

	if btDBPath != "" {
		if err := recordRuns(btDBPath, results); err != nil {
			return fmt.Errorf("record backtest runs: %w", err)
		}
		fmt.Printf("\nRuns recorded in %s\n", btDBPath)
	}
	return nil
}

func recordRuns(dbPath string, results []backtest.Result) error {
	jr, err := journal.NewSQLite(dbPath)
	if err != nil {
		return err
	}
	defer jr.Close()

	for _, r := range results {
		rec := journal.BacktestRecord{
			ID:         id.New(),
			Time:       time.Now().UTC(),
			Strategy:   r.Strategy.String(),
			Instrument: btInstrument,
			Trades:     r.Trades,
			Wins:       r.Wins,
			Losses:     r.Losses,
			WinRate:    r.WinRate,
			Expectancy: r.Expectancy,
		}
		if err := jr.RecordBacktest(rec); err != nil {
			return err
		}
	}
	return nil
}
