package backtest

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/strategy"
)

// Compare replays every strategy variant over the same candle series so the
// results are directly comparable.
func Compare(candles []market.Candle, opts Options) ([]Result, error) {
	variants := strategy.Variants()
	out := make([]Result, 0, len(variants))
	for _, v := range variants {
		res, err := Replay(v, candles, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// WriteReport renders the comparison table.
func WriteReport(w io.Writer, instrument string, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "STRATEGY\tINSTRUMENT\tSIGNALS\tTRADES\tWINS\tLOSSES\tWIN RATE\tEXPECTANCY\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\t%.2f\n",
			r.Strategy, instrument, r.Signals, r.Trades, r.Wins, r.Losses, r.WinRate*100, r.Expectancy)
	}
	return tw.Flush()
}
