package indicators

import (
	"math"

	"github.com/rustyeddy/fxbot/market"
)

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(curr, prev market.Candle) float64 {
	hl := curr.High - curr.Low
	hc := math.Abs(curr.High - prev.Close)
	lc := math.Abs(curr.Low - prev.Close)
	return math.Max(hl, math.Max(hc, lc))
}

// computeVolatility fills ATR-14 and the 20-bar Bollinger band fields.
func computeVolatility(rows []Row, candles []market.Candle, closes []float64) {
	n := len(candles)

	tr := nanSlice(n)
	for i := 1; i < n; i++ {
		tr[i] = trueRange(candles[i], candles[i-1])
	}
	atr := rollingMean(tr, 14)

	sma := rollingMean(closes, 20)
	std := rollingStd(closes, 20)

	for i := range rows {
		rows[i].ATR14 = atr[i]
		rows[i].SMA20 = sma[i]
		rows[i].Std20 = std[i]
		if !math.IsNaN(sma[i]) && !math.IsNaN(std[i]) {
			rows[i].BBUpper = sma[i] + 2.0*std[i]
			rows[i].BBLower = sma[i] - 2.0*std[i]
		} else {
			rows[i].BBUpper = math.NaN()
			rows[i].BBLower = math.NaN()
		}
	}
}
