package indicators

import (
	"math"

	"github.com/rustyeddy/fxbot/market"
)

// computeADX fills ADX-14: directional movement averaged over 14 bars,
// normalized by ATR into +DI/-DI, collapsed to DX, then averaged again over
// 14 bars. Both smoothing passes use the same rolling mean as the rest of
// the pipeline rather than Wilder's recursive form.
func computeADX(rows []Row, candles []market.Candle) {
	n := len(candles)

	plusDM := nanSlice(n)
	minusDM := nanSlice(n)
	for i := 1; i < n; i++ {
		up := candles[i].High - candles[i-1].High
		down := candles[i-1].Low - candles[i].Low

		plusDM[i] = 0
		minusDM[i] = 0
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	avgPlus := rollingMean(plusDM, 14)
	avgMinus := rollingMean(minusDM, 14)

	dx := nanSlice(n)
	for i := range dx {
		atr := rows[i].ATR14
		if math.IsNaN(avgPlus[i]) || math.IsNaN(avgMinus[i]) || math.IsNaN(atr) || atr == 0 {
			continue
		}
		pdi := 100.0 * avgPlus[i] / atr
		mdi := 100.0 * avgMinus[i] / atr
		den := pdi + mdi
		if den == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100.0 * math.Abs(pdi-mdi) / den
	}

	adx := rollingMean(dx, 14)
	for i := range rows {
		rows[i].ADX14 = adx[i]
	}
}
