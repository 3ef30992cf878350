package indicators

import "math"

const (
	swingWindow = 50
	shortWindow = 10
)

// computeStructure fills the liquidity-structure fields: shifted rolling
// extremes, sweep and fair-value-gap events, and market-structure shifts.
// All levels exclude the current bar (shifted by one) so a bar cannot sweep
// its own extreme.
func computeStructure(rows []Row, highs, lows, closes []float64) {
	swingHigh := rollingMaxShifted(highs, swingWindow)
	swingLow := rollingMinShifted(lows, swingWindow)
	shortHigh := rollingMaxShifted(highs, shortWindow)
	shortLow := rollingMinShifted(lows, shortWindow)

	for i := range rows {
		rows[i].SwingHigh = swingHigh[i]
		rows[i].SwingLow = swingLow[i]
		rows[i].ShortHigh = shortHigh[i]
		rows[i].ShortLow = shortLow[i]

		// Liquidity sweep: price pierced the prior extreme but closed back
		// inside it.
		if !math.IsNaN(swingLow[i]) {
			rows[i].BullSweep = lows[i] < swingLow[i] && closes[i] > swingLow[i]
		}
		if !math.IsNaN(swingHigh[i]) {
			rows[i].BearSweep = highs[i] > swingHigh[i] && closes[i] < swingHigh[i]
		}

		// Fair value gap: 3-bar imbalance.
		if i >= 2 {
			rows[i].BullFVG = highs[i-2] < lows[i]
			rows[i].BearFVG = lows[i-2] > highs[i]
		}

		// Market structure shift: close breaks the short-window prior extreme.
		if !math.IsNaN(shortHigh[i]) {
			rows[i].MSSBull = closes[i] > shortHigh[i]
		}
		if !math.IsNaN(shortLow[i]) {
			rows[i].MSSBear = closes[i] < shortLow[i]
		}
	}
}

// rollingMaxShifted returns max(vals[i-window .. i-1]), NaN until the
// trailing window is fully populated.
func rollingMaxShifted(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	for i := window; i < len(vals); i++ {
		m := vals[i-window]
		for j := i - window + 1; j < i; j++ {
			if vals[j] > m {
				m = vals[j]
			}
		}
		out[i] = m
	}
	return out
}

// rollingMinShifted returns min(vals[i-window .. i-1]), NaN until the
// trailing window is fully populated.
func rollingMinShifted(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	for i := window; i < len(vals); i++ {
		m := vals[i-window]
		for j := i - window + 1; j < i; j++ {
			if vals[j] < m {
				m = vals[j]
			}
		}
		out[i] = m
	}
	return out
}
