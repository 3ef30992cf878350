package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSIBounds(t *testing.T) {
	rows, err := Compute(mkCandles(randomWalk(400, 11)))
	require.NoError(t, err)
	for i, r := range rows {
		if !math.IsNaN(r.RSI14) {
			assert.GreaterOrEqual(t, r.RSI14, 0.0, "i=%d", i)
			assert.LessOrEqual(t, r.RSI14, 100.0, "i=%d", i)
		}
	}
}

func TestRSIAllGainWindow(t *testing.T) {
	// A strictly rising series has zero rolling loss; the epsilon fallback
	// drives RSI to (effectively) 100.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.0 + 0.001*float64(i)
	}
	rows, err := Compute(mkCandles(closes))
	require.NoError(t, err)

	last := rows[len(rows)-1]
	require.False(t, math.IsNaN(last.RSI14))
	assert.Greater(t, last.RSI14, 99.9)
}

func TestRSIAllLossWindow(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 2.0 - 0.001*float64(i)
	}
	rows, err := Compute(mkCandles(closes))
	require.NoError(t, err)

	last := rows[len(rows)-1]
	require.False(t, math.IsNaN(last.RSI14))
	assert.Less(t, last.RSI14, 0.1)
}

func TestMACDHistIsMACDMinusSignal(t *testing.T) {
	rows, err := Compute(mkCandles(randomWalk(300, 12)))
	require.NoError(t, err)
	for i, r := range rows {
		if math.IsNaN(r.MACDHist) {
			continue
		}
		assert.InDelta(t, r.MACD-r.MACDSignal, r.MACDHist, 1e-12, "i=%d", i)
	}
}

func TestEfficiencyBounds(t *testing.T) {
	rows, err := Compute(mkCandles(randomWalk(400, 13)))
	require.NoError(t, err)
	for i, r := range rows {
		if !math.IsNaN(r.Efficiency) {
			assert.GreaterOrEqual(t, r.Efficiency, 0.0, "i=%d", i)
			assert.LessOrEqual(t, r.Efficiency, 1.0, "i=%d", i)
		}
	}
}

func TestEfficiencyDirectionalIsOne(t *testing.T) {
	// Monotonic closes: net change equals path length, efficiency 1.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.0 + 0.001*float64(i)
	}
	rows, err := Compute(mkCandles(closes))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rows[len(rows)-1].Efficiency, 1e-9)
}

func TestEfficiencyRoundTripNearZero(t *testing.T) {
	// Oscillating closes travel far but go nowhere.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.1
		if i%2 == 1 {
			closes[i] = 1.102
		}
	}
	rows, err := Compute(mkCandles(closes))
	require.NoError(t, err)

	last := rows[len(rows)-1]
	require.False(t, math.IsNaN(last.Efficiency))
	assert.Less(t, last.Efficiency, 0.25)
}

func TestBollingerBandsBracketSMA(t *testing.T) {
	rows, err := Compute(mkCandles(randomWalk(300, 14)))
	require.NoError(t, err)
	for i, r := range rows {
		if math.IsNaN(r.SMA20) {
			continue
		}
		assert.GreaterOrEqual(t, r.BBUpper, r.SMA20, "i=%d", i)
		assert.LessOrEqual(t, r.BBLower, r.SMA20, "i=%d", i)
		assert.InDelta(t, r.SMA20+2*r.Std20, r.BBUpper, 1e-12, "i=%d", i)
	}
}

func TestTrueRangeGaps(t *testing.T) {
	prev := mkCandles([]float64{1.1000})[0]

	inside := prev
	inside.High, inside.Low = 1.1005, 1.0995
	assert.InDelta(t, 0.0010, trueRange(inside, prev), 1e-12)

	// Gap up: distance to the previous close dominates.
	gapped := prev
	gapped.High, gapped.Low = 1.1050, 1.1040
	assert.InDelta(t, gapped.High-prev.Close, trueRange(gapped, prev), 1e-12)
}

func TestRollingExtremesExcludeCurrentBar(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 100}
	maxes := rollingMaxShifted(vals, 5)
	mins := rollingMinShifted(vals, 5)

	for i := 0; i < 5; i++ {
		assert.True(t, math.IsNaN(maxes[i]), "i=%d", i)
		assert.True(t, math.IsNaN(mins[i]), "i=%d", i)
	}
	// The spike at index 5 does not see itself.
	assert.Equal(t, 5.0, maxes[5])
	assert.Equal(t, 1.0, mins[5])
}

func TestBullSweepDetection(t *testing.T) {
	// Flat series, then one bar pierces the prior 50-bar low and closes back
	// above it.
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.1000
	}
	candles := mkCandles(closes)

	// mkCandles gives every bar low = close-0.0002, so the prior swing low
	// sits at 1.0998. Pierce it at the last bar and close back inside.
	last := len(candles) - 1
	candles[last].Low = 1.0990
	candles[last].Close = 1.1000
	candles[last].Open = 1.1000
	candles[last].High = 1.1002

	rows, err := Compute(candles)
	require.NoError(t, err)
	assert.True(t, rows[last].BullSweep)
	assert.False(t, rows[last].BearSweep)
}

func TestBearSweepDetection(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.1000
	}
	candles := mkCandles(closes)

	last := len(candles) - 1
	candles[last].High = 1.1010
	candles[last].Close = 1.1000
	candles[last].Open = 1.1000
	candles[last].Low = 1.0998

	rows, err := Compute(candles)
	require.NoError(t, err)
	assert.True(t, rows[last].BearSweep)
	assert.False(t, rows[last].BullSweep)
}

func TestFairValueGapDetection(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.1000
	}
	candles := mkCandles(closes)

	// Bullish FVG: bar n-2 high below bar n low.
	last := len(candles) - 1
	candles[last-2].High = 1.1004
	candles[last].Low = 1.1010
	candles[last].High = 1.1030
	candles[last].Close = 1.1020
	candles[last].Open = 1.1012

	rows, err := Compute(candles)
	require.NoError(t, err)
	assert.True(t, rows[last].BullFVG)
	assert.False(t, rows[last].BearFVG)
}

func TestMarketStructureShift(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 1.1000
	}
	candles := mkCandles(closes)

	// Close above the 10-bar prior high (1.1002 from the flat envelope).
	last := len(candles) - 1
	candles[last].Close = 1.1010
	candles[last].High = 1.1012
	candles[last].Open = 1.1000

	rows, err := Compute(candles)
	require.NoError(t, err)
	assert.True(t, rows[last].MSSBull)
	assert.False(t, rows[last].MSSBear)
}
