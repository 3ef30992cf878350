// Package indicators derives technical indicator series from candle history.
//
// Compute is a pure batch transform: every derived field at index i is a
// function of candles [0..i] only. Fields whose lookback window is not yet
// fully populated are NaN; callers treat NaN as "insufficient history".
package indicators

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/fxbot/market"
)

// MinHistory is the number of closed bars the longest lookback (EMA-200)
// needs before the pipeline can run.
const MinHistory = 200

// ErrInsufficientHistory is returned when fewer than MinHistory candles are
// supplied. Recoverable: the caller skips evaluation for that cycle.
var ErrInsufficientHistory = errors.New("insufficient candle history")

// epsilon replaces zero denominators in RSI and efficiency calculations.
const epsilon = 1e-10

// Row is a candle augmented with derived indicator fields. Numeric fields are
// NaN until their warm-up completes; boolean structure flags are false until
// the levels they depend on are defined.
type Row struct {
	market.Candle

	// Trend
	EMA50  float64
	EMA200 float64

	// Momentum
	RSI14      float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64

	// Volatility
	ATR14 float64

	// Mean reversion
	SMA20   float64
	Std20   float64
	BBUpper float64
	BBLower float64

	// Trend strength
	ADX14 float64

	// Fractal efficiency in [0,1]; 1 = perfectly directional window.
	Efficiency float64

	// Structure levels: rolling extremes over the trailing window, shifted
	// one bar so the current bar never sees itself.
	SwingHigh float64 // 50-bar
	SwingLow  float64
	ShortHigh float64 // 10-bar
	ShortLow  float64

	// Structure events
	BullSweep bool
	BearSweep bool
	BullFVG   bool
	BearFVG   bool
	MSSBull   bool
	MSSBear   bool
}

// Compute derives the full indicator row set for an ordered candle series.
// Output is index-aligned with the input and the same length.
func Compute(candles []market.Candle) ([]Row, error) {
	if len(candles) < MinHistory {
		return nil, fmt.Errorf("%w: need %d candles, have %d",
			ErrInsufficientHistory, MinHistory, len(candles))
	}

	n := len(candles)
	rows := make([]Row, n)

	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, c := range candles {
		rows[i].Candle = c
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	computeTrend(rows, closes)
	computeMomentum(rows, closes)
	computeVolatility(rows, candles, closes)
	computeADX(rows, candles)
	computeEfficiency(rows, closes)
	computeStructure(rows, highs, lows, closes)

	return rows, nil
}

// rollingMean computes a simple moving average over the trailing window.
// Output[i] is NaN unless all window inputs [i-window+1..i] are defined.
func rollingMean(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				ok = false
				break
			}
			sum += vals[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the sample standard deviation (ddof=1) over the
// trailing window, matching the pandas default.
func rollingStd(vals []float64, window int) []float64 {
	out := nanSlice(len(vals))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				ok = false
				break
			}
			sum += vals[j]
		}
		if !ok {
			continue
		}
		mean := sum / float64(window)
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := vals[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
