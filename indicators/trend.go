package indicators

import "math"

// emaSeries computes the exponential moving average recurrence
//
//	ema[i] = alpha*x[i] + (1-alpha)*ema[i-1],  alpha = 2/(span+1)
//
// seeded with the first defined input. Values are reported NaN until span
// inputs have been consumed, so downstream logic never acts on a half-warm
// average. Leading NaNs in the input (e.g. MACD before its own warm-up) are
// skipped.
func emaSeries(vals []float64, span int) []float64 {
	out := nanSlice(len(vals))
	if span <= 0 {
		return out
	}

	alpha := 2.0 / (float64(span) + 1.0)

	first := -1
	for i, v := range vals {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return out
	}

	ema := vals[first]
	for i := first + 1; i < len(vals); i++ {
		ema = alpha*vals[i] + (1.0-alpha)*ema
		if i >= first+span-1 {
			out[i] = ema
		}
	}
	if span == 1 {
		out[first] = vals[first]
	}
	return out
}

func computeTrend(rows []Row, closes []float64) {
	ema50 := emaSeries(closes, 50)
	ema200 := emaSeries(closes, 200)
	for i := range rows {
		rows[i].EMA50 = ema50[i]
		rows[i].EMA200 = ema200[i]
	}
}
