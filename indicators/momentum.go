package indicators

import "math"

// computeMomentum fills RSI-14 and MACD(12,26,9).
//
// The RSI here uses a simple rolling mean of gains and losses, not true
// Wilder smoothing. When the rolling loss is zero the denominator falls back
// to epsilon, which drives RSI to 100 on an all-gain window.
func computeMomentum(rows []Row, closes []float64) {
	n := len(closes)

	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, 14)
	avgLoss := rollingMean(losses, 14)

	rsi := nanSlice(n)
	for i := range rsi {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}
		loss := avgLoss[i]
		if loss == 0 {
			loss = epsilon
		}
		rs := avgGain[i] / loss
		rsi[i] = 100.0 - 100.0/(1.0+rs)
	}
	for i := range rows {
		rows[i].RSI14 = rsi[i]
	}

	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)

	macd := nanSlice(n)
	for i := range macd {
		if !math.IsNaN(ema12[i]) && !math.IsNaN(ema26[i]) {
			macd[i] = ema12[i] - ema26[i]
		}
	}
	signal := emaSeries(macd, 9)

	for i := range rows {
		rows[i].MACD = macd[i]
		rows[i].MACDSignal = signal[i]
		if !math.IsNaN(macd[i]) && !math.IsNaN(signal[i]) {
			rows[i].MACDHist = macd[i] - signal[i]
		} else {
			rows[i].MACDHist = math.NaN()
		}
	}
}
