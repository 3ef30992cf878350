package indicators

import "math"

// efficiencyWindow is the fractal efficiency lookback in bars.
const efficiencyWindow = 10

// computeEfficiency fills the fractal efficiency ratio: net price change over
// the window divided by the sum of absolute bar-to-bar changes. A perfectly
// directional move scores 1; a full round trip approaches 0.
func computeEfficiency(rows []Row, closes []float64) {
	eff := nanSlice(len(closes))
	for i := efficiencyWindow; i < len(closes); i++ {
		net := math.Abs(closes[i] - closes[i-efficiencyWindow])

		sum := 0.0
		for j := i - efficiencyWindow + 1; j <= i; j++ {
			sum += math.Abs(closes[j] - closes[j-1])
		}
		if sum < epsilon {
			sum = epsilon
		}

		eff[i] = net / sum
		if eff[i] > 1 {
			eff[i] = 1
		}
	}
	for i := range rows {
		rows[i].Efficiency = eff[i]
	}
}
