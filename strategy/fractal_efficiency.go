package strategy

import "github.com/rustyeddy/fxbot/indicators"

// evalFractalEfficiency fades RSI extremes, but only when the recent price
// path has been efficient (directional) enough to make the extreme
// meaningful. Below the efficiency gate it never fires.
func evalFractalEfficiency(curr, prev indicators.Row) Signal {
	if !defined(curr.Efficiency, curr.RSI14, curr.ATR14) {
		return hold(curr)
	}

	if curr.Efficiency <= 0.6 {
		return hold(curr)
	}

	switch {
	case curr.RSI14 > 75:
		return Signal{Direction: Sell, Reason: "Efficient Overbought Fade", ATR: curr.ATR14}
	case curr.RSI14 < 25:
		return Signal{Direction: Buy, Reason: "Efficient Oversold Fade", ATR: curr.ATR14}
	}
	return hold(curr)
}
