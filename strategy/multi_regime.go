package strategy

import "github.com/rustyeddy/fxbot/indicators"

// evalMultiRegime switches between a Bollinger fade in ranging markets and
// the trend-pullback rules in trending markets. ADX > 25 marks a trend; the
// trending rules are additionally gated by close vs EMA-50.
func evalMultiRegime(curr, prev indicators.Row) Signal {
	if !defined(curr.ADX14, curr.RSI14, curr.ATR14) {
		return hold(curr)
	}

	trending := curr.ADX14 > 25

	if !trending {
		if !defined(curr.BBUpper, curr.BBLower) {
			return hold(curr)
		}
		switch {
		case curr.Close >= curr.BBUpper && curr.RSI14 > 70:
			return Signal{Direction: Sell, Reason: "Range Fade Sell", ATR: curr.ATR14}
		case curr.Close <= curr.BBLower && curr.RSI14 < 30:
			return Signal{Direction: Buy, Reason: "Range Fade Buy", ATR: curr.ATR14}
		}
		return hold(curr)
	}

	if !defined(curr.EMA50, curr.EMA200, curr.MACDHist, prev.MACDHist) {
		return hold(curr)
	}

	uptrend := curr.EMA50 > curr.EMA200
	downtrend := curr.EMA50 < curr.EMA200

	switch {
	case uptrend && curr.Close > curr.EMA50 && curr.RSI14 < 45 && curr.MACDHist > prev.MACDHist:
		return Signal{Direction: Buy, Reason: "Trend Dip Buy", ATR: curr.ATR14}
	case downtrend && curr.Close < curr.EMA50 && curr.RSI14 > 55 && curr.MACDHist < prev.MACDHist:
		return Signal{Direction: Sell, Reason: "Trend Rally Sell", ATR: curr.ATR14}
	}
	return hold(curr)
}
