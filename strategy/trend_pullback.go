package strategy

import "github.com/rustyeddy/fxbot/indicators"

// evalTrendPullback buys dips in an EMA-50/200 uptrend and sells rallies in
// a downtrend, confirmed by the MACD histogram turning with the trade.
func evalTrendPullback(curr, prev indicators.Row) Signal {
	if !defined(curr.EMA50, curr.EMA200, curr.RSI14, curr.MACDHist, prev.MACDHist, curr.ATR14) {
		return hold(curr)
	}

	uptrend := curr.EMA50 > curr.EMA200
	downtrend := curr.EMA50 < curr.EMA200

	switch {
	case uptrend && curr.RSI14 < 45 && curr.MACDHist > prev.MACDHist:
		return Signal{Direction: Buy, Reason: "Uptrend Dip Buy", ATR: curr.ATR14}
	case downtrend && curr.RSI14 > 55 && curr.MACDHist < prev.MACDHist:
		return Signal{Direction: Sell, Reason: "Downtrend Rally Sell", ATR: curr.ATR14}
	}
	return hold(curr)
}
