package strategy

import "github.com/rustyeddy/fxbot/indicators"

// evalLiquiditySweep trades smart-money-concept confluences: a liquidity
// sweep confirmed by a market-structure shift, or a structure shift backed
// by a fair value gap. Rules are checked in priority order and the first
// match wins.
func evalLiquiditySweep(curr, prev indicators.Row) Signal {
	if !defined(curr.SwingHigh, curr.SwingLow, curr.ShortHigh, curr.ShortLow, curr.ATR14) {
		return hold(curr)
	}

	switch {
	case curr.BullSweep && curr.MSSBull:
		return Signal{Direction: Buy, Reason: "Sweep + MSS Buy", ATR: curr.ATR14}
	case curr.MSSBull && curr.BullFVG:
		return Signal{Direction: Buy, Reason: "MSS + FVG Buy", ATR: curr.ATR14}
	case curr.BearSweep && curr.MSSBear:
		return Signal{Direction: Sell, Reason: "Sweep + MSS Sell", ATR: curr.ATR14}
	case curr.MSSBear && curr.BearFVG:
		return Signal{Direction: Sell, Reason: "MSS + FVG Sell", ATR: curr.ATR14}
	}
	return hold(curr)
}
