// Package risk converts a directional signal into a sized, stop-protected
// order intent, or rejects the trade.
package risk

import (
	"math"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/strategy"
)

// Config carries the sizing constants. StopMult and RewardMult are
// strategy-specific and supplied by the caller; the sizer never hardcodes
// per-variant behavior.
type Config struct {
	RiskFraction float64 // fraction of balance risked per trade, e.g. 0.01
	StopMult     float64 // stop distance as ATR multiple
	RewardMult   float64 // take-profit distance as R multiple of the stop
	Leverage     float64 // account leverage for the margin estimate
}

// Size computes the order intent for a signal, or nil when the trade is
// rejected. A nil return is a deliberate no-trade outcome (zero units, zero
// stop distance, or no margin headroom), not an error.
func Size(account broker.AccountSnapshot, sig strategy.Signal, instrument string, price float64, cfg Config) *broker.OrderIntent {
	if sig.Direction == strategy.Hold {
		return nil
	}

	stopDistance := sig.ATR * cfg.StopMult
	if !(stopDistance > 0) || math.IsInf(stopDistance, 0) {
		return nil
	}

	riskAmount := account.Balance * cfg.RiskFraction
	units := int64(math.Floor(riskAmount / stopDistance))
	if units <= 0 {
		return nil
	}

	// Margin guard: scale down to 80% of available margin, then re-check.
	if cfg.Leverage > 0 {
		estMargin := price * float64(units) / cfg.Leverage
		if estMargin > account.MarginAvailable {
			scale := account.MarginAvailable * 0.8 / estMargin
			units = int64(math.Floor(float64(units) * scale))
			if units <= 0 {
				return nil
			}
		}
	}

	intent := &broker.OrderIntent{
		Instrument: instrument,
		Units:      units,
	}
	switch sig.Direction {
	case strategy.Buy:
		intent.StopPrice = price - stopDistance
		intent.TakeProfitPrice = price + stopDistance*cfg.RewardMult
	case strategy.Sell:
		intent.Units = -units
		intent.StopPrice = price + stopDistance
		intent.TakeProfitPrice = price - stopDistance*cfg.RewardMult
	default:
		return nil
	}
	return intent
}
