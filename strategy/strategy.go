// Package strategy evaluates indicator rows into directional trade signals.
//
// Each variant is a deterministic decision table over the last two rows of
// the augmented series. Evaluation is pure: no variant keeps state between
// calls, and identical rows always produce identical signals.
package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/fxbot/indicators"
)

// Direction is the trade direction of a signal. Hold carries no trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
	Hold Direction = "HOLD"
)

// Signal is the output of one evaluation.
type Signal struct {
	Direction Direction
	Reason    string
	ATR       float64
}

// hold builds the no-trade signal, carrying the current ATR when defined.
func hold(curr indicators.Row) Signal {
	return Signal{Direction: Hold, ATR: curr.ATR14}
}

// Variant is the closed set of strategy variants. Selection is external
// configuration and immutable for the lifetime of a run.
type Variant int

const (
	TrendPullback Variant = iota
	MultiRegime
	FractalEfficiency
	LiquiditySweep
)

// Variants lists every variant, in evaluation-report order.
func Variants() []Variant {
	return []Variant{TrendPullback, MultiRegime, FractalEfficiency, LiquiditySweep}
}

func (v Variant) String() string {
	switch v {
	case TrendPullback:
		return "trend-pullback"
	case MultiRegime:
		return "multi-regime"
	case FractalEfficiency:
		return "fractal-efficiency"
	case LiquiditySweep:
		return "liquidity-sweep"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant resolves a config/CLI name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trend-pullback", "trendpullback":
		return TrendPullback, nil
	case "multi-regime", "multiregime":
		return MultiRegime, nil
	case "fractal-efficiency", "fractal":
		return FractalEfficiency, nil
	case "liquidity-sweep", "smc":
		return LiquiditySweep, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (supported: trend-pullback, multi-regime, fractal-efficiency, liquidity-sweep)", name)
	}
}

// Params are the variant-specific risk constants: stop distance and reward
// target as ATR multiples. The sizer receives them as configuration.
type Params struct {
	StopMult   float64
	RewardMult float64
}

// Params returns the risk constants observed for each variant.
func (v Variant) Params() Params {
	switch v {
	case TrendPullback:
		return Params{StopMult: 1.5, RewardMult: 2.0}
	case MultiRegime:
		return Params{StopMult: 2.0, RewardMult: 2.0}
	case FractalEfficiency:
		return Params{StopMult: 2.0, RewardMult: 3.0}
	case LiquiditySweep:
		return Params{StopMult: 2.0, RewardMult: 4.0}
	default:
		return Params{StopMult: 1.5, RewardMult: 2.0}
	}
}

// Evaluate runs the variant's decision table over the last two rows of the
// series. Fewer than two rows, or any required field still in warm-up,
// yields Hold.
func Evaluate(v Variant, rows []indicators.Row) Signal {
	if len(rows) < 2 {
		return Signal{Direction: Hold, ATR: math.NaN()}
	}
	curr := rows[len(rows)-1]
	prev := rows[len(rows)-2]

	switch v {
	case TrendPullback:
		return evalTrendPullback(curr, prev)
	case MultiRegime:
		return evalMultiRegime(curr, prev)
	case FractalEfficiency:
		return evalFractalEfficiency(curr, prev)
	case LiquiditySweep:
		return evalLiquiditySweep(curr, prev)
	default:
		return hold(curr)
	}
}

// defined reports whether every value has finished its warm-up.
func defined(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// TrendLabel is a display-only regime label for the snapshot. It is not part
// of the signal contract.
func TrendLabel(curr indicators.Row) string {
	if !defined(curr.EMA50, curr.EMA200) {
		return ""
	}
	if curr.EMA50 > curr.EMA200 {
		return "UP"
	}
	return "DOWN"
}
