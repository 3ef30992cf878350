// Package backtest replays the indicator pipeline and strategy evaluator
// over historical candles to estimate win rate and expectancy.
//
// Replay shares no mutable state with the live engine, but calls the exact
// same Compute and Evaluate, so backtested and live behavior cannot diverge.
package backtest

import (
	"math"

	"github.com/rustyeddy/fxbot/indicators"
	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/strategy"
)

// Options tunes the replay.
type Options struct {
	// DetectHighLow switches stop/target detection from close-only (the
	// default, matching live close-based polling) to intrabar high/low.
	// High/low detection is stricter about stop-outs; when both levels are
	// crossed in the same bar the stop wins (pessimistic).
	DetectHighLow bool
}

// Result aggregates one replay run. Trades counts only resolved signals;
// signals still open when the series ends are discarded.
type Result struct {
	Strategy   strategy.Variant
	Signals    int // all non-HOLD evaluations
	Trades     int // resolved signals
	Wins       int
	Losses     int
	WinRate    float64
	Expectancy float64
}

// Replay runs the pipeline once over the full series and walks forward
// bar-by-bar from the end of warm-up. At each bar the strategy sees only
// rows up to and including that bar. Each signal is classified by scanning
// strictly-later bars until its reward target or stop level is crossed.
func Replay(variant strategy.Variant, candles []market.Candle, opts Options) (Result, error) {
	rows, err := indicators.Compute(candles)
	if err != nil {
		return Result{}, err
	}

	params := variant.Params()
	res := Result{Strategy: variant}

	// EMA-200 is defined from index MinHistory-1 on, so that is the first
	// bar the strategy can see fully warm.
	for i := indicators.MinHistory - 1; i < len(rows); i++ {
		sig := strategy.Evaluate(variant, rows[:i+1])
		if sig.Direction == strategy.Hold {
			continue
		}
		res.Signals++

		stopDist := sig.ATR * params.StopMult
		if !(stopDist > 0) {
			continue
		}
		targetDist := stopDist * params.RewardMult
		entry := rows[i].Close

		outcome, resolved := scanForward(rows[i+1:], sig.Direction, entry, stopDist, targetDist, opts.DetectHighLow)
		if !resolved {
			continue
		}
		res.Trades++
		if outcome {
			res.Wins++
		} else {
			res.Losses++
		}
	}

	if res.Trades > 0 {
		res.WinRate = float64(res.Wins) / float64(res.Trades)
		res.Expectancy = res.WinRate*params.RewardMult - (1.0 - res.WinRate)
	}
	return res, nil
}

// scanForward classifies one signal against future bars. Returns
// (win, resolved); resolved is false when neither level is crossed before
// the series ends.
func scanForward(future []indicators.Row, dir strategy.Direction, entry, stopDist, targetDist float64, highLow bool) (bool, bool) {
	target := entry + targetDist
	stop := entry - stopDist
	if dir == strategy.Sell {
		target = entry - targetDist
		stop = entry + stopDist
	}

	for _, row := range future {
		if highLow {
			if hit, win := checkHighLow(row, dir, stop, target); hit {
				return win, true
			}
			continue
		}

		px := row.Close
		if math.IsNaN(px) {
			continue
		}
		switch dir {
		case strategy.Buy:
			if px >= target {
				return true, true
			}
			if px <= stop {
				return false, true
			}
		case strategy.Sell:
			if px <= target {
				return true, true
			}
			if px >= stop {
				return false, true
			}
		}
	}
	return false, false
}

// checkHighLow applies intrabar detection: stop first when both levels are
// crossed within the same bar.
func checkHighLow(row indicators.Row, dir strategy.Direction, stop, target float64) (hit, win bool) {
	switch dir {
	case strategy.Buy:
		stopHit := row.Low <= stop
		targetHit := row.High >= target
		if stopHit {
			return true, false
		}
		if targetHit {
			return true, true
		}
	case strategy.Sell:
		stopHit := row.High >= stop
		targetHit := row.Low <= target
		if stopHit {
			return true, false
		}
		if targetHit {
			return true, true
		}
	}
	return false, false
}
