package engine

import (
	"math"
	"time"

	"github.com/rustyeddy/fxbot/broker"
)

// InstrumentState is the per-instrument display summary published each
// cycle.
type InstrumentState struct {
	Price       float64   `json:"price"`
	RSI         float64   `json:"rsi"`
	ATR         float64   `json:"atr"`
	Efficiency  float64   `json:"efficiency"`
	Trend       string    `json:"trend"`
	Signal      string    `json:"signal"`
	Reason      string    `json:"reason,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// Snapshot is the full bot state published at the end of every cycle. It is
// always replaced wholesale, never patched.
type Snapshot struct {
	Status        string                     `json:"status"`
	Strategy      string                     `json:"strategy"`
	AccountID     string                     `json:"account_id"`
	Instruments   map[string]InstrumentState `json:"instruments"`
	OpenPositions []broker.Position          `json:"open_positions"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// Snapshot returns the most recently published snapshot. ok is false before
// the first cycle completes.
func (b *Bot) Snapshot() (Snapshot, bool) {
	b.snapMu.RLock()
	defer b.snapMu.RUnlock()
	if b.snapshot == nil {
		return Snapshot{}, false
	}
	return *b.snapshot, true
}

func (b *Bot) publish(s Snapshot) {
	b.snapMu.Lock()
	b.snapshot = &s
	b.snapMu.Unlock()
}

// round2 trims display values; NaN (still warming up) becomes 0 so the
// snapshot stays JSON-encodable.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// roundPx keeps five decimals for prices and ATR values.
func roundPx(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*1e5) / 1e5
}
