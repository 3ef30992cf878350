// Package journal persists emitted signals, order submissions, and backtest
// runs to SQLite for later diagnostics.
package journal

import "time"

// SignalRecord is one non-HOLD evaluation outcome.
type SignalRecord struct {
	ID         string
	Time       time.Time
	Instrument string
	Direction  string
	Reason     string
	ATR        float64
}

// OrderRecord is one order submission attempt and its outcome.
type OrderRecord struct {
	ID              string
	Time            time.Time
	Instrument      string
	Units           int64
	StopPrice       float64
	TakeProfitPrice float64
	Status          string // "submitted" or "failed"
	Error           string // empty on success
}

// BacktestRecord summarizes one replay run.
type BacktestRecord struct {
	ID         string
	Time       time.Time
	Strategy   string
	Instrument string
	Trades     int
	Wins       int
	Losses     int
	WinRate    float64
	Expectancy float64
}

// Journal records bot activity. Implementations must be safe for use from
// the single engine goroutine plus one-off CLI commands.
type Journal interface {
	RecordSignal(SignalRecord) error
	RecordOrder(OrderRecord) error
	RecordBacktest(BacktestRecord) error
	Close() error
}
