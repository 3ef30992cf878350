package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal implements Journal on a local SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the journal database at path.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordSignal(s SignalRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO signals (id, time, instrument, direction, reason, atr)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Time, s.Instrument, s.Direction, s.Reason, s.ATR,
	)
	return err
}

func (j *SQLiteJournal) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders (id, time, instrument, units, stop_price, take_profit_price, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Time, o.Instrument, o.Units, o.StopPrice, o.TakeProfitPrice, o.Status, o.Error,
	)
	return err
}

func (j *SQLiteJournal) RecordBacktest(b BacktestRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO backtest_runs (id, time, strategy, instrument, trades, wins, losses, win_rate, expectancy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Time, b.Strategy, b.Instrument, b.Trades, b.Wins, b.Losses, b.WinRate, b.Expectancy,
	)
	return err
}

// ListSignals returns the most recent signals for an instrument, newest
// first, capped at limit.
func (j *SQLiteJournal) ListSignals(instrument string, limit int) ([]SignalRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, instrument, direction, reason, atr
		FROM signals WHERE instrument = ?
		ORDER BY time DESC LIMIT ?`,
		instrument, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SignalRecord
	for rows.Next() {
		var s SignalRecord
		if err := rows.Scan(&s.ID, &s.Time, &s.Instrument, &s.Direction, &s.Reason, &s.ATR); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListBacktestRuns returns all recorded backtest runs, newest first.
func (j *SQLiteJournal) ListBacktestRuns() ([]BacktestRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, strategy, instrument, trades, wins, losses, win_rate, expectancy
		FROM backtest_runs ORDER BY time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BacktestRecord
	for rows.Next() {
		var b BacktestRecord
		if err := rows.Scan(&b.ID, &b.Time, &b.Strategy, &b.Instrument, &b.Trades, &b.Wins, &b.Losses, &b.WinRate, &b.Expectancy); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
