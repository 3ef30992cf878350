// Package broker defines the market data and order gateway capability the
// bot consumes. Implementations live in subpackages (broker/oanda).
package broker

import (
	"context"
	"fmt"

	"github.com/rustyeddy/fxbot/market"
)

// Gateway is the abstract market-data and order-submission capability.
// GetCandles returns only fully-closed bars, ascending by time.
type Gateway interface {
	GetCandles(ctx context.Context, instrument, granularity string, count int) ([]market.Candle, error)
	GetAccount(ctx context.Context) (AccountSnapshot, error)
	GetOpenPositions(ctx context.Context) ([]Position, error)
	CreateOrder(ctx context.Context, intent OrderIntent) error
}

// AccountSnapshot is the account state at sizing time. It is fetched fresh
// for every sizing decision, never cached across bars.
type AccountSnapshot struct {
	ID              string
	Currency        string
	Balance         float64
	MarginAvailable float64
}

// Position is an open broker position, passed through to the snapshot
// without interpretation beyond these fields.
type Position struct {
	Instrument string  `json:"instrument"`
	Direction  string  `json:"direction"`
	Units      float64 `json:"units"`
	AvgPrice   float64 `json:"avg_price"`
	Unrealized float64 `json:"unrealized_pl"`
}

// OrderIntent is a sized market order with protective levels attached.
// The sign of Units encodes direction: positive is long.
type OrderIntent struct {
	Instrument      string
	Units           int64
	StopPrice       float64
	TakeProfitPrice float64
}

// GatewayError wraps a failed gateway call with enough context to diagnose
// which stage and instrument failed. Recoverable: the caller logs it and
// skips the instrument for the cycle.
type GatewayError struct {
	Op         string // "candles", "account", "positions", "order"
	Instrument string // empty for account-level calls
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Instrument != "" {
		return fmt.Sprintf("gateway %s %s: %v", e.Op, e.Instrument, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
