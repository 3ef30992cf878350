package oanda

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
)

// GetAccount fetches a fresh account summary. Called once per sizing
// decision; the result is never cached across bars.
func (c *Client) GetAccount(ctx context.Context) (broker.AccountSnapshot, error) {
	body, err := c.get(ctx, "/v3/accounts/"+c.AccountID+"/summary", nil)
	if err != nil {
		return broker.AccountSnapshot{}, &broker.GatewayError{Op: "account", Err: err}
	}
	defer body.Close()

	var resp struct {
		Account struct {
			ID              string `json:"id"`
			Currency        string `json:"currency"`
			Balance         string `json:"balance"`
			MarginAvailable string `json:"marginAvailable"`
		} `json:"account"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return broker.AccountSnapshot{}, &broker.GatewayError{Op: "account", Err: err}
	}

	balance, err := parsePrice(resp.Account.Balance)
	if err != nil {
		return broker.AccountSnapshot{}, &broker.GatewayError{Op: "account", Err: err}
	}
	margin, err := parsePrice(resp.Account.MarginAvailable)
	if err != nil {
		return broker.AccountSnapshot{}, &broker.GatewayError{Op: "account", Err: err}
	}

	return broker.AccountSnapshot{
		ID:              resp.Account.ID,
		Currency:        resp.Account.Currency,
		Balance:         balance,
		MarginAvailable: margin,
	}, nil
}

// GetOpenPositions lists the account's open positions. OANDA reports long
// and short sides separately; a side with zero units is absent.
func (c *Client) GetOpenPositions(ctx context.Context) ([]broker.Position, error) {
	body, err := c.get(ctx, "/v3/accounts/"+c.AccountID+"/openPositions", nil)
	if err != nil {
		return nil, &broker.GatewayError{Op: "positions", Err: err}
	}
	defer body.Close()

	var resp struct {
		Positions []struct {
			Instrument string       `json:"instrument"`
			Long       positionSide `json:"long"`
			Short      positionSide `json:"short"`
		} `json:"positions"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, &broker.GatewayError{Op: "positions", Err: err}
	}

	var out []broker.Position
	for _, p := range resp.Positions {
		if pos, ok := p.Long.toPosition(p.Instrument, "LONG"); ok {
			out = append(out, pos)
		}
		if pos, ok := p.Short.toPosition(p.Instrument, "SHORT"); ok {
			out = append(out, pos)
		}
	}
	return out, nil
}

type positionSide struct {
	Units        string `json:"units"`
	AveragePrice string `json:"averagePrice"`
	UnrealizedPL string `json:"unrealizedPL"`
}

func (s positionSide) toPosition(instrument, direction string) (broker.Position, bool) {
	if s.Units == "" || s.Units == "0" {
		return broker.Position{}, false
	}
	units, err := strconv.ParseFloat(s.Units, 64)
	if err != nil || units == 0 {
		return broker.Position{}, false
	}
	avg, _ := strconv.ParseFloat(s.AveragePrice, 64)
	upl, _ := strconv.ParseFloat(s.UnrealizedPL, 64)
	return broker.Position{
		Instrument: instrument,
		Direction:  direction,
		Units:      units,
		AvgPrice:   avg,
		Unrealized: upl,
	}, true
}

// formatPrice renders an order price at the instrument's display precision
// (3 digits for JPY quotes, 5 otherwise).
func formatPrice(instrument string, v float64) string {
	digits := 5
	if meta, ok := market.Instruments[instrument]; ok {
		digits = meta.DisplayDigits
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}
