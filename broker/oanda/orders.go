package oanda

import (
	"context"
	"strconv"

	"github.com/rustyeddy/fxbot/broker"
)

// marketOrder is the v20 order creation payload. Units and prices are
// strings; stop and take-profit are attached on fill.
type marketOrder struct {
	Order struct {
		Instrument     string     `json:"instrument"`
		Units          string     `json:"units"`
		Type           string     `json:"type"`
		PositionFill   string     `json:"positionFill"`
		StopLossOnFill priceLevel `json:"stopLossOnFill"`
		TakeProfit     priceLevel `json:"takeProfitOnFill"`
	} `json:"order"`
}

type priceLevel struct {
	Price string `json:"price"`
}

// CreateOrder submits a market order with protective stop and take-profit
// levels attached. Submission failures are not retried within the cycle.
func (c *Client) CreateOrder(ctx context.Context, intent broker.OrderIntent) error {
	var req marketOrder
	req.Order.Instrument = intent.Instrument
	req.Order.Units = strconv.FormatInt(intent.Units, 10)
	req.Order.Type = "MARKET"
	req.Order.PositionFill = "DEFAULT"
	req.Order.StopLossOnFill = priceLevel{Price: formatPrice(intent.Instrument, intent.StopPrice)}
	req.Order.TakeProfit = priceLevel{Price: formatPrice(intent.Instrument, intent.TakeProfitPrice)}

	if err := c.post(ctx, "/v3/accounts/"+c.AccountID+"/orders", req); err != nil {
		return &broker.GatewayError{Op: "order", Instrument: intent.Instrument, Err: err}
	}
	return nil
}
