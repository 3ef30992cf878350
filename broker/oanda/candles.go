package oanda

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
)

// candlesResponse mirrors the v20 instrument candles payload. Prices arrive
// as strings.
type candlesResponse struct {
	Instrument string `json:"instrument"`
	Candles    []struct {
		Complete bool   `json:"complete"`
		Volume   int64  `json:"volume"`
		Time     string `json:"time"`
		Mid      struct {
			O string `json:"o"`
			H string `json:"h"`
			L string `json:"l"`
			C string `json:"c"`
		} `json:"mid"`
	} `json:"candles"`
}

// GetCandles fetches the most recent count bars at the given granularity.
// Incomplete (still-forming) bars are dropped, and the result is validated
// as an ordered series before anything downstream consumes it.
func (c *Client) GetCandles(ctx context.Context, instrument, granularity string, count int) ([]market.Candle, error) {
	body, err := c.get(ctx, "/v3/instruments/"+instrument+"/candles", map[string]string{
		"granularity": granularity,
		"count":       strconv.Itoa(count),
		"price":       "M",
	})
	if err != nil {
		return nil, &broker.GatewayError{Op: "candles", Instrument: instrument, Err: err}
	}
	defer body.Close()

	var resp candlesResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, &broker.GatewayError{Op: "candles", Instrument: instrument, Err: err}
	}

	candles, err := parseCandles(resp)
	if err != nil {
		return nil, &broker.GatewayError{Op: "candles", Instrument: instrument, Err: err}
	}
	series, err := market.NewSeries(instrument, candles)
	if err != nil {
		return nil, &broker.GatewayError{Op: "candles", Instrument: instrument, Err: err}
	}
	return series.Candles, nil
}

func parseCandles(resp candlesResponse) ([]market.Candle, error) {
	out := make([]market.Candle, 0, len(resp.Candles))
	for _, rc := range resp.Candles {
		if !rc.Complete {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, rc.Time)
		if err != nil {
			return nil, fmt.Errorf("bad candle time %q: %w", rc.Time, err)
		}
		o, err := parsePrice(rc.Mid.O)
		if err != nil {
			return nil, err
		}
		h, err := parsePrice(rc.Mid.H)
		if err != nil {
			return nil, err
		}
		l, err := parsePrice(rc.Mid.L)
		if err != nil {
			return nil, err
		}
		cl, err := parsePrice(rc.Mid.C)
		if err != nil {
			return nil, err
		}
		out = append(out, market.Candle{
			Time:   t,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: rc.Volume,
		})
	}
	return out, nil
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q: %w", s, err)
	}
	return v, nil
}
