package oanda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxbot/broker"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		BaseURL:   srv.URL,
		Token:     "test-token",
		AccountID: "101-001-1234567-001",
		HTTP:      srv.Client(),
	}
}

const candlesPayload = `{
	"instrument": "EUR_USD",
	"granularity": "M5",
	"candles": [
		{"complete": true, "volume": 120, "time": "2024-06-03T09:00:00.000000000Z",
		 "mid": {"o": "1.08450", "h": "1.08490", "l": "1.08430", "c": "1.08470"}},
		{"complete": true, "volume": 98, "time": "2024-06-03T09:05:00.000000000Z",
		 "mid": {"o": "1.08470", "h": "1.08510", "l": "1.08460", "c": "1.08500"}},
		{"complete": false, "volume": 12, "time": "2024-06-03T09:10:00.000000000Z",
		 "mid": {"o": "1.08500", "h": "1.08505", "l": "1.08495", "c": "1.08502"}}
	]
}`

func TestGetCandles(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Write([]byte(candlesPayload))
	})

	candles, err := client.GetCandles(context.Background(), "EUR_USD", "M5", 250)
	require.NoError(t, err)

	assert.Equal(t, "/v3/instruments/EUR_USD/candles", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, []string{"M5"}, gotQuery["granularity"])
	assert.Equal(t, []string{"250"}, gotQuery["count"])
	assert.Equal(t, []string{"M"}, gotQuery["price"])

	// The still-forming third bar is dropped.
	require.Len(t, candles, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), candles[0].Time.UTC())
	assert.Equal(t, 1.08450, candles[0].Open)
	assert.Equal(t, 1.08490, candles[0].High)
	assert.Equal(t, 1.08430, candles[0].Low)
	assert.Equal(t, 1.08470, candles[0].Close)
	assert.Equal(t, int64(120), candles[0].Volume)
	assert.Equal(t, 1.08500, candles[1].Close)
}

func TestGetCandlesHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"Insufficient authorization"}`, http.StatusUnauthorized)
	})

	_, err := client.GetCandles(context.Background(), "EUR_USD", "M5", 250)
	require.Error(t, err)

	var gerr *broker.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "candles", gerr.Op)
	assert.Equal(t, "EUR_USD", gerr.Instrument)
	assert.Contains(t, err.Error(), "401")
}

func TestGetCandlesRejectsDisorder(t *testing.T) {
	// A gateway response with bars out of time order must be rejected, not
	// fed downstream.
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candles": [
			{"complete": true, "volume": 10, "time": "2024-06-03T09:05:00Z",
			 "mid": {"o": "1.1", "h": "1.1", "l": "1.1", "c": "1.1"}},
			{"complete": true, "volume": 10, "time": "2024-06-03T09:00:00Z",
			 "mid": {"o": "1.1", "h": "1.1", "l": "1.1", "c": "1.1"}}
		]}`))
	})

	_, err := client.GetCandles(context.Background(), "EUR_USD", "M5", 250)
	require.Error(t, err)

	var gerr *broker.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "candles", gerr.Op)
	assert.Contains(t, err.Error(), "not after")
}

func TestParseCandlesBadPrice(t *testing.T) {
	var resp candlesResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"candles": [{"complete": true, "time": "2024-06-03T09:00:00Z",
		             "mid": {"o": "1.1", "h": "1.1", "l": "1.1", "c": "oops"}}]
	}`), &resp))

	_, err := parseCandles(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad price")
}

func TestGetAccount(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"account": {
			"id": "101-001-1234567-001",
			"currency": "USD",
			"balance": "10000.0000",
			"marginAvailable": "9523.5000"
		}}`))
	})

	acct, err := client.GetAccount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/v3/accounts/101-001-1234567-001/summary", gotPath)
	assert.Equal(t, "101-001-1234567-001", acct.ID)
	assert.Equal(t, "USD", acct.Currency)
	assert.Equal(t, 10000.0, acct.Balance)
	assert.Equal(t, 9523.5, acct.MarginAvailable)
}

func TestGetOpenPositions(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"positions": [
			{"instrument": "EUR_USD",
			 "long": {"units": "33333", "averagePrice": "1.10000", "unrealizedPL": "12.5000"},
			 "short": {"units": "0"}},
			{"instrument": "USD_JPY",
			 "long": {"units": "0"},
			 "short": {"units": "-20000", "averagePrice": "151.250", "unrealizedPL": "-8.0000"}}
		]}`))
	})

	positions, err := client.GetOpenPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, "EUR_USD", positions[0].Instrument)
	assert.Equal(t, "LONG", positions[0].Direction)
	assert.Equal(t, 33333.0, positions[0].Units)
	assert.Equal(t, 1.10, positions[0].AvgPrice)

	assert.Equal(t, "USD_JPY", positions[1].Instrument)
	assert.Equal(t, "SHORT", positions[1].Direction)
	assert.Equal(t, -20000.0, positions[1].Units)
	assert.Equal(t, -8.0, positions[1].Unrealized)
}

func TestCreateOrder(t *testing.T) {
	var gotBody marketOrder
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v3/accounts/101-001-1234567-001/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderCreateTransaction": {"id": "42"}}`))
	})

	err := client.CreateOrder(context.Background(), broker.OrderIntent{
		Instrument:      "EUR_USD",
		Units:           33333,
		StopPrice:       1.097,
		TakeProfitPrice: 1.109,
	})
	require.NoError(t, err)

	assert.Equal(t, "EUR_USD", gotBody.Order.Instrument)
	assert.Equal(t, "33333", gotBody.Order.Units)
	assert.Equal(t, "MARKET", gotBody.Order.Type)
	assert.Equal(t, "DEFAULT", gotBody.Order.PositionFill)
	assert.Equal(t, "1.09700", gotBody.Order.StopLossOnFill.Price)
	assert.Equal(t, "1.10900", gotBody.Order.TakeProfit.Price)
}

func TestCreateOrderRejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"INSUFFICIENT_MARGIN"}`, http.StatusBadRequest)
	})

	err := client.CreateOrder(context.Background(), broker.OrderIntent{Instrument: "EUR_USD", Units: -20000})
	require.Error(t, err)

	var gerr *broker.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "order", gerr.Op)
	assert.Contains(t, err.Error(), "INSUFFICIENT_MARGIN")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1.09700", formatPrice("EUR_USD", 1.097))
	assert.Equal(t, "151.250", formatPrice("USD_JPY", 151.25))
	assert.Equal(t, "0.65432", formatPrice("UNKNOWN_PAIR", 0.654321))
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		env     string
		want    string
		wantErr bool
	}{
		{"practice", "https://api-fxpractice.oanda.com", false},
		{"demo", "https://api-fxpractice.oanda.com", false},
		{"LIVE", "https://api-fxtrade.oanda.com", false},
		{"staging", "", true},
	}
	for _, tt := range tests {
		got, err := BaseURL(tt.env)
		if tt.wantErr {
			assert.Error(t, err, tt.env)
			continue
		}
		require.NoError(t, err, tt.env)
		assert.Equal(t, tt.want, got, tt.env)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("OANDA_API_KEY", "abc123")
	t.Setenv("OANDA_ACCOUNT_ID", "101-001-1234567-001")
	t.Setenv("OANDA_ENV", "")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "abc123", creds.Token)
	assert.Equal(t, "practice", creds.Env, "env defaults to practice")

	t.Setenv("OANDA_API_KEY", "")
	_, err = LoadCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OANDA_API_KEY")
}
