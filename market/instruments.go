package market

import "math"

// InstrumentMeta describes a tradable FX pair.
type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int // power of ten, e.g. -4 for EUR_USD, -2 for USD_JPY
	DisplayDigits int // price precision for order prices
}

// Instruments holds metadata for the pairs the bot understands.
var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {Name: "EUR_USD", BaseCurrency: "EUR", QuoteCurrency: "USD", PipLocation: -4, DisplayDigits: 5},
	"GBP_USD": {Name: "GBP_USD", BaseCurrency: "GBP", QuoteCurrency: "USD", PipLocation: -4, DisplayDigits: 5},
	"USD_JPY": {Name: "USD_JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", PipLocation: -2, DisplayDigits: 3},
	"AUD_USD": {Name: "AUD_USD", BaseCurrency: "AUD", QuoteCurrency: "USD", PipLocation: -4, DisplayDigits: 5},
	"USD_CAD": {Name: "USD_CAD", BaseCurrency: "USD", QuoteCurrency: "CAD", PipLocation: -4, DisplayDigits: 5},
}

// PipSize returns the pip size in price units, e.g. 0.0001 for EUR_USD.
func (m InstrumentMeta) PipSize() float64 {
	return math.Pow10(m.PipLocation)
}
