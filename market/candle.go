// Package market defines candle history and instrument metadata.
package market

import "time"

// Candle is one fully-closed OHLCV bar. Partial (still-forming) bars are
// never admitted into a Series.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Range returns high minus low.
func (c Candle) Range() float64 {
	return c.High - c.Low
}
