package market

import (
	"fmt"
	"time"
)

// Series is the ordered candle history for a single instrument.
// Candles are ascending by time with no duplicate timestamps.
type Series struct {
	Instrument string
	Candles    []Candle
}

// NewSeries validates and wraps an already-ordered candle slice.
// Out-of-order or duplicate timestamps are rejected rather than silently
// reordered: the gateway is expected to deliver bars in sequence.
func NewSeries(instrument string, candles []Candle) (*Series, error) {
	for i := 1; i < len(candles); i++ {
		if !candles[i].Time.After(candles[i-1].Time) {
			return nil, fmt.Errorf("series %s: candle %d (%s) not after candle %d (%s)",
				instrument, i, candles[i].Time.Format(time.RFC3339),
				i-1, candles[i-1].Time.Format(time.RFC3339))
		}
	}
	return &Series{Instrument: instrument, Candles: candles}, nil
}

// Append adds one closed candle. Duplicates of the last timestamp are
// dropped (keep-first), older timestamps are an error.
func (s *Series) Append(c Candle) error {
	if n := len(s.Candles); n > 0 {
		last := s.Candles[n-1].Time
		if c.Time.Equal(last) {
			return nil
		}
		if c.Time.Before(last) {
			return fmt.Errorf("series %s: candle at %s is older than last %s",
				s.Instrument, c.Time.Format(time.RFC3339), last.Format(time.RFC3339))
		}
	}
	s.Candles = append(s.Candles, c)
	return nil
}

func (s *Series) Len() int {
	return len(s.Candles)
}

// Last returns the most recent candle, ok=false when the series is empty.
func (s *Series) Last() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}
