package models

import "time"

// MPricePoint represents one OHLCV bar for a symbol.
// Immutable once fetched.
type MPricePoint struct {
	Symbol    string    `json:"symbol"`
	Timestamp int64     `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	FetchedAt time.Time `json:"fetched_at"`
}

// -----------------------------------------------------------------------------

// MPriceSeries is an ordered sequence of price points for one symbol.
// Rebuilt on each fetch, never persisted as a unit.
type MPriceSeries struct {
	Symbol string        `json:"symbol"`
	Range  string        `json:"range"`
	Points []MPricePoint `json:"points"`
}

// -----------------------------------------------------------------------------

// Closes extracts the closing prices in series order.
func (s MPriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
