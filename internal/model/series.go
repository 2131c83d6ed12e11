package model

import (
	"fmt"
	"time"
)

// PricePoint is a single daily closing observation.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries holds a date-ascending sequence of closing prices for one symbol.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Validate checks the series invariants: at least one point, strictly
// ascending dates, positive prices.
func (s PriceSeries) Validate() error {
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: series has no points", ErrMalformedSeries)
	}
	for i, p := range s.Points {
		if !(p.Price > 0) {
			return fmt.Errorf("%w: non-positive price %.4f at %s",
				ErrMalformedSeries, p.Price, p.Date.Format("2006-01-02"))
		}
		if i > 0 && !s.Points[i-1].Date.Before(p.Date) {
			return fmt.Errorf("%w: dates not strictly ascending at %s",
				ErrMalformedSeries, p.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// First returns the earliest point. Callers must ensure the series is non-empty.
func (s PriceSeries) First() PricePoint { return s.Points[0] }

// Last returns the latest point. Callers must ensure the series is non-empty.
func (s PriceSeries) Last() PricePoint { return s.Points[len(s.Points)-1] }
