package collector

import (
	"context"
	"time"

	"MarketCycles/internal/model"
)

// PriceSource delivers daily closing prices for a symbol within a date window.
type PriceSource interface {
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]model.PricePoint, error)
	Name() string
}
