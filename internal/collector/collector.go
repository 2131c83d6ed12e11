package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"MarketCycles/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Points []model.PricePoint
	Err    error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchDailyCloses(_ context.Context, _ string, start, end time.Time) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return GenerateMockCloses(100, start, end), nil
}

// GenerateMockCloses builds a deterministic zigzag walk between two dates,
// one point per day. Useful for offline runs.
func GenerateMockCloses(basePrice float64, start, end time.Time) []model.PricePoint {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return nil
	}
	points := make([]model.PricePoint, days)
	price := basePrice
	for i := 0; i < days; i++ {
		// Slow drift up with a sharp drawdown every 90 days.
		if i%90 < 60 {
			price *= 1.004
		} else {
			price *= 0.994
		}
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return points
}

// Collector fetches a price series and prepares it for classification.
type Collector struct {
	Source PriceSource
	Symbol string
	Weekly bool // resample daily closes into 7-day buckets
}

// NewCollector creates a Collector for one symbol.
func NewCollector(source PriceSource, symbol string, weekly bool) *Collector {
	return &Collector{Source: source, Symbol: symbol, Weekly: weekly}
}

// Collect fetches closes for the window, optionally resamples them to
// weekly, and validates the result.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) (model.PriceSeries, error) {
	points, err := c.Source.FetchDailyCloses(ctx, c.Symbol, start, end)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetch daily closes: %w", err)
	}
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: empty window %s..%s",
			model.ErrDataUnavailable, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	log.Printf("[INFO] fetched %d daily closes for %s from %s", len(points), c.Symbol, c.Source.Name())

	if c.Weekly {
		points = ResampleWeekly(points)
		log.Printf("[INFO] resampled to %d weekly closes", len(points))
	}

	series := model.PriceSeries{
		Symbol:    c.Symbol,
		Points:    points,
		FetchedAt: time.Now(),
	}
	if err := series.Validate(); err != nil {
		return model.PriceSeries{}, err
	}
	return series, nil
}

// ResampleWeekly buckets daily closes into 7-day bins anchored at the
// first date, keeping the last close of each bin and forward-filling
// empty bins. Bin labels are the bin start dates.
func ResampleWeekly(points []model.PricePoint) []model.PricePoint {
	if len(points) < 2 {
		return points
	}
	anchor := points[0].Date
	lastBin := int(points[len(points)-1].Date.Sub(anchor).Hours() / 24 / 7)

	closes := make(map[int]float64, lastBin+1)
	for _, p := range points {
		bin := int(p.Date.Sub(anchor).Hours() / 24 / 7)
		closes[bin] = p.Price // ascending input, last write wins
	}

	out := make([]model.PricePoint, 0, lastBin+1)
	prev := points[0].Price
	for bin := 0; bin <= lastBin; bin++ {
		price, ok := closes[bin]
		if !ok {
			price = prev
		}
		out = append(out, model.PricePoint{Date: anchor.AddDate(0, 0, bin*7), Price: price})
		prev = price
	}
	return out
}
