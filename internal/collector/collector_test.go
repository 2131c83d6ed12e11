package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"MarketCycles/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResampleWeekly_LastCloseOfEachBucket(t *testing.T) {
	anchor := day("2020-01-01")
	var points []model.PricePoint
	// Two full weeks of daily data, prices encode the day offset.
	for i := 0; i < 14; i++ {
		points = append(points, model.PricePoint{Date: anchor.AddDate(0, 0, i), Price: 100 + float64(i)})
	}

	out := ResampleWeekly(points)
	if len(out) != 2 {
		t.Fatalf("expected 2 weekly points, got %d", len(out))
	}
	if !out[0].Date.Equal(anchor) || !out[1].Date.Equal(anchor.AddDate(0, 0, 7)) {
		t.Errorf("bucket dates wrong: %v, %v", out[0].Date, out[1].Date)
	}
	if out[0].Price != 106 || out[1].Price != 113 {
		t.Errorf("expected last close of each bucket (106, 113), got (%v, %v)", out[0].Price, out[1].Price)
	}
}

func TestResampleWeekly_ForwardFillsEmptyBuckets(t *testing.T) {
	anchor := day("2020-01-01")
	points := []model.PricePoint{
		{Date: anchor, Price: 100},
		{Date: anchor.AddDate(0, 0, 3), Price: 105},
		// week 2 (days 7-13) entirely missing
		{Date: anchor.AddDate(0, 0, 15), Price: 120},
	}

	out := ResampleWeekly(points)
	if len(out) != 3 {
		t.Fatalf("expected 3 weekly points, got %d", len(out))
	}
	if out[1].Price != 105 {
		t.Errorf("empty bucket should forward-fill previous close 105, got %v", out[1].Price)
	}
	if out[2].Price != 120 {
		t.Errorf("third bucket close = %v, want 120", out[2].Price)
	}
}

func TestCollect_ValidSeries(t *testing.T) {
	points := []model.PricePoint{
		{Date: day("2020-01-01"), Price: 100},
		{Date: day("2020-01-02"), Price: 101},
		{Date: day("2020-01-03"), Price: 99},
	}
	col := NewCollector(&MockSource{Points: points}, "TEST", false)

	series, err := col.Collect(context.Background(), day("2020-01-01"), day("2020-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Symbol != "TEST" || len(series.Points) != 3 {
		t.Errorf("unexpected series: symbol=%s points=%d", series.Symbol, len(series.Points))
	}
}

func TestCollect_SourceFailure(t *testing.T) {
	col := NewCollector(&MockSource{Err: fmt.Errorf("%w: upstream down", model.ErrDataUnavailable)}, "TEST", false)
	_, err := col.Collect(context.Background(), day("2020-01-01"), day("2020-02-01"))
	if !errors.Is(err, model.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestCollect_RejectsMalformedData(t *testing.T) {
	duplicated := []model.PricePoint{
		{Date: day("2020-01-01"), Price: 100},
		{Date: day("2020-01-01"), Price: 101},
	}
	col := NewCollector(&MockSource{Points: duplicated}, "TEST", false)
	_, err := col.Collect(context.Background(), day("2020-01-01"), day("2020-01-02"))
	if !errors.Is(err, model.ErrMalformedSeries) {
		t.Errorf("expected ErrMalformedSeries, got %v", err)
	}
}

func TestGenerateMockCloses_Deterministic(t *testing.T) {
	start, end := day("2020-01-01"), day("2020-12-31")
	a := GenerateMockCloses(100, start, end)
	b := GenerateMockCloses(100, start, end)
	if len(a) != 366 {
		t.Fatalf("expected one point per day (366), got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mock closes differ at %d", i)
		}
	}
}
