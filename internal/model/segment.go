package model

import "time"

// SegmentKind labels a market segment as a decline or an advance.
type SegmentKind string

const (
	KindBear SegmentKind = "bear"
	KindBull SegmentKind = "bull"
)

// KindForChange maps a fractional price change to a segment kind.
// Zero change counts as bull, never bear.
func KindForChange(pctChange float64) SegmentKind {
	if pctChange < 0 {
		return KindBear
	}
	return KindBull
}

// Segment is one contiguous market period between two turning points.
// PctChange is a fraction: (EndPrice - StartPrice) / StartPrice.
type Segment struct {
	Kind       SegmentKind
	StartDate  time.Time
	EndDate    time.Time
	StartPrice float64
	EndPrice   float64
	PctChange  float64
	Days       int
}

// NewSegment builds a segment between two price points, deriving its
// change, duration and kind.
func NewSegment(start, end PricePoint) Segment {
	pct := (end.Price - start.Price) / start.Price
	return Segment{
		Kind:       KindForChange(pct),
		StartDate:  start.Date,
		EndDate:    end.Date,
		StartPrice: start.Price,
		EndPrice:   end.Price,
		PctChange:  pct,
		Days:       int(end.Date.Sub(start.Date).Hours() / 24),
	}
}

// ExtremumKind tags a turning point as a local top or bottom.
type ExtremumKind string

const (
	Peak   ExtremumKind = "peak"
	Trough ExtremumKind = "trough"
)

// Extremum is a price point marked as a local maximum or minimum.
type Extremum struct {
	Index int
	Point PricePoint
	Kind  ExtremumKind
}
