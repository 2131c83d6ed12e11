package classifier

import "MarketCycles/internal/model"

// FindExtrema scans the series once and returns its turning points in
// chronological order. Interior extrema are direction reversals; an
// equal-price plateau resolves to its first point. Both series endpoints
// are always included so the resulting chain covers the whole series,
// their kind derived from the sign of the adjacent move (a flat series
// yields a trough at the start and a peak at the end).
func FindExtrema(series model.PriceSeries) []model.Extremum {
	points := series.Points
	n := len(points)
	if n < 2 {
		return nil
	}

	extrema := make([]model.Extremum, 0, 8)

	// First boundary: a rising (or flat) start behaves like a trough.
	firstDir := 0
	for i := 1; i < n; i++ {
		if d := sign(points[i].Price - points[i-1].Price); d != 0 {
			firstDir = d
			break
		}
	}
	firstKind := model.Trough
	if firstDir < 0 {
		firstKind = model.Peak
	}
	extrema = append(extrema, model.Extremum{Index: 0, Point: points[0], Kind: firstKind})

	// Interior reversals. pivot tracks the endpoint of the last nonzero
	// move, which is the first point of any plateau that follows it.
	dir := 0
	pivot := 0
	for i := 1; i < n; i++ {
		d := sign(points[i].Price - points[i-1].Price)
		if d == 0 {
			continue
		}
		if dir != 0 && d != dir {
			kind := model.Trough
			if dir > 0 {
				kind = model.Peak
			}
			extrema = append(extrema, model.Extremum{Index: pivot, Point: points[pivot], Kind: kind})
		}
		dir = d
		pivot = i
	}

	// Last boundary: a rising (or flat) finish behaves like a peak.
	lastKind := model.Peak
	if dir < 0 {
		lastKind = model.Trough
	}
	extrema = append(extrema, model.Extremum{Index: n - 1, Point: points[n-1], Kind: lastKind})

	return extrema
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
