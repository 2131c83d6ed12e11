package classifier

import (
	"fmt"
	"math"

	"MarketCycles/internal/model"
)

// Classify partitions a price series into bear and bull market segments.
//
// Turning points below the recovery limit are coalesced into the
// surrounding trend: the leftmost sub-threshold candidate merges first
// and the scan backs up one position, so small pullbacks never fragment
// a larger move. The final chain is contiguous from the first to the
// last date of the series. A single remaining segment is always kept,
// whatever its size, so the output covers the full series.
//
// recoveryLimit is a fraction (0.20 = 20%) and must be positive. A limit
// of 1 or more is legal: no decline can reach 100%, so bear segments can
// never confirm, but a rise can exceed it.
func Classify(series model.PriceSeries, recoveryLimit float64) (bear, bull []model.Segment, err error) {
	if !(recoveryLimit > 0) {
		return nil, nil, fmt.Errorf("%w: recovery limit must be positive, got %v",
			model.ErrInvalidArgument, recoveryLimit)
	}
	if err := series.Validate(); err != nil {
		return nil, nil, err
	}

	extrema := FindExtrema(series)
	if len(extrema) < 2 {
		return nil, nil, nil
	}

	chain := make([]model.PricePoint, len(extrema))
	for i, e := range extrema {
		chain[i] = e.Point
	}
	chain = mergeBelowThreshold(chain, recoveryLimit)

	for i := 0; i+1 < len(chain); i++ {
		seg := model.NewSegment(chain[i], chain[i+1])
		if seg.Kind == model.KindBear {
			bear = append(bear, seg)
		} else {
			bull = append(bull, seg)
		}
	}
	return bear, bull, nil
}

// mergeBelowThreshold coalesces the breakpoint chain until every
// candidate segment moves by at least limit, or one segment remains.
// Series boundaries are never dropped; merging a boundary segment drops
// its interior endpoint so the trailing (or leading) noise folds into
// the adjacent trend.
func mergeBelowThreshold(chain []model.PricePoint, limit float64) []model.PricePoint {
	i := 0
	for len(chain) > 2 && i < len(chain)-1 {
		pct := (chain[i+1].Price - chain[i].Price) / chain[i].Price
		if math.Abs(pct) >= limit {
			i++
			continue
		}
		switch {
		case i == 0:
			chain = append(chain[:1], chain[2:]...)
		case i+1 == len(chain)-1:
			chain = append(chain[:i], chain[i+1:]...)
		default:
			chain = append(chain[:i], chain[i+2:]...)
		}
		// Re-check the neighbor the merge just extended.
		if i > 0 {
			i--
		}
	}
	return chain
}
