package recorder

import (
	"time"

	"MarketCycles/internal/model"
)

// RunRecord holds everything worth keeping from one analysis run.
type RunRecord struct {
	Symbol        string
	WindowStart   time.Time
	WindowEnd     time.Time
	RecoveryLimit float64
	PointCount    int
	Bear          []model.Segment
	Bull          []model.Segment
}

// Recorder persists analysis runs for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
