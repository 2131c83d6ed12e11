package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MarketCycles/internal/classifier"
	"MarketCycles/internal/collector"
	"MarketCycles/internal/exporter"
	"MarketCycles/internal/recorder"
)

// Scheduler runs the fetch → classify → export pipeline, either once or
// on a cron schedule (watch mode).
type Scheduler struct {
	Cron          *cron.Cron
	Collector     *collector.Collector
	Sink          exporter.SegmentSink
	Chart         exporter.ChartRenderer
	Recorder      recorder.Recorder
	RecoveryLimit float64
	WindowStart   time.Time
	WindowEnd     time.Time
	Ctx           context.Context
}

// NewScheduler creates a Scheduler wired to the given pipeline components.
func NewScheduler(ctx context.Context, col *collector.Collector, sink exporter.SegmentSink,
	chart exporter.ChartRenderer, rec recorder.Recorder, recoveryLimit float64,
	windowStart, windowEnd time.Time) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Collector:     col,
		Sink:          sink,
		Chart:         chart,
		Recorder:      rec,
		RecoveryLimit: recoveryLimit,
		WindowStart:   windowStart,
		WindowEnd:     windowEnd,
		Ctx:           ctx,
	}
}

// Register schedules the analysis task on the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		if err := s.RunNow(); err != nil {
			log.Printf("[ERROR] scheduled analysis: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the full pipeline once.
func (s *Scheduler) RunNow() error {
	log.Printf("[INFO] running analysis: %s %s..%s limit=%.2f",
		s.Collector.Symbol,
		s.WindowStart.Format("2006-01-02"), s.WindowEnd.Format("2006-01-02"),
		s.RecoveryLimit)

	series, err := s.Collector.Collect(s.Ctx, s.WindowStart, s.WindowEnd)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	bear, bull, err := classifier.Classify(series, s.RecoveryLimit)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	log.Printf("[INFO] classified %d points into %d bear and %d bull segments",
		len(series.Points), len(bear), len(bull))

	if err := s.Sink.Write(bear, bull); err != nil {
		return err
	}
	if err := s.Chart.Render(series, bear, bull); err != nil {
		return err
	}

	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		Symbol:        series.Symbol,
		WindowStart:   s.WindowStart,
		WindowEnd:     s.WindowEnd,
		RecoveryLimit: s.RecoveryLimit,
		PointCount:    len(series.Points),
		Bear:          bear,
		Bull:          bull,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return nil
}
