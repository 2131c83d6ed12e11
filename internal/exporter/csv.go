package exporter

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"MarketCycles/internal/model"
)

// SegmentSink persists the final bear and bull segment chains.
type SegmentSink interface {
	Write(bear, bull []model.Segment) error
}

// CSVSink writes one delimited file per segment kind, each with a header row.
type CSVSink struct {
	BearPath string
	BullPath string
}

// NewCSVSink creates a sink writing to the two given paths.
func NewCSVSink(bearPath, bullPath string) *CSVSink {
	return &CSVSink{BearPath: bearPath, BullPath: bullPath}
}

func (s *CSVSink) Write(bear, bull []model.Segment) error {
	if err := writeSegmentsCSV(s.BearPath, bear); err != nil {
		return fmt.Errorf("write bear segments: %w", err)
	}
	if err := writeSegmentsCSV(s.BullPath, bull); err != nil {
		return fmt.Errorf("write bull segments: %w", err)
	}
	log.Printf("[INFO] wrote %d bear segments to %s, %d bull segments to %s",
		len(bear), s.BearPath, len(bull), s.BullPath)
	return nil
}

func writeSegmentsCSV(path string, segments []model.Segment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"start_date", "end_date", "start_price", "end_price", "pct_change", "days"}); err != nil {
		return err
	}
	for _, seg := range segments {
		row := []string{
			seg.StartDate.Format("2006-01-02"),
			seg.EndDate.Format("2006-01-02"),
			strconv.FormatFloat(seg.StartPrice, 'f', 2, 64),
			strconv.FormatFloat(seg.EndPrice, 'f', 2, 64),
			strconv.FormatFloat(seg.PctChange, 'f', 4, 64),
			strconv.Itoa(seg.Days),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
