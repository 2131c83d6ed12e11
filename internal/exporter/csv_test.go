package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
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

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestCSVSink_WritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(filepath.Join(dir, "bear.csv"), filepath.Join(dir, "bull.csv"))

	bear := []model.Segment{
		model.NewSegment(
			model.PricePoint{Date: day("2020-02-01"), Price: 130},
			model.PricePoint{Date: day("2020-03-01"), Price: 90},
		),
	}
	bull := []model.Segment{
		model.NewSegment(
			model.PricePoint{Date: day("2020-01-01"), Price: 100},
			model.PricePoint{Date: day("2020-02-01"), Price: 130},
		),
		model.NewSegment(
			model.PricePoint{Date: day("2020-03-01"), Price: 90},
			model.PricePoint{Date: day("2020-04-01"), Price: 140},
		),
	}

	if err := sink.Write(bear, bull); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bearRows := readAll(t, sink.BearPath)
	if len(bearRows) != 2 {
		t.Fatalf("bear file: expected header + 1 row, got %d rows", len(bearRows))
	}
	wantHeader := []string{"start_date", "end_date", "start_price", "end_price", "pct_change", "days"}
	for i, col := range wantHeader {
		if bearRows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, bearRows[0][i], col)
		}
	}
	row := bearRows[1]
	if row[0] != "2020-02-01" || row[1] != "2020-03-01" {
		t.Errorf("bear row dates = %q..%q", row[0], row[1])
	}
	if row[2] != "130.00" || row[3] != "90.00" {
		t.Errorf("bear row prices = %q..%q", row[2], row[3])
	}
	if row[4] != "-0.3077" {
		t.Errorf("bear row pct = %q, want -0.3077", row[4])
	}
	if row[5] != "29" {
		t.Errorf("bear row days = %q, want 29", row[5])
	}

	bullRows := readAll(t, sink.BullPath)
	if len(bullRows) != 3 {
		t.Fatalf("bull file: expected header + 2 rows, got %d rows", len(bullRows))
	}
}

func TestCSVSink_EmptySegmentsStillWriteHeader(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(filepath.Join(dir, "bear.csv"), filepath.Join(dir, "bull.csv"))

	if err := sink.Write(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows := readAll(t, sink.BearPath); len(rows) != 1 {
		t.Errorf("bear file should contain only the header, got %d rows", len(rows))
	}
}
