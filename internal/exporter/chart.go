package exporter

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"MarketCycles/internal/model"
)

const (
	bearAreaColor = "rgba(214, 69, 65, 0.25)"
	bullAreaColor = "rgba(38, 166, 91, 0.20)"
)

// ChartRenderer overlays detected market regimes on the price series.
type ChartRenderer interface {
	Render(series model.PriceSeries, bear, bull []model.Segment) error
}

// HTMLChart renders a self-contained HTML line chart with shaded
// red/green regions per segment kind.
type HTMLChart struct {
	Path string
}

// NewHTMLChart creates a renderer writing to the given path.
func NewHTMLChart(path string) *HTMLChart {
	return &HTMLChart{Path: path}
}

func (c *HTMLChart) Render(series model.PriceSeries, bear, bull []model.Segment) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Market Cycles",
			Width:     "1400px",
			Height:    "650px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Bear and Bull Markets — %s", series.Symbol),
			Subtitle: "shaded red: bear, shaded green: bull",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	dates := make([]string, len(series.Points))
	values := make([]opts.LineData, len(series.Points))
	for i, p := range series.Points {
		dates[i] = p.Date.Format("2006-01-02")
		values[i] = opts.LineData{Value: p.Price}
	}

	areas := make([]opts.MarkAreaNameCoordItem, 0, len(bear)+len(bull))
	for _, seg := range bear {
		areas = append(areas, markArea(seg, bearAreaColor))
	}
	for _, seg := range bull {
		areas = append(areas, markArea(seg, bullAreaColor))
	}

	line.SetXAxis(dates).AddSeries("Close", values,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithMarkAreaNameCoordItemOpts(areas...),
	)

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Path, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	log.Printf("[INFO] wrote chart to %s", c.Path)
	return nil
}

func markArea(seg model.Segment, color string) opts.MarkAreaNameCoordItem {
	return opts.MarkAreaNameCoordItem{
		Name:        fmt.Sprintf("%s %+.1f%%", seg.Kind, seg.PctChange*100),
		Coordinate0: []interface{}{seg.StartDate.Format("2006-01-02")},
		Coordinate1: []interface{}{seg.EndDate.Format("2006-01-02")},
		ItemStyle:   &opts.ItemStyle{Color: color},
	}
}
