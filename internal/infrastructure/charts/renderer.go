// Package charts renders range-query aggregates as base64-encoded PNG
// images using go-chart.
package charts

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
)

// Compile-time check that Renderer implements report.ChartRenderer
var _ report.ChartRenderer = (*Renderer)(nil)

// Config holds chart dimensions.
type Config struct {
	LineWidth  int
	LineHeight int
	PieSize    int
}

// DefaultConfig mirrors the 10x5 and 6x6 inch figures of the web page at 100 DPI.
func DefaultConfig() Config {
	return Config{
		LineWidth:  1000,
		LineHeight: 500,
		PieSize:    600,
	}
}

// Renderer draws charts with go-chart.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with the given config.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{config: cfg}
}

// LineChart draws the daily transaction counts.
func (r *Renderer) LineChart(ctx context.Context, daily []aggregator.DailyCount) (string, error) {
	if len(daily) == 0 {
		return "", fmt.Errorf("line chart needs at least one day")
	}

	xs := make([]time.Time, len(daily))
	ys := make([]float64, len(daily))
	maxCount := 0
	for i, dc := range daily {
		xs[i] = dc.Date
		ys[i] = float64(dc.Count)
		if dc.Count > maxCount {
			maxCount = dc.Count
		}
	}

	graph := chart.Chart{
		Title:  "Daily Transaction Count",
		Width:  r.config.LineWidth,
		Height: r.config.LineHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Number of Transactions",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "transactions",
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	// go-chart rejects a zero-width x range, so a single day is padded.
	if len(daily) == 1 {
		x := chart.TimeToFloat64(daily[0].Date)
		half := float64(12 * time.Hour)
		graph.XAxis.Range = &chart.ContinuousRange{Min: x - half, Max: x + half}
	}

	return encode(ctx, func(buf *bytes.Buffer) error {
		return graph.Render(chart.PNG, buf)
	})
}

// PieChart draws the safe versus fraud split.
func (r *Renderer) PieChart(ctx context.Context, safe, fraud int) (string, error) {
	if safe+fraud <= 0 {
		return "", fmt.Errorf("pie chart needs at least one transaction")
	}

	total := float64(safe + fraud)
	pie := chart.PieChart{
		Title:  "Transaction Safety Distribution",
		Width:  r.config.PieSize,
		Height: r.config.PieSize,
		Values: []chart.Value{
			{Value: float64(safe), Label: fmt.Sprintf("Safe %.1f%%", float64(safe)/total*100)},
			{Value: float64(fraud), Label: fmt.Sprintf("Fraud %.1f%%", float64(fraud)/total*100)},
		},
	}

	return encode(ctx, func(buf *bytes.Buffer) error {
		return pie.Render(chart.PNG, buf)
	})
}

func encode(ctx context.Context, render func(*bytes.Buffer) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex("e0e0e0"),
		StrokeWidth: 1,
	}
}
