package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Dashboard palette.
const (
	BarColor        = "#2cfec1"
	BackgroundColor = "#1f2630"
	GridColor       = "#5b5b5b"
)

const (
	// MaxBars bounds the image size; longer series keep their highest values.
	MaxBars = 1000

	barWidth   = 12
	barSpacing = 4
	minWidth   = 1024
	height     = 600
)

// Options tune a rendered bar chart.
type Options struct {
	Title string
	// Limit keeps only the Limit highest values; zero means MaxBars.
	Limit int
}

// Tail returns the last n points of an ascending series (its n highest values).
func Tail(series []model.SeriesPoint, n int) []model.SeriesPoint {
	if n <= 0 || n >= len(series) {
		return series
	}
	return series[len(series)-n:]
}

// RenderBarChart writes series as a PNG bar chart to w, in the order given.
func RenderBarChart(w io.Writer, series []model.SeriesPoint, opts Options) error {
	limit := opts.Limit
	if limit <= 0 || limit > MaxBars {
		limit = MaxBars
	}
	series = Tail(series, limit)
	if len(series) == 0 {
		return ErrNoData
	}

	fg := color(BarColor)
	bars := make([]gochart.Value, len(series))
	maxVal, minVal := 0.0, 0.0
	for i, p := range series {
		bars[i] = gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: fg, StrokeColor: fg, StrokeWidth: 0},
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
		if p.Value < minVal {
			minVal = p.Value
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	width := len(bars)*(barWidth+barSpacing) + 200
	if width < minWidth {
		width = minWidth
	}

	bg := color(BackgroundColor)
	bc := gochart.BarChart{
		Title:      opts.Title,
		TitleStyle: gochart.Style{FontColor: fg},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{
			FillColor: bg,
			Padding:   gochart.Box{Top: 75, Right: 50, Bottom: 100, Left: 50},
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis: gochart.Style{
			FontColor:           fg,
			StrokeColor:         color(GridColor),
			TextRotationDegrees: 90,
		},
		YAxis: gochart.YAxis{
			Style:          gochart.Style{FontColor: fg, StrokeColor: color(GridColor)},
			Range:          &gochart.ContinuousRange{Min: minVal, Max: maxVal * 1.05},
			ValueFormatter: func(v interface{}) string { return formatIncome(v) },
		},
		Bars: bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func formatIncome(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%.0f", f)
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
