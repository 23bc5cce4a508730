package chart

import (
	"bytes"
	"errors"
	"image/png"
	"reflect"
	"testing"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

func TestRenderBarChart(t *testing.T) {
	series := []model.SeriesPoint{
		{Label: "Houston", Value: 20000},
		{Label: "Columbus", Value: 45000},
		{Label: "Austin", Value: 60000},
	}
	var buf bytes.Buffer
	if err := RenderBarChart(&buf, series, Options{Title: "Income mean by city"}); err != nil {
		t.Fatalf("RenderBarChart: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != minWidth || img.Bounds().Dy() != height {
		t.Errorf("size = %v, want %dx%d", img.Bounds().Size(), minWidth, height)
	}
}

func TestRenderBarChartSingleBar(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBarChart(&buf, []model.SeriesPoint{{Label: "Only", Value: 5}}, Options{}); err != nil {
		t.Fatalf("RenderBarChart: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("empty output")
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBarChart(&buf, nil, Options{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written for an empty series")
	}
}

func TestTail(t *testing.T) {
	series := []model.SeriesPoint{{Label: "a", Value: 1}, {Label: "b", Value: 2}, {Label: "c", Value: 3}}
	if got := Tail(series, 2); !reflect.DeepEqual(got, series[1:]) {
		t.Errorf("Tail(2) = %v", got)
	}
	if got := Tail(series, 0); len(got) != 3 {
		t.Errorf("Tail(0) should keep everything, got %v", got)
	}
	if got := Tail(series, 10); len(got) != 3 {
		t.Errorf("Tail(10) should keep everything, got %v", got)
	}
}
