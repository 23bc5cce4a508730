package income

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// ErrUnknownMetric is returned by ParseMetric for names it does not recognize.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects which income statistic a chart plots.
type Metric string

const (
	MetricMean   Metric = "mean"
	MetricMedian Metric = "median"
	MetricStdev  Metric = "stdev"
)

// ParseMetric accepts metric names as well as the chart dropdown values
// ("barplot", "barplot_med", "barplot_std"). Empty selects the mean.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean", "barplot":
		return MetricMean, nil
	case "median", "barplot_med":
		return MetricMedian, nil
	case "stdev", "std", "barplot_std":
		return MetricStdev, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Label is the chart title used for the metric.
func (m Metric) Label() string {
	switch m {
	case MetricMedian:
		return "Income median by city"
	case MetricStdev:
		return "Income std deviation by city"
	default:
		return "Income mean by city"
	}
}

// Value picks the metric's field from r.
func (m Metric) Value(r model.IncomeRecord) float64 {
	switch m {
	case MetricMedian:
		return r.Median
	case MetricStdev:
		return r.Stdev
	default:
		return r.Mean
	}
}

// Aggregate turns records into one (city, value) bar per record, ascending by value.
// Equal values keep their input order. Rows sharing a city name are not merged.
func Aggregate[R Record](records []R, metric Metric) []model.SeriesPoint {
	series := make([]model.SeriesPoint, len(records))
	for i, r := range records {
		rec := r.Income()
		series[i] = model.SeriesPoint{Label: rec.City, Value: metric.Value(rec)}
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Value < series[j].Value })
	return series
}
