package income

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidBinTable is returned when a bin table cannot classify values unambiguously.
var ErrInvalidBinTable = errors.New("invalid bin table")

// Bin is a half-open income interval (Threshold, next Threshold] and its display color.
type Bin struct {
	Threshold float64 `json:"threshold"`
	Color     string  `json:"color"`
}

// BinTable is an ordered set of bins with strictly increasing thresholds.
//
// A value belongs to the bin with the greatest threshold it strictly exceeds.
// A value equal to a threshold stays in the lower bin, and a value that exceeds
// no threshold belongs to the first bin.
type BinTable struct {
	thresholds []float64
	colors     []string
}

var (
	defaultThresholds = []float64{0, 25000, 50000, 100000, 150000, 200000, 250000}
	defaultColors     = []string{"#ff0000", "#00de9a", "#00cb8c", "#007c56", "#00553b", "#00412d", "#001a12"}
)

// DefaultBinTable returns the mean-income color scale shown on the dashboard map.
func DefaultBinTable() BinTable {
	t, err := NewBinTable(defaultThresholds, defaultColors)
	if err != nil {
		panic(err)
	}
	return t
}

// NewBinTable validates thresholds and colors and returns a table owning copies of both.
func NewBinTable(thresholds []float64, colors []string) (BinTable, error) {
	if len(thresholds) == 0 {
		return BinTable{}, fmt.Errorf("%w: no bins", ErrInvalidBinTable)
	}
	if len(thresholds) != len(colors) {
		return BinTable{}, fmt.Errorf("%w: %d thresholds but %d colors", ErrInvalidBinTable, len(thresholds), len(colors))
	}
	for i, c := range colors {
		if strings.TrimSpace(c) == "" {
			return BinTable{}, fmt.Errorf("%w: empty color for bin %d", ErrInvalidBinTable, i)
		}
	}
	for i := 1; i < len(thresholds); i++ {
		if !(thresholds[i] > thresholds[i-1]) {
			return BinTable{}, fmt.Errorf("%w: threshold %v at index %d does not exceed %v", ErrInvalidBinTable, thresholds[i], i, thresholds[i-1])
		}
	}
	return BinTable{
		thresholds: append([]float64(nil), thresholds...),
		colors:     append([]string(nil), colors...),
	}, nil
}

// ParseBinTable reads a table written as "threshold:color" pairs separated by commas,
// e.g. "0:#ff0000,25000:#00de9a".
func ParseBinTable(s string) (BinTable, error) {
	var thresholds []float64
	var colors []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		threshold, color, ok := strings.Cut(part, ":")
		if !ok {
			return BinTable{}, fmt.Errorf("%w: bin %q is not threshold:color", ErrInvalidBinTable, part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
		if err != nil {
			return BinTable{}, fmt.Errorf("%w: threshold %q: %v", ErrInvalidBinTable, threshold, err)
		}
		thresholds = append(thresholds, v)
		colors = append(colors, strings.TrimSpace(color))
	}
	return NewBinTable(thresholds, colors)
}

// Classify returns the color of the bin value falls into.
func (t BinTable) Classify(value float64) string {
	return Classify(value, t.thresholds, t.colors)
}

// Index returns the position of the bin value falls into.
func (t BinTable) Index(value float64) int {
	return binIndex(value, t.thresholds)
}

// Bins returns the table in ascending threshold order.
func (t BinTable) Bins() []Bin {
	bins := make([]Bin, len(t.thresholds))
	for i := range t.thresholds {
		bins[i] = Bin{Threshold: t.thresholds[i], Color: t.colors[i]}
	}
	return bins
}

// Legend returns the bins highest threshold first, the order the map legend lists them.
func (t BinTable) Legend() []Bin {
	bins := t.Bins()
	for i, j := 0, len(bins)-1; i < j; i, j = i+1, j-1 {
		bins[i], bins[j] = bins[j], bins[i]
	}
	return bins
}

// Len returns the number of bins.
func (t BinTable) Len() int { return len(t.thresholds) }

// Classify maps value to colors[i] for the largest i with value > thresholds[i],
// or to colors[0] when no threshold is exceeded.
//
// thresholds must be strictly increasing and parallel to colors; use NewBinTable
// to check a configuration once instead of on every call.
func Classify(value float64, thresholds []float64, colors []string) string {
	return colors[binIndex(value, thresholds)]
}

func binIndex(value float64, thresholds []float64) int {
	// first index whose threshold is not exceeded by value
	i := sort.Search(len(thresholds), func(i int) bool { return !(value > thresholds[i]) })
	if i == 0 {
		return 0
	}
	return i - 1
}
