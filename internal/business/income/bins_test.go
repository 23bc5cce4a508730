package income

import (
	"errors"
	"math"
	"testing"
)

var (
	exampleThresholds = []float64{0, 25000, 50000}
	exampleColors     = []string{"red", "green", "blue"}
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{10000, "red"},
		{30000, "green"},
		{50000, "green"}, // equal to a threshold stays in the lower bin
		{60000, "blue"},
		{0, "red"},
		{-5, "red"},
		{25000, "red"},
		{25000.01, "green"},
		{math.Inf(1), "blue"},
		{math.Inf(-1), "red"},
		{math.NaN(), "red"},
	}
	for _, tt := range tests {
		if got := Classify(tt.value, exampleThresholds, exampleColors); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	table := DefaultBinTable()
	bins := table.Bins()
	const eps = 0.5
	for i, b := range bins {
		at := table.Classify(b.Threshold)
		below := table.Classify(b.Threshold - eps)
		if at != below {
			t.Errorf("threshold %v: Classify(t) = %q, Classify(t-eps) = %q, want equal", b.Threshold, at, below)
		}
		above := table.Classify(b.Threshold + eps)
		if above != b.Color {
			t.Errorf("threshold %v: Classify(t+eps) = %q, want %q", b.Threshold, above, b.Color)
		}
		if i > 0 && at != bins[i-1].Color {
			t.Errorf("threshold %v: Classify(t) = %q, want lower bin %q", b.Threshold, at, bins[i-1].Color)
		}
	}
}

func TestClassifyReturnsTableColor(t *testing.T) {
	table := DefaultBinTable()
	colors := make(map[string]bool)
	for _, b := range table.Bins() {
		colors[b.Color] = true
	}
	for v := -100000.0; v <= 400000; v += 3333.3 {
		if c := table.Classify(v); !colors[c] {
			t.Fatalf("Classify(%v) = %q, not in table", v, c)
		}
	}
}

func TestDefaultBinTable(t *testing.T) {
	table := DefaultBinTable()
	if table.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", table.Len())
	}
	tests := []struct {
		mean float64
		want string
	}{
		{20000, "#ff0000"},
		{25000, "#ff0000"},
		{25001, "#00de9a"},
		{75000, "#00cb8c"},
		{120000, "#007c56"},
		{175000, "#00553b"},
		{225000, "#00412d"},
		{250000, "#00412d"},
		{300000, "#001a12"},
	}
	for _, tt := range tests {
		if got := table.Classify(tt.mean); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.mean, got, tt.want)
		}
	}
}

func TestLegendOrder(t *testing.T) {
	legend := DefaultBinTable().Legend()
	if legend[0].Threshold != 250000 || legend[len(legend)-1].Threshold != 0 {
		t.Fatalf("legend not highest first: %+v", legend)
	}
	if legend[0].Color != "#001a12" {
		t.Errorf("legend[0].Color = %q, want #001a12", legend[0].Color)
	}
}

func TestNewBinTableErrors(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []float64
		colors     []string
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, 10}, []string{"red"}},
		{"not increasing", []float64{0, 10, 10}, []string{"a", "b", "c"}},
		{"decreasing", []float64{10, 0}, []string{"a", "b"}},
		{"empty color", []float64{0, 10}, []string{"a", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBinTable(tt.thresholds, tt.colors)
			if !errors.Is(err, ErrInvalidBinTable) {
				t.Errorf("NewBinTable() error = %v, want ErrInvalidBinTable", err)
			}
		})
	}
}

func TestNewBinTableCopiesInput(t *testing.T) {
	thresholds := []float64{0, 10}
	colors := []string{"a", "b"}
	table, err := NewBinTable(thresholds, colors)
	if err != nil {
		t.Fatalf("NewBinTable: %v", err)
	}
	colors[1] = "z"
	thresholds[1] = 1000
	if got := table.Classify(20); got != "b" {
		t.Errorf("table changed with caller's slices: Classify(20) = %q", got)
	}
}

func TestParseBinTable(t *testing.T) {
	table, err := ParseBinTable(" 0:#ff0000, 25000:#00de9a ,50000:#00cb8c,")
	if err != nil {
		t.Fatalf("ParseBinTable: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if got := table.Classify(30000); got != "#00de9a" {
		t.Errorf("Classify(30000) = %q, want #00de9a", got)
	}

	for _, bad := range []string{"", "0", "x:#fff", "10:#a,5:#b"} {
		if _, err := ParseBinTable(bad); !errors.Is(err, ErrInvalidBinTable) {
			t.Errorf("ParseBinTable(%q) error = %v, want ErrInvalidBinTable", bad, err)
		}
	}
}
