package income

import (
	"sort"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// Dataset is the read-only view of the loaded income records. It is built once
// at startup and shared by all requests without locking; nothing mutates it after
// NewDataset returns.
type Dataset struct {
	table    BinTable
	records  []model.ColoredRecord
	states   []string
	counties []string
	summary  model.DatasetSummary
}

// NewDataset colors every record with table and indexes states and counties.
func NewDataset(records []model.IncomeRecord, table BinTable) *Dataset {
	colored := make([]model.ColoredRecord, len(records))
	for i, r := range records {
		colored[i] = model.ColoredRecord{IncomeRecord: r, Color: table.Classify(r.Mean)}
	}
	return &Dataset{
		table:    table,
		records:  colored,
		states:   distinct(records, func(r model.IncomeRecord) string { return r.State }),
		counties: distinct(records, func(r model.IncomeRecord) string { return r.County }),
		summary:  Summarize(records, table),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Table returns the bin table the records were colored with.
func (d *Dataset) Table() BinTable { return d.table }

// States returns the distinct state names, sorted.
func (d *Dataset) States() []string { return append([]string(nil), d.states...) }

// Counties returns the distinct county names, sorted.
func (d *Dataset) Counties() []string { return append([]string(nil), d.counties...) }

// Records returns the colored records of state, or all of them when state is nil.
// Callers must not modify the returned slice.
func (d *Dataset) Records(state *string) []model.ColoredRecord {
	return FilterByState(d.records, state)
}

// Series returns the bar chart series of metric for state.
func (d *Dataset) Series(state *string, metric Metric) []model.SeriesPoint {
	return Aggregate(d.Records(state), metric)
}

// Summary returns the dataset-wide counters computed at load time.
func (d *Dataset) Summary() model.DatasetSummary { return d.summary }

func distinct(records []model.IncomeRecord, key func(model.IncomeRecord) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Summarize reduces records into dashboard stats.
func Summarize(records []model.IncomeRecord, table BinTable) model.DatasetSummary {
	byState := make(map[string]int)
	byBin := make([]model.BinCount, table.Len())
	for i, b := range table.Bins() {
		byBin[i] = model.BinCount{Threshold: b.Threshold, Color: b.Color}
	}

	var sum float64
	for _, r := range records {
		byState[r.State]++
		byBin[table.Index(r.Mean)].Count++
		sum += r.Mean
	}

	var avg float64
	if len(records) > 0 {
		avg = sum / float64(len(records))
	}

	return model.DatasetSummary{
		TotalRecords: len(records),
		TotalStates:  len(byState),
		AvgMean:      avg,
		ByState:      byState,
		ByBin:        byBin,
	}
}
