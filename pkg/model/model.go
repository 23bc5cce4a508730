package model

import "time"

// IncomeRecord is one row of the household income dataset (one ZIP-code area).
type IncomeRecord struct {
	State     string  `json:"state" firestore:"state"`
	StateAbbr string  `json:"stateAbbr,omitempty" firestore:"stateAbbr,omitempty"`
	County    string  `json:"county" firestore:"county"`
	City      string  `json:"city" firestore:"city"`
	Place     string  `json:"place,omitempty" firestore:"place,omitempty"`
	ZipCode   string  `json:"zipCode,omitempty" firestore:"zipCode,omitempty"`
	Latitude  float64 `json:"lat" firestore:"lat"`
	Longitude float64 `json:"lon" firestore:"lon"`
	Mean      float64 `json:"mean" firestore:"mean"`
	Median    float64 `json:"median" firestore:"median"`
	Stdev     float64 `json:"stdev" firestore:"stdev"`
}

// Income returns the record itself; types embedding IncomeRecord inherit it.
func (r IncomeRecord) Income() IncomeRecord { return r }

// ColoredRecord is an IncomeRecord annotated with the display color of its mean income bin.
type ColoredRecord struct {
	IncomeRecord
	Color string `json:"color"`
}

// SeriesPoint is one bar of a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BinCount is the number of records that fell into one color bin.
type BinCount struct {
	Threshold float64 `json:"threshold" firestore:"threshold"`
	Color     string  `json:"color" firestore:"color"`
	Count     int     `json:"count" firestore:"count"`
}

// DatasetSummary pre-aggregates dataset-wide numbers for the dashboard header.
type DatasetSummary struct {
	LastUpdated  time.Time      `json:"lastUpdated,omitempty" firestore:"lastUpdated,omitempty"`
	TotalRecords int            `json:"totalRecords" firestore:"totalRecords"`
	TotalStates  int            `json:"totalStates" firestore:"totalStates"`
	AvgMean      float64        `json:"avgMean" firestore:"avgMean"`
	ByState      map[string]int `json:"byState,omitempty" firestore:"byState,omitempty"`
	ByBin        []BinCount     `json:"byBin,omitempty" firestore:"byBin,omitempty"`
}

// ErrorSample captures a subset of load errors without logging every bad row.
type ErrorSample struct {
	Line   int    `json:"line,omitempty" firestore:"line,omitempty"`
	Reason string `json:"reason,omitempty" firestore:"reason,omitempty"`
}

// ImportRunStats stores aggregated counters for an import job.
type ImportRunStats struct {
	Read     int `json:"read,omitempty" firestore:"read,omitempty"`
	Imported int `json:"imported,omitempty" firestore:"imported,omitempty"`
	Skipped  int `json:"skipped,omitempty" firestore:"skipped,omitempty"`
}

// ImportRun tracks one execution of the Firestore import tool.
type ImportRun struct {
	RunID       string         `json:"runId,omitempty" firestore:"runId,omitempty"`
	Source      string         `json:"source,omitempty" firestore:"source,omitempty"`
	Status      string         `json:"status,omitempty" firestore:"status,omitempty"`
	Stats       ImportRunStats `json:"stats,omitempty" firestore:"stats,omitempty"`
	StartedAt   time.Time      `json:"startedAt,omitempty" firestore:"startedAt,omitempty"`
	FinishedAt  time.Time      `json:"finishedAt,omitempty" firestore:"finishedAt,omitempty"`
	ErrorSample []ErrorSample  `json:"errorsSample,omitempty" firestore:"errorsSample,omitempty"`
}
