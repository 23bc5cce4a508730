package util

import (
	"testing"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

func TestCleanRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  model.IncomeRecord
		want model.IncomeRecord
	}{
		{
			name: "trims surrounding whitespace",
			rec:  model.IncomeRecord{State: " Texas ", County: "Travis County ", City: " Austin", Mean: 5},
			want: model.IncomeRecord{State: "Texas", County: "Travis County", City: "Austin", Mean: 5},
		},
		{
			name: "collapses inner whitespace",
			rec:  model.IncomeRecord{State: "New   York", County: "Kings\tCounty", City: "New\nYork"},
			want: model.IncomeRecord{State: "New York", County: "Kings County", City: "New York"},
		},
		{
			name: "replaces non-breaking spaces",
			rec:  model.IncomeRecord{County: "Do\u00a0Ana\u00a0\u00a0County"},
			want: model.IncomeRecord{County: "Do Ana County"},
		},
		{
			name: "upper-cases state abbreviation",
			rec:  model.IncomeRecord{StateAbbr: " tx"},
			want: model.IncomeRecord{StateAbbr: "TX"},
		},
		{
			name: "leaves numbers alone",
			rec:  model.IncomeRecord{Latitude: 30.1, Longitude: -97.7, Mean: 1, Median: 2, Stdev: 3},
			want: model.IncomeRecord{Latitude: 30.1, Longitude: -97.7, Mean: 1, Median: 2, Stdev: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRecord(tt.rec)
			if got != tt.want {
				t.Errorf("CleanRecord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNeedsCleanup(t *testing.T) {
	if NeedsCleanup(model.IncomeRecord{State: "Texas", City: "Austin"}) {
		t.Errorf("clean record reported as needing cleanup")
	}
	if !NeedsCleanup(model.IncomeRecord{State: "Texas ", City: "Austin"}) {
		t.Errorf("trailing space not detected")
	}
}

func TestHashRecordKey(t *testing.T) {
	a := model.IncomeRecord{State: "Texas", County: "Travis County", City: "Austin", ZipCode: "78701", Latitude: 30.27, Longitude: -97.74}
	b := a
	b.State = " TEXAS "
	if HashRecordKey(a) != HashRecordKey(b) {
		t.Errorf("hash should ignore case and surrounding whitespace of text fields")
	}

	c := a
	c.ZipCode = "78702"
	if HashRecordKey(a) == HashRecordKey(c) {
		t.Errorf("different ZIP codes must hash differently")
	}

	d := a
	d.Mean = 99999
	if HashRecordKey(a) != HashRecordKey(d) {
		t.Errorf("income values must not affect the key")
	}

	if len(HashRecordKey(a)) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(HashRecordKey(a)))
	}
}
