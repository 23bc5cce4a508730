package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
	"github.com/incomemap/dashboard/apps/api/pkg/util"
	"golang.org/x/text/encoding/charmap"
)

// maxErrorSamples bounds how many bad rows LoadStats remembers.
const maxErrorSamples = 20

// ErrMissingColumn is returned when the header lacks a column the dashboard needs.
var ErrMissingColumn = errors.New("missing column")

// RowError describes a row whose numeric field could not be parsed.
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadStats counts what happened while reading a dataset.
type LoadStats struct {
	Read     int
	Loaded   int
	Skipped  int
	Problems []model.ErrorSample
}

func (s *LoadStats) skip(line int, reason string) {
	s.Skipped++
	if len(s.Problems) < maxErrorSamples {
		s.Problems = append(s.Problems, model.ErrorSample{Line: line, Reason: reason})
	}
}

// Options controls how bad rows are treated.
type Options struct {
	// Strict aborts on the first malformed row instead of skipping it.
	Strict bool
}

// Column names of the Kaggle household income CSV.
const (
	colState     = "State_Name"
	colStateAbbr = "State_ab"
	colCounty    = "County"
	colCity      = "City"
	colPlace     = "Place"
	colZip       = "Zip_Code"
	colLat       = "Lat"
	colLon       = "Lon"
	colMean      = "Mean"
	colMedian    = "Median"
	colStdev     = "Stdev"
)

var (
	requiredColumns = []string{colState, colCounty, colCity, colLat, colLon, colMean, colMedian, colStdev}
	optionalColumns = []string{colStateAbbr, colPlace, colZip}
)

// ParseCSV reads Windows-1252 encoded income CSV data from r.
func ParseCSV(r io.Reader, opts Options) ([]model.IncomeRecord, LoadStats, error) {
	var stats LoadStats

	reader := csv.NewReader(charmap.Windows1252.NewDecoder().Reader(r))
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var records []model.IncomeRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && !opts.Strict {
				stats.Read++
				stats.skip(parseErr.Line, parseErr.Err.Error())
				continue
			}
			return nil, stats, fmt.Errorf("read csv: %w", err)
		}
		stats.Read++
		line, _ := reader.FieldPos(0)

		rec, rowErr := parseRow(row, cols, line)
		if rowErr != nil {
			if opts.Strict {
				return nil, stats, rowErr
			}
			stats.skip(line, rowErr.Error())
			continue
		}
		records = append(records, util.CleanRecord(rec))
		stats.Loaded++
	}
	return records, stats, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		// a UTF-8 byte order mark reads as "ï»¿" through the cp1252 decoder
		name = strings.TrimPrefix(strings.TrimSpace(name), "\u00ef\u00bb\u00bf")
		cols[name] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	for _, name := range optionalColumns {
		if _, ok := cols[name]; !ok {
			cols[name] = -1
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int, line int) (model.IncomeRecord, *RowError) {
	field := func(name string) string {
		i := cols[name]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}
	number := func(name string) (float64, *RowError) {
		raw := strings.TrimSpace(field(name))
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errors.New("not a finite number")
		}
		if err != nil {
			return 0, &RowError{Line: line, Column: name, Value: raw, Err: err}
		}
		return v, nil
	}

	rec := model.IncomeRecord{
		State:     field(colState),
		StateAbbr: field(colStateAbbr),
		County:    field(colCounty),
		City:      field(colCity),
		Place:     field(colPlace),
		ZipCode:   field(colZip),
	}
	var rowErr *RowError
	if rec.Latitude, rowErr = number(colLat); rowErr != nil {
		return rec, rowErr
	}
	if rec.Longitude, rowErr = number(colLon); rowErr != nil {
		return rec, rowErr
	}
	if rec.Mean, rowErr = number(colMean); rowErr != nil {
		return rec, rowErr
	}
	if rec.Median, rowErr = number(colMedian); rowErr != nil {
		return rec, rowErr
	}
	if rec.Stdev, rowErr = number(colStdev); rowErr != nil {
		return rec, rowErr
	}
	return rec, nil
}
