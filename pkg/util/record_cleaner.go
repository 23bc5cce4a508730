package util

import (
	"regexp"
	"strings"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

var (
	// multiSpacePattern matches multiple consecutive whitespace characters
	multiSpacePattern = regexp.MustCompile(`\s+`)
	// nonBreakingSpace shows up in a handful of county names after cp1252 decoding.
	nonBreakingSpace = "\u00a0"
)

// CleanRecord normalizes the text fields of an IncomeRecord. Numeric fields are left untouched.
func CleanRecord(r model.IncomeRecord) model.IncomeRecord {
	r.State = cleanField(r.State)
	r.StateAbbr = strings.ToUpper(cleanField(r.StateAbbr))
	r.County = cleanField(r.County)
	r.City = cleanField(r.City)
	r.Place = cleanField(r.Place)
	r.ZipCode = cleanField(r.ZipCode)
	return r
}

// NeedsCleanup reports whether any text field of r would change under CleanRecord.
func NeedsCleanup(r model.IncomeRecord) bool {
	return CleanRecord(r) != r
}

// cleanField normalizes whitespace and trims the result.
func cleanField(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, nonBreakingSpace, " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
