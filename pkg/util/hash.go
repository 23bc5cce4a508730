package util

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// HashRecordKey creates an MD5 hash identifying a dataset row, used as its document ID.
// The source has no stable primary key, so location and ZIP code stand in for one.
func HashRecordKey(r model.IncomeRecord) string {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimSpace(strings.ToLower(r.State)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(strings.ToLower(r.County)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(strings.ToLower(r.City)))
	builder.WriteString("|")
	builder.WriteString(strings.TrimSpace(r.ZipCode))
	builder.WriteString("|")
	builder.WriteString(strconv.FormatFloat(r.Latitude, 'f', 6, 64))
	builder.WriteString("|")
	builder.WriteString(strconv.FormatFloat(r.Longitude, 'f', 6, 64))
	return hashString(builder.String())
}

// HashString returns the MD5 hash of an arbitrary string.
func HashString(input string) string {
	return hashString(strings.TrimSpace(strings.ToLower(input)))
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
