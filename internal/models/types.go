package models

import "time"

// Source identifies one of the supported upstream data APIs.
type Source string

const (
	SourceEverclear Source = "everclear"
	SourceTronscan  Source = "tronscan"
	SourceMayan     Source = "mayan"
)

// AllSources is the ordered list of supported sources.
var AllSources = []Source{SourceEverclear, SourceTronscan, SourceMayan}

// Record is one flat row: column name → scalar value (string, float64, int64,
// bool, time.Time, or nil for null). Success and error records share the
// identifying columns ("timestamp" and the query identifier) so they can
// coexist in one table.
type Record map[string]any

// Error classification tags recorded in the "error_type" column.
const (
	ErrorTypeHTTP    = "http_error"
	ErrorTypeGeneral = "general_error"
)

// IsError reports whether the record is an error row.
func (r Record) IsError() bool {
	_, ok := r["error"]
	return ok
}

// Float returns the named column as float64. The second return is false when
// the column is absent, null, or not numeric.
func (r Record) Float(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns the named column as a string, or "" when absent or not a string.
func (r Record) String(col string) string {
	s, _ := r[col].(string)
	return s
}

// Time returns the named column as a time.Time. The second return is false
// when the column is absent, null, or not a timestamp.
func (r Record) Time(col string) (time.Time, bool) {
	t, ok := r[col].(time.Time)
	return t, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
