// Package convert holds the unit and timestamp normalizers shared by all
// integrations. Every function is failure-tolerant: malformed input yields a
// defined fallback instead of an error.
package convert

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToDisplayUnit converts a smallest-unit integer string (wei, sun, ...) to its
// display-unit value, dividing by 10^decimals. Returns 0.0 when raw is not a
// valid base-10 integer.
func ToDisplayUnit(raw string, decimals int32) float64 {
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return 0.0
	}
	return decimal.NewFromBigInt(n, -decimals).InexactFloat64()
}

// isoLayouts are tried in order when parsing explorer timestamps. The APIs
// emit RFC 3339 with a trailing Z designator; a zone-less fallback covers
// truncated values.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseISOTimestamp parses an ISO-8601 timestamp, treating a trailing "Z" as
// an explicit zero offset. ok is false on any parse failure.
func ParseISOTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseEpochMillis converts an epoch-millisecond timestamp to UTC time.
// ok is false when ms is missing (zero) or negative.
func ParseEpochMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
