package convert

import (
	"testing"
	"time"
)

func TestToDisplayUnit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int32
		want     float64
	}{
		{"two ether", "2000000000000000000", 18, 2.0},
		{"one ether", "1000000000000000000", 18, 1.0},
		{"half ether", "500000000000000000", 18, 0.5},
		{"negative delta", "-1000000000000000000", 18, -1.0},
		{"one trx", "1000000", 6, 1.0},
		{"sun fraction", "1500000", 6, 1.5},
		{"zero", "0", 18, 0.0},
		{"whitespace", " 1000000 ", 6, 1.0},
		{"empty string", "", 18, 0.0},
		{"non-numeric", "abc", 18, 0.0},
		{"decimal point rejected", "1.5", 18, 0.0},
		{"hex rejected", "0x10", 18, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDisplayUnit(tt.raw, tt.decimals)
			if got != tt.want {
				t.Errorf("ToDisplayUnit(%q, %d) = %v, want %v", tt.raw, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestToDisplayUnit_LargeValue(t *testing.T) {
	// Larger than an int64: must still scale exactly.
	got := ToDisplayUnit("123456789000000000000000000", 18)
	if got != 123456789.0 {
		t.Errorf("ToDisplayUnit() = %v, want 123456789.0", got)
	}
}

func TestParseISOTimestamp(t *testing.T) {
	got, ok := ParseISOTimestamp("2024-03-01T12:30:45Z")
	if !ok {
		t.Fatal("ParseISOTimestamp() ok = false, want true")
	}
	want := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseISOTimestamp() = %v, want %v", got, want)
	}
}

func TestParseISOTimestamp_Fractional(t *testing.T) {
	got, ok := ParseISOTimestamp("2024-03-01T12:30:45.123456Z")
	if !ok {
		t.Fatal("ParseISOTimestamp() ok = false, want true")
	}
	if got.Nanosecond() != 123456000 {
		t.Errorf("ParseISOTimestamp() nanoseconds = %d, want 123456000", got.Nanosecond())
	}
}

func TestParseISOTimestamp_Invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2024-13-45T99:99:99Z", "1700000000"} {
		if _, ok := ParseISOTimestamp(s); ok {
			t.Errorf("ParseISOTimestamp(%q) ok = true, want false", s)
		}
	}
}

func TestParseEpochMillis(t *testing.T) {
	got, ok := ParseEpochMillis(1_700_000_000_000)
	if !ok {
		t.Fatal("ParseEpochMillis() ok = false, want true")
	}
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseEpochMillis() = %v, want %v", got, want)
	}
}

func TestParseEpochMillis_Invalid(t *testing.T) {
	for _, ms := range []int64{0, -1, -1_700_000_000_000} {
		if _, ok := ParseEpochMillis(ms); ok {
			t.Errorf("ParseEpochMillis(%d) ok = true, want false", ms)
		}
	}
}
