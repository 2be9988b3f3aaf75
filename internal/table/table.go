// Package table turns a heterogeneous slice of flat records into a typed,
// sorted, exportable table.
package table

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/convert"
	"github.com/SohamNaik26/finance-integration/internal/models"
)

// Spec declares the per-source formatting rules: which columns are numeric,
// which are timestamps, the canonical column order for export, and the sort.
type Spec struct {
	NumericColumns []string
	TimeColumns    []string
	ColumnOrder    []string
	// Less is the sort comparator. nil leaves the input order unchanged.
	Less func(a, b models.Record) bool
}

// Table is the terminal artifact: coerced, sorted records plus the ordered
// union of all columns seen across them.
type Table struct {
	Columns []string
	Rows    []models.Record
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Format coerces declared numeric and timestamp columns, sorts the rows, and
// computes the column union. Records not supplying a column keep it absent;
// uncoercible values become nil. Empty input yields an empty table with no
// forced schema. Formatting is idempotent: re-running it on already-coerced
// rows changes nothing.
func Format(rows []models.Record, spec Spec) *Table {
	if len(rows) == 0 {
		return &Table{}
	}

	coerced := make([]models.Record, len(rows))
	for i, row := range rows {
		rec := row.Clone()
		for _, col := range spec.NumericColumns {
			if v, ok := rec[col]; ok {
				rec[col] = coerceNumeric(v)
			}
		}
		for _, col := range spec.TimeColumns {
			if v, ok := rec[col]; ok {
				rec[col] = coerceTime(v)
			}
		}
		coerced[i] = rec
	}

	if spec.Less != nil {
		sort.SliceStable(coerced, func(i, j int) bool {
			return spec.Less(coerced[i], coerced[j])
		})
	}

	return &Table{
		Columns: columnUnion(coerced, spec.ColumnOrder),
		Rows:    coerced,
	}
}

// coerceNumeric converts v to float64, or nil when it cannot be represented
// as a number.
func coerceNumeric(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return float64(1)
		}
		return float64(0)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

// coerceTime converts v to time.Time, or nil when it cannot be parsed.
func coerceTime(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case string:
		parsed, ok := convert.ParseISOTimestamp(t)
		if !ok {
			return nil
		}
		return parsed
	default:
		return nil
	}
}

// columnUnion returns the union of columns across rows: canonical columns
// first (in declared order, only those actually present), then any extra
// columns in lexical order.
func columnUnion(rows []models.Record, order []string) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}

	columns := make([]string, 0, len(present))
	canonical := make(map[string]bool, len(order))
	for _, col := range order {
		canonical[col] = true
		if present[col] {
			columns = append(columns, col)
		}
	}

	extras := make([]string, 0)
	for col := range present {
		if !canonical[col] {
			extras = append(extras, col)
		}
	}
	sort.Strings(extras)

	return append(columns, extras...)
}

// ByFloatDesc orders rows by a numeric column, highest first; rows missing
// the column sort last.
func ByFloatDesc(col string) func(a, b models.Record) bool {
	return func(a, b models.Record) bool {
		av, aok := a.Float(col)
		bv, bok := b.Float(col)
		if aok != bok {
			return aok
		}
		return av > bv
	}
}

// ByTimeDesc orders rows by a timestamp column, most recent first; rows
// missing the column sort last.
func ByTimeDesc(col string) func(a, b models.Record) bool {
	return func(a, b models.Record) bool {
		at, aok := a.Time(col)
		bt, bok := b.Time(col)
		if aok != bok {
			return aok
		}
		return at.After(bt)
	}
}
