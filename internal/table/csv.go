package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/config"
)

// WriteCSV writes the table as CSV: a header row of the column union, then
// one row per record. Absent and null values are written as empty cells.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Rows {
		for i, col := range t.Columns {
			row[i] = formatCell(rec[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Export writes the table to <dir>/<prefix>_YYYYMMDD_HHMMSS.csv, creating the
// directory if needed, and returns the file path.
func (t *Table) Export(dir, prefix string) (string, error) {
	if dir == "" {
		dir = config.ExportDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create export directory %q: %v", config.ErrExportFailed, dir, err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405")))

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("%w: create %q: %v", config.ErrExportFailed, filename, err)
	}
	defer f.Close()

	if err := t.WriteCSV(f); err != nil {
		return "", fmt.Errorf("%w: %v", config.ErrExportFailed, err)
	}

	slog.Info("table exported",
		"file", filename,
		"rows", len(t.Rows),
		"columns", len(t.Columns),
	)

	return filename, nil
}

// formatCell renders one scalar for CSV output.
func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	case time.Time:
		return c.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", c)
	}
}
