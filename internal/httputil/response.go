package httputil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SohamNaik26/finance-integration/internal/table"
)

// successResponse wraps data in the standard {"data": ...} envelope.
type successResponse struct {
	Data interface{} `json:"data"`
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// tableResponse is the JSON rendering of a formatted table.
type tableResponse struct {
	Columns []string      `json:"columns"`
	Rows    []interface{} `json:"rows"`
	Count   int           `json:"count"`
}

// JSON writes a success response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successResponse{Data: data}); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Error writes an error response with the given status code, error code, and message.
func Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error: errorBody{
			Code:    code,
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// Table writes a formatted table either as JSON (default) or as a CSV
// attachment when format is "csv".
func Table(w http.ResponseWriter, t *table.Table, format, csvName string) {
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvName))
		if err := t.WriteCSV(w); err != nil {
			slog.Error("failed to write CSV response", "error", err)
		}
		return
	}

	rows := make([]interface{}, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r
	}
	JSON(w, http.StatusOK, tableResponse{
		Columns: t.Columns,
		Rows:    rows,
		Count:   len(t.Rows),
	})
}
