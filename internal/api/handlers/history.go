package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/httputil"
	"github.com/SohamNaik26/finance-integration/internal/integration"
	"github.com/SohamNaik26/finance-integration/internal/table"
	"github.com/SohamNaik26/finance-integration/internal/validate"
)

// BalanceHistoryHandler serves GET /api/v1/evm/{address}/balance-history:
// paginated Everclear balance history for one address, formatted as a table.
// Query parameters: items_count, block_number, max_pages, format=json|csv.
func BalanceHistoryHandler(client *integration.EverclearClient, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		if err := validate.EVMAddress(address); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidAddress, err.Error())
			return
		}

		params := integration.BalanceParams{Address: address}

		if raw := r.URL.Query().Get("items_count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidParams, "items_count must be a positive integer")
				return
			}
			params.ItemsCount = n
		}

		if raw := r.URL.Query().Get("block_number"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidParams, "block_number must be an integer")
				return
			}
			params.BlockNumber = &n
		}

		maxPages := cfg.MaxPages
		if raw := r.URL.Query().Get("max_pages"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidParams, "max_pages must be a positive integer")
				return
			}
			maxPages = n
		}

		records := client.FetchBatch(r.Context(), []integration.BalanceParams{params}, maxPages)
		t := table.Format(records, integration.EverclearTableSpec)

		slog.Info("balance history served",
			"address", address,
			"rows", t.Len(),
		)

		httputil.Table(w, t, r.URL.Query().Get("format"), config.EverclearExportPrefix+".csv")
	}
}
