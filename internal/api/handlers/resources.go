package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/httputil"
	"github.com/SohamNaik26/finance-integration/internal/integration"
	"github.com/SohamNaik26/finance-integration/internal/table"
	"github.com/SohamNaik26/finance-integration/internal/validate"
)

// ResourcesHandler serves GET /api/v1/tron/{address}/resources: the full
// offset-paginated Tronscan resource set for one address, formatted as a
// table. Query parameters: format=json|csv.
func ResourcesHandler(client *integration.TronscanClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := chi.URLParam(r, "address")
		if err := validate.TronAddress(address); err != nil {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidAddress, err.Error())
			return
		}

		records := client.FetchBatch(r.Context(), []string{address})
		t := table.Format(records, integration.TronscanTableSpec)

		slog.Info("tron resources served",
			"address", address,
			"rows", t.Len(),
		)

		httputil.Table(w, t, r.URL.Query().Get("format"), config.TronscanExportPrefix+".csv")
	}
}
