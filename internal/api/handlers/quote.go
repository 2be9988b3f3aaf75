package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/httputil"
	"github.com/SohamNaik26/finance-integration/internal/integration"
	"github.com/SohamNaik26/finance-integration/internal/table"
)

// QuoteHandler serves GET /api/v1/bridge/quote: a single cross-chain bridge
// quote, formatted as a one-row table. Query parameters: from_chain,
// to_chain, from_token, to_token (required); amount_in, slippage_bps,
// referrer, format=json|csv (optional).
func QuoteHandler(client *integration.MayanClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := integration.QuoteParams{
			FromChain:   q.Get("from_chain"),
			ToChain:     q.Get("to_chain"),
			FromToken:   q.Get("from_token"),
			ToToken:     q.Get("to_token"),
			SlippageBps: q.Get("slippage_bps"),
			Referrer:    q.Get("referrer"),
		}

		if params.FromChain == "" || params.ToChain == "" || params.FromToken == "" || params.ToToken == "" {
			httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidParams,
				"from_chain, to_chain, from_token, and to_token are required")
			return
		}

		if raw := q.Get("amount_in"); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil || amount <= 0 {
				httputil.Error(w, http.StatusBadRequest, config.ErrorInvalidParams, "amount_in must be a positive number")
				return
			}
			params.AmountIn = amount
		}

		records := client.FetchBatch(r.Context(), []integration.QuoteParams{params})
		t := table.Format(records, integration.MayanTableSpec)

		slog.Info("bridge quote served",
			"fromChain", params.FromChain,
			"toChain", params.ToChain,
			"rows", t.Len(),
		)

		httputil.Table(w, t, q.Get("format"), config.MayanExportPrefix+".csv")
	}
}
