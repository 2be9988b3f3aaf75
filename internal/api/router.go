package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/SohamNaik26/finance-integration/internal/api/handlers"
	"github.com/SohamNaik26/finance-integration/internal/api/middleware"
	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/integration"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Clients bundles the three upstream API clients served by the router.
type Clients struct {
	Everclear *integration.EverclearClient
	Tronscan  *integration.TronscanClient
	Mayan     *integration.MayanClient
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(cfg *config.Config, clients Clients) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(Version))

		r.Route("/v1", func(r chi.Router) {
			r.Get("/evm/{address}/balance-history", handlers.BalanceHistoryHandler(clients.Everclear, cfg))
			r.Get("/tron/{address}/resources", handlers.ResourcesHandler(clients.Tronscan))
			r.Get("/bridge/quote", handlers.QuoteHandler(clients.Mayan))
		})
	})

	slog.Info("router initialized",
		"routes", []string{
			"/api/health",
			"/api/v1/evm/{address}/balance-history",
			"/api/v1/tron/{address}/resources",
			"/api/v1/bridge/quote",
		},
	)

	return r
}
