package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Fantasim/solvault/internal/api/handlers"
	"github.com/Fantasim/solvault/internal/api/middleware"
	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/db"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(database *db.DB, cfg *config.Config, deriver handlers.AddressDeriver) chi.Router {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.HostCheck)
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit(cfg.APIRateLimit))

	slog.Info("router initialized",
		"middleware", []string{"requestLogging", "hostCheck", "cors", "rateLimit"},
	)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(cfg, Version))
		r.Get("/accounts", handlers.ListAccounts(database))
		r.Get("/accounts/export", handlers.ExportAccounts(database))
		r.Get("/accounts/address/{address}", handlers.LookupAccount(database))
		r.Get("/accounts/{index}", handlers.GetAccount(database))
		r.Get("/derive", handlers.DerivePreview(deriver))
	})

	return r
}
