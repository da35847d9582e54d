package router

import (
	"net/http"

	"cafe-pos/internal/handler"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Menu        *handler.MenuHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	Health      *handler.HealthHandler
}

// Options configures the router's cross-cutting concerns.
type Options struct {
	Verifier      middleware.TokenVerifier
	Metrics       *metrics.Metrics
	AllowedOrigin string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.BearerAuth(opts.Verifier, logger)
	protected := func(fn http.HandlerFunc) http.Handler {
		return authed(fn)
	}

	// Health and metrics (no authentication required)
	mux.HandleFunc("GET /health", h.Health.Check)
	mux.HandleFunc("GET /api/health", h.Health.Check)
	mux.Handle("GET /metrics", opts.Metrics.Handler())

	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.HandleFunc("GET /api/menu", h.Menu.List)
	mux.HandleFunc("GET /api/menu/{id}", h.Menu.GetByID)
	mux.Handle("POST /api/menu", protected(h.Menu.Create))
	mux.Handle("PUT /api/menu/{id}", protected(h.Menu.Update))
	mux.Handle("DELETE /api/menu/{id}", protected(h.Menu.Delete))

	// Sales are recorded from the till without a login.
	mux.HandleFunc("POST /api/transactions", h.Transaction.Create)
	mux.Handle("GET /api/transactions", protected(h.Transaction.List))
	mux.Handle("GET /api/transactions/{id}", protected(h.Transaction.GetByID))

	mux.Handle("GET /api/reports/omset", protected(h.Report.Omset))
	mux.Handle("GET /api/reports/sales-chart", protected(h.Report.SalesChart))
	mux.Handle("GET /api/reports/top-products", protected(h.Report.TopProducts))
	mux.Handle("GET /api/reports/low-stock", protected(h.Report.LowStock))

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(opts.AllowedOrigin)(handler)
	handler = middleware.Logging(logger, opts.Metrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
