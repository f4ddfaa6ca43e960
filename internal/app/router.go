package app

import (
	"context"
	"net/http"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/core/web"
	"github.com/georgemunganga/stockbook-backend/internal/modules/auth"
	"github.com/georgemunganga/stockbook-backend/internal/modules/guard"
	"github.com/georgemunganga/stockbook-backend/internal/modules/sale"
	"github.com/georgemunganga/stockbook-backend/internal/modules/stock"
	"github.com/georgemunganga/stockbook-backend/internal/modules/store"
	"github.com/georgemunganga/stockbook-backend/internal/platform/kafka"
	"github.com/georgemunganga/stockbook-backend/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options carry the optional collaborators of the HTTP application.
type Options struct {
	TokenProvider auth.TokenProvider
	BcryptCost    int
	Cache         sale.HistoryCache
	Publisher     kafka.Publisher
	Metrics       *metrics.Metrics
}

// NewRouter wires services over storage and mounts every endpoint.
func NewRouter(st *Storage, opts Options) http.Handler {
	storeService := store.NewService(st.Stores, opts.BcryptCost)
	authService := auth.NewService(st.Stores, opts.TokenProvider)
	stockService := stock.NewService(st.Stock, opts.Metrics)
	saleService := sale.NewService(sale.Deps{
		Repo:       st.Sales,
		Ledger:     stockService,
		Transactor: st.Transactor,
		Cache:      opts.Cache,
		Publisher:  opts.Publisher,
		Metrics:    opts.Metrics,
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(web.RequestLogger)
	router.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Get("/healthz", healthz(st))

	// ── Public ──────────────────────────────────────────────
	storeHandler := store.NewHandler(storeService)
	storeHandler.RegisterPublicRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Store scoped ────────────────────────────────────────
	router.Route("/store/{storeId}", func(r chi.Router) {
		r.Use(guard.New(opts.TokenProvider).Middleware)
		storeHandler.RegisterRoutes(r)
		stock.NewHandler(stockService).RegisterRoutes(r)
		sale.NewHandler(saleService).RegisterRoutes(r)
	})

	return router
}

func healthz(st *Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			web.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
