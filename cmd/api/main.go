package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/stockbook-backend/internal/app"
	"github.com/georgemunganga/stockbook-backend/internal/config"
	"github.com/georgemunganga/stockbook-backend/internal/modules/auth"
	"github.com/georgemunganga/stockbook-backend/internal/modules/sale"
	"github.com/georgemunganga/stockbook-backend/internal/platform/kafka"
	"github.com/georgemunganga/stockbook-backend/internal/platform/metrics"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	storage, err := app.OpenStorage(ctx, cfg.Database)
	if err != nil {
		logx.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open storage")
	}
	defer storage.Close()
	logx.Info().Str("driver", cfg.Database.Driver).Msg("storage ready")

	// ── Metrics ─────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// ── Sales history cache ─────────────────────────────────
	var cache sale.HistoryCache = sale.NopHistoryCache{}
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		cache = sale.NewRedisHistoryCache(rdb, cfg.Sales.CacheTTL)
		logx.Info().Dur("ttl", cfg.Sales.CacheTTL).Msg("sales history cache enabled")
	}

	// ── Events ──────────────────────────────────────────────
	var publisher kafka.Publisher = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewAsyncPublisher(kafka.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.SaleTopic), 1024, 10*time.Second)
		logx.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.SaleTopic).Msg("sale events enabled")
	}
	defer publisher.Close()

	router := app.NewRouter(storage, app.Options{
		TokenProvider: auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		BcryptCost:    cfg.Auth.BcryptCost,
		Cache:         cache,
		Publisher:     publisher,
		Metrics:       m,
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logx.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("stockbook API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
