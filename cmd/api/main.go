// Package main is the entry point for the TripCanvas API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/tripcanvas/backend/internal/config"
	"github.com/tripcanvas/backend/internal/handler"
	"github.com/tripcanvas/backend/internal/live"
	"github.com/tripcanvas/backend/internal/middleware"
	"github.com/tripcanvas/backend/internal/rates"
	"github.com/tripcanvas/backend/internal/repo"
	"github.com/tripcanvas/backend/internal/service"
	"github.com/tripcanvas/backend/migrations"
)

// maxBodyBytes caps request bodies. The largest legitimate payload is a trip
// update with a cover image URL; 1 MiB leaves generous headroom.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose needs a database/sql handle; open one just for the migration run.
	if err := runMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Change feed ------------------------------------------------------
	// The listener holds one pool connection on LISTEN and republishes
	// trigger notifications to the broker, which fans out to websockets.
	listenCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()

	broker := live.NewBroker()
	listener := live.NewListener(pool, broker, logger)
	go func() {
		if err := listener.Run(listenCtx); err != nil && !live.IsShutdown(err) {
			slog.Error("change feed listener stopped", "error", err)
		}
	}()

	// --- Repositories and services ---------------------------------------
	trips := repo.NewTripRepo(pool)
	days := repo.NewDayRepo(pool)
	stays := repo.NewStayRepo(pool)
	activities := repo.NewActivityRepo(pool)
	transport := repo.NewTransportationRepo(pool)
	expenses := repo.NewExpenseRepo(pool)
	reservations := repo.NewReservationRepo(pool)
	rateStore := repo.NewRateRepo(pool)

	server := handler.NewServer(
		service.NewTripService(trips, days),
		service.NewDayService(trips, days, activities),
		service.NewStayService(trips, stays, days),
		service.NewTransportationService(trips, transport),
		service.NewExpenseService(trips, expenses),
		service.NewReservationService(days, reservations),
		service.NewTimelineService(days, stays, transport),
		service.NewBudgetService(expenses, activities, rateStore, logger),
		broker,
	)

	// --- Exchange rate refresher ------------------------------------------
	// The refresher is the only writer of exchange_rates; without it the
	// budget endpoint converts everything 1:1. RATES_URL="" disables it.
	if cfg.RatesURL != "" {
		refresher := rates.NewRefresher(cfg.RatesURL, cfg.DisplayCurrency, rateStore, logger)
		if err := refresher.Start(cfg.RatesSchedule); err != nil {
			slog.Error("failed to start rate refresher", "error", err)
			os.Exit(1)
		}
		defer refresher.Stop()
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// No WriteTimeout: the /events websocket holds connections open and
	// manages its own per-message deadlines.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopListener()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending goose migrations from the embedded FS.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
