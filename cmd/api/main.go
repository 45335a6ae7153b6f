// Package main is the entry point for the road trip planner API server.
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
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	"github.com/kfenner/roadtrip-planner/internal/config"
	"github.com/kfenner/roadtrip-planner/internal/handler"
	"github.com/kfenner/roadtrip-planner/internal/metrics"
	"github.com/kfenner/roadtrip-planner/internal/middleware"
	"github.com/kfenner/roadtrip-planner/internal/repo"
	"github.com/kfenner/roadtrip-planner/internal/routing"
	"github.com/kfenner/roadtrip-planner/internal/service"
	"github.com/kfenner/roadtrip-planner/migrations"
	"github.com/kfenner/roadtrip-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
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

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Routing provider -------------------------------------------------
	// With an openrouteservice key configured, drive times and place search
	// go to the real service. Without one (local development) the server
	// runs on the mock provider, which answers only for registered legs.
	var provider routing.Provider
	var places routing.PlaceSearcher
	if cfg.ORSAPIKey != "" {
		ors, err := routing.NewORSClient(cfg.ORSBaseURL, cfg.ORSAPIKey)
		if err != nil {
			slog.Error("failed to create routing client", "error", err)
			os.Exit(1)
		}
		provider, places = ors, ors
	} else {
		slog.Warn("ORS_API_KEY not set, using mock routing provider")
		mock := routing.NewMockProvider(nil, nil)
		provider, places = mock, mock
	}

	// --- Metrics ----------------------------------------------------------
	collector := metrics.NewCollector()
	go collector.Serve(cfg.MetricsAddr)

	// --- Repos and services -----------------------------------------------
	trips := repo.NewTripRepo(pool)
	stops := repo.NewStopRepo(pool)
	legCache := repo.NewLegCacheRepo(pool)

	importSvc := service.NewImportService(trips, stops)
	server := handler.NewServer(handler.Deps{
		Trips:       service.NewTripService(trips),
		Stops:       service.NewStopService(trips, stops),
		Itineraries: service.NewItineraryService(trips, stops),
		DriveTimes:  service.NewDriveTimeService(trips, stops, legCache, provider, collector),
		Exports:     service.NewExportService(trips, stops),
		Importer:    importSvc,
		Shares:      service.NewShareService(importSvc),
		Places:      places,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics
	// → Recoverer → CORS → body size limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics(collector))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", spec.Handler())
	r.Mount("/", handler.NewRouter(server))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending schema migrations embedded in the binary.
// goose needs database/sql, so it gets its own short-lived connection.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path)
	}
	return nil
}
