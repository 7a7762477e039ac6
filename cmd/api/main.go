// Package main is the entry point for the travel planner API server.
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
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/Euphoric-Coder/Travel-Insights/internal/config"
	"github.com/Euphoric-Coder/Travel-Insights/internal/countries"
	"github.com/Euphoric-Coder/Travel-Insights/internal/handler"
	"github.com/Euphoric-Coder/Travel-Insights/internal/llm"
	"github.com/Euphoric-Coder/Travel-Insights/internal/middleware"
	"github.com/Euphoric-Coder/Travel-Insights/internal/service"
	"github.com/Euphoric-Coder/Travel-Insights/internal/store"
	"github.com/Euphoric-Coder/Travel-Insights/migrations"
)

// maxRequestBody caps incoming request bodies. Generated descriptions are
// text, not uploads; 1 MiB is generous.
const maxRequestBody = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger. The JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Trips collection backend ----------------------------------------
	tripStore, cleanup, err := newTripStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize trip store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("trip store ready", "backend", cfg.StoreBackend)

	// --- Collaborators ----------------------------------------------------
	generator, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("failed to create text generation client", "error", err)
		os.Exit(1)
	}
	countryClient := countries.NewClient(cfg.CountriesURL)

	// --- Services ---------------------------------------------------------
	tripService := service.NewTripService(tripStore)
	itineraryService := service.NewItineraryService(tripStore, generator)
	askService := service.NewAskService(generator)
	exportService := service.NewExportService(tripStore)

	// --- Router -----------------------------------------------------------
	// Middleware order matters: RequestID must run before the logger so the
	// id is in context, and CORS before the body size limit so preflights
	// are never rejected for size.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	server := handler.NewServer(
		tripService, itineraryService, askService, countryClient, exportService, tripStore, logger,
	)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// No global write timeout: the watch endpoint holds a websocket open
	// indefinitely, and per-message write deadlines are set there instead.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newTripStore builds the configured collection backend. The returned
// cleanup function releases the backend's resources and is safe to call
// exactly once.
func newTripStore(ctx context.Context, cfg config.Config) (store.TripStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if err := migrateUp(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPostgresStore(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil

	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}

// migrateUp applies all pending migrations using the embedded SQL files.
// goose needs database/sql, not a pgx pool, so a short-lived connection is
// opened just for this.
func migrateUp(ctx context.Context, dsn string) error {
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
		slog.Info("database migrations applied", "count", len(results))
	}
	return nil
}
