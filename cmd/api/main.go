package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/salon-service/internal/adapter/postgres"
	redis_adapter "github.com/user/salon-service/internal/adapter/redis"
	"github.com/user/salon-service/internal/adapter/sqlite"
	"github.com/user/salon-service/internal/delivery/http/handler"
	"github.com/user/salon-service/internal/delivery/http/router"
	"github.com/user/salon-service/internal/repository"
	"github.com/user/salon-service/internal/usecase"
	"github.com/user/salon-service/pkg/config"
	"github.com/user/salon-service/pkg/logger"
	"github.com/user/salon-service/pkg/metrics"
	"github.com/user/salon-service/web"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Document Store ---
	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Unable to open appointment store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Use Cases ---
	booking := usecase.NewBooking(repo)

	// --- HTTP Server ---
	pages, err := web.NewPages()
	if err != nil {
		slog.Error("Unable to load page templates", "error", err)
		os.Exit(1)
	}
	httpRouter := router.New(handler.NewHandler(booking), handler.NewPageHandler(booking, pages))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort, "url", "http://localhost:"+cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}

// openStore connects the backend named by STORE_BACKEND and returns its
// repository together with a close function.
func openStore(ctx context.Context, cfg *config.Config) (repository.AppointmentRepository, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewAppointmentRepo(dbpool)
		if err := repo.EnsureSchema(ctx); err != nil {
			dbpool.Close()
			return nil, nil, err
		}
		slog.Info("PostgreSQL connection pool established")
		return repo, dbpool.Close, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		slog.Info("Redis connection established")
		return redis_adapter.NewAppointmentRepo(rdb), func() { rdb.Close() }, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("SQLite database opened", "path", cfg.SQLitePath)
		return sqlite.NewAppointmentRepo(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
