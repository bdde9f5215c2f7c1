/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the StockMaster ledger server. Handles
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Open the SQLite slot store
  3. Construct the ledger engine (loads saved state or seeds)
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

ENVIRONMENT:
  PORT                  HTTP server port (default: 8080)
  DB_PATH               SQLite database path (default: stockmaster.db)
                        Use ":memory:" for an ephemeral store
  CORS_ALLOWED_ORIGINS  Comma-separated frontend origins

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockmaster/stock-engine/api"
	"github.com/stockmaster/stock-engine/config"
	"github.com/stockmaster/stock-engine/ledger"
	"github.com/stockmaster/stock-engine/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to initialize database", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	engine, err := ledger.New(context.Background(), store)
	if err != nil {
		slog.Error("failed to load ledger state", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(api.NewHandler(engine), cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "app", cfg.App.Name, "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
