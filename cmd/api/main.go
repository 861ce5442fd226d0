// Command api is the Courtside basketball analytics API server.
//
// Usage:
//
//	courtside-api
//	courtside-api --host 127.0.0.1 --port 8080
//	API_PORT=8080 courtside-api

// @title Courtside Basketball Analytics API
// @version 1.0.0
// @description Players, teams, games, analytics, strategy and operational metadata for the Courtside dashboards.
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @contact.name Courtside
// @license.name MIT
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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/courtside/internal/api"
	"github.com/albapepper/courtside/internal/api/handler"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/db"
	"github.com/albapepper/courtside/internal/logging"
	"github.com/albapepper/courtside/internal/store"

	_ "github.com/albapepper/courtside/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	var host string
	var port int
	root := &cobra.Command{
		Use:           "courtside-api",
		Short:         "Courtside basketball analytics API server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if cmd.Flags().Changed("host") {
				cfg.APIHost = host
			}
			if cmd.Flags().Changed("port") {
				cfg.APIPort = port
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&host, "host", "", "Bind host (overrides API_HOST)")
	root.Flags().IntVar(&port, "port", 0, "Bind port (overrides API_PORT)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "courtside-api:", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("Configuration loaded", "environment", cfg.Environment, "log_level", cfg.LogLevel)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool.Pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("Migrations applied")
	}

	st := store.New(pool.Pool, cfg.ValidationWarningThreshold)
	h := handler.New(handler.StoresFrom(st), cfg)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting Courtside API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/index.html", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for a signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}
