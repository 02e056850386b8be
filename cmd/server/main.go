package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dukandar/khata/internal/auth"
	"github.com/dukandar/khata/internal/config"
	"github.com/dukandar/khata/internal/handler"
	"github.com/dukandar/khata/internal/service"
	"github.com/dukandar/khata/internal/storage"
	"github.com/dukandar/khata/internal/storage/postgres"
	"github.com/dukandar/khata/internal/storage/sqlite"
	"github.com/dukandar/khata/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize storage: Postgres when DATABASE_URL is set, SQLite otherwise
	var store storage.Store
	if cfg.DatabaseURL != "" {
		store, err = postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to initialize postgres storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Storage initialized", "backend", "postgres")
	} else {
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize sqlite storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	}
	defer store.Close()

	// Wire services
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)
	authSvc := service.NewAuthService(authenticator, jwtManager, store)
	catalogSvc := service.NewCatalogService(store)
	billingSvc := service.NewBillingService(store, cfg.StrictTotals)
	if cfg.StrictTotals {
		slog.Info("Strict total verification enabled")
	}

	h := handler.New(authSvc, catalogSvc, billingSvc, jwtManager)

	// Wrap with h2c for HTTP/2 without TLS
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h2c.NewHandler(h, &http2.Server{}),
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal, then drain in-flight requests
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
