package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hakwonmap/academy-reputation/internal/config"
	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/monitoring"
	"github.com/hakwonmap/academy-reputation/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	monitoring.SetupLogging(cfg.LogLevel)

	ctx := context.Background()
	store, err := docstore.NewGCSStore(ctx, cfg.DocstoreBucket)
	if err != nil {
		slog.Error("Failed to open document store", "bucket", cfg.DocstoreBucket, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	metrics := monitoring.NewRegistry()
	svc := server.New(store, metrics, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: svc.Router(),
	}

	go func() {
		slog.Info("Starting query service", "addr", srv.Addr, "bucket", cfg.DocstoreBucket)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
