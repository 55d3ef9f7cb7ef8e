package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visrender/internal/artifacts"
	"visrender/internal/assets"
	"visrender/internal/config"
	"visrender/internal/logger"
	"visrender/internal/server"
	"visrender/internal/storage"
)

// newApp builds the HTTP server and its storage from cfg
func newApp(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	srv, err := server.NewServer(cfg, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment); err != nil {
		logger.Fatal("Failed to configure logging", err)
	}
	log := logger.Component("main")

	log.Info("Starting chart rendering service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"version":     config.GetVersion(),
		"storage":     cfg.StorageBackend,
		"html":        cfg.HTMLRenderer,
	})

	srv, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to start", err)
	}
	defer srv.Close()

	log.Info("Artifact storage ready", logger.Fields{"location": srv.Storage.Location()})

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	if cfg.GPTVisRuntimeURL != "" {
		go func() {
			if _, err := assets.NewFetcher(srv.Storage).EnsureRuntime(bgCtx, cfg.GPTVisRuntimeURL); err != nil {
				log.Warn("Runtime script bootstrap failed", logger.Fields{"error": err.Error()})
			}
		}()
	}

	go artifacts.NewSweeper(srv.Storage, cfg.Retention, cfg.CleanupInterval).Run(bgCtx)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}
	log.Info("Server stopped")
}
