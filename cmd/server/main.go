package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flor3z/game-tools/internal/config"
	"github.com/flor3z/game-tools/internal/index"
	"github.com/flor3z/game-tools/internal/refresher"
	"github.com/flor3z/game-tools/internal/riot"
	"github.com/flor3z/game-tools/internal/server"
	"github.com/flor3z/game-tools/internal/storage"
	"github.com/flor3z/game-tools/internal/wow"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting game tools API")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	// API clients
	riotClient := riot.NewClient(cfg.RiotAPIKey)
	wowClient := wow.NewClient(cfg.BlizzardClientID, cfg.BlizzardClientSecret)

	// Summoner identity index
	idx := index.New(repo, riotClient)

	// Optional background identity refresher
	var rf *refresher.Refresher
	if cfg.RefreshIntervalSeconds > 0 {
		rf = refresher.New(repo, riotClient, cfg.RefreshIntervalSeconds)
		go rf.Start(ctx)
	}

	// HTTP server
	srv := server.New(cfg.Port, idx, wowClient)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	slog.Info("Service is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Shutting down...", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	cancel()
	if rf != nil {
		rf.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	slog.Info("Service stopped")
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
