package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/tabscope/internal/config"
	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/logging"
	"github.com/JonMunkholm/tabscope/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	service := core.NewService(cfg)

	labels := chartLabels()
	slog.Info("charts registered", "count", len(labels), "labels", labels)

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartSessionSweeper(jobCtx, core.SweepConfig{
		TTL:      cfg.Session.TTL,
		Interval: cfg.Session.SweepInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active uploads to complete (with timeout)
		if active := service.Status().UploadsActive; active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := service.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			} else {
				slog.Info("all uploads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// chartLabels lists the display labels of every registered chart.
func chartLabels() []string {
	charts := core.Charts()
	labels := make([]string, 0, len(charts))
	for _, c := range charts {
		labels = append(labels, c.Info.Label)
	}
	return labels
}
