package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vivekshiftai/integration-of-firewall/internal/api"
	"github.com/vivekshiftai/integration-of-firewall/internal/config"
	"github.com/vivekshiftai/integration-of-firewall/internal/fortigate"
	"github.com/vivekshiftai/integration-of-firewall/internal/logging"
	"github.com/vivekshiftai/integration-of-firewall/internal/sample"
	"github.com/vivekshiftai/integration-of-firewall/internal/service"
	"github.com/vivekshiftai/integration-of-firewall/internal/storage/clickhouse"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logging.Setup(cfg.Log.Level)

	// Initialize storage. The connection is lazy and the schema is set up
	// on the first persisted batch, so a down database does not block
	// startup.
	store := clickhouse.New(cfg.ClickHouse)
	defer store.Close()

	// Initialize the FortiGate client when credentials are configured
	var client fortigate.PolicyClient
	if cfg.FortiGate.IsConfigured() {
		client = fortigate.New(cfg.FortiGate)
		slog.Info("fortigate client configured", "host", cfg.FortiGate.IPAddress)
	} else {
		slog.Info("no fortigate credentials, runs will use sample data",
			"sample_dir", cfg.Sample.Dir)
	}

	loader := sample.NewLoader(cfg.Sample.Dir, cfg.Sample.File)

	svc := service.New(client, store, loader, service.Options{
		ForceSample: cfg.FortiGate.UseSampleData,
		OutputFile:  cfg.Export.OutputFile,
	})

	// Create router
	router := api.NewRouter(svc, cfg.Export.SaveToFile)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("starting fortigate policy fetcher",
		"addr", cfg.Server.Addr(),
		"database", cfg.ClickHouse.Database)

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("server stopped")
}
