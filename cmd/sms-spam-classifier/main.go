package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/adapters/httpapi"
	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/di"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	store *artifact.Store,
	server *httpapi.Server,
	cacheRepo core.CacheRepository,
) error {
	defer logger.Sync()

	// Resolve the model artifact before taking traffic. A failed resolution
	// leaves the service up but unhealthy; /health reports the store state.
	mc, err := cfg.GetModel()
	if err != nil {
		logger.Fatal("Invalid model configuration", zap.Error(err))
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), mc.FetchTimeout)
	if _, err := store.Resolve(ctx, mc.Version); err != nil {
		logger.Error("Failed to resolve model artifact at startup",
			zap.String("version", mc.Version),
			zap.Error(err))
	}
	cancel()

	// Start the HTTP server
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(err))
	}

	// Stop the cache if needed
	if stopper, ok := cacheRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
