package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/mikey/llm-scam-honeypot/internal/di"
	"github.com/mikey/llm-scam-honeypot/internal/ports"
	"go.uber.org/zap"
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
	endpoint ports.MessageEndpoint,
	generator core.ReplyGenerator,
	archive core.ReportArchive,
) error {
	defer logger.Sync()

	// Start the endpoint
	if err := endpoint.Start(); err != nil {
		logger.Fatal("Failed to start endpoint", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the endpoint
	if err := endpoint.Stop(); err != nil {
		logger.Error("Failed to stop endpoint", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := generator.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close reply generator", zap.Error(err))
		}
	}

	// Stop the archive if needed
	if stopper, ok := archive.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
