// Path: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"article-browser/internal/config"
	"article-browser/internal/delivery/rest"
	"article-browser/internal/logging"
	"article-browser/internal/proxy"
	"article-browser/internal/service"
	"article-browser/internal/storage"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 2. Database Gateway. Connects lazily on the first query.
	connector, err := storage.NewConnector(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Invalid database configuration", zap.Error(err))
	}

	// 3. Initialize Components
	articleStore := storage.NewMongoArticleStorage(connector, cfg.Database.Collection, cfg.Database.CountCollection)
	articleService := service.NewService(articleStore, connector, logger)
	gateway := proxy.NewGateway(cfg.Proxy, logger)

	logger.Info("Components initialized",
		zap.String("collection", cfg.Database.Collection),
		zap.String("count_collection", cfg.Database.CountCollection),
		zap.String("proxy_endpoint", gateway.Endpoint()))

	// 4. Initialize and Start The API Server
	apiServer := rest.NewServer(cfg.Server.Port, cfg.Proxy.Timeout(), articleService, gateway, logger)
	go func() {
		logger.Info("API server starting", zap.String("port", cfg.Server.Port))
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("API server failed", zap.Error(err))
		}
	}()

	// 5. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutdown signal received. Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("Error during API server shutdown", zap.Error(err))
	}
	if err := connector.Close(shutdownCtx); err != nil {
		logger.Error("Error disconnecting from MongoDB", zap.Error(err))
	}

	logger.Info("Server shut down successfully.")
}
