package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drezzup/storefront/pkg/auth"
	"github.com/drezzup/storefront/pkg/config"
	"github.com/drezzup/storefront/pkg/removebg"
	"github.com/drezzup/storefront/pkg/repository"
	"github.com/drezzup/storefront/pkg/storage"
	"github.com/drezzup/storefront/server"
	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting store backend",
		zap.String("name", cfg.Server.Name),
		zap.String("address", cfg.Server.Addr()))

	// Document store
	store, err := repository.NewStore(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Session store
	sessions := repository.NewSessions(&cfg.Redis, cfg.Auth.SessionTTL)
	authManager := auth.NewManager(sessions, cfg.Auth.AdminPassword)

	// Image pipeline
	uploader, err := storage.NewUploader(&cfg.Cloudinary, store, logger)
	if err != nil {
		logger.Fatal("Failed to configure Cloudinary", zap.Error(err))
	}
	removeBG := removebg.NewClient(&cfg.RemoveBG)

	// Create server
	srv := server.NewServer(cfg, logger, store, authManager, uploader, removeBG)
	srv.SetupRoutes()

	// Start server in goroutine
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			srvErr <- err
		}
	}()

	logger.Info("Server started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-srvErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Close(ctx); err != nil {
		logger.Warn("Failed to close MongoDB connection", zap.Error(err))
	}
	if err := sessions.Close(); err != nil {
		logger.Warn("Failed to close Redis connection", zap.Error(err))
	}

	logger.Info("Server stopped")
}
