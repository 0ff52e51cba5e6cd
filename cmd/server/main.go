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

	"doc-ingest/internal/config"
	"doc-ingest/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	cfg := container.GetConfig()

	// Handlers
	uploadHandler := handler.NewUploadHandler(
		container.UploadService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)
	healthHandler := handler.NewHealthHandler(container.HealthService)
	requestMiddleware := handler.NewRequestMiddleware(container.Logger)

	// Router
	router := handler.NewRouter(
		uploadHandler,
		healthHandler,
		cfg.GetAllowedOrigins(),
		requestMiddleware.Middleware,
	)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"upload_dir", cfg.GetUploadDir(),
			"max_file_size", cfg.GetMaxFileSize(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		container.Logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("Server stopped with error", err)
		os.Exit(1)
	}

	container.Logger.Info("Server exited")
}
