package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ewilliams-labs/segue/internal/adapters/extractor"
	"github.com/ewilliams-labs/segue/internal/adapters/rest"
	"github.com/ewilliams-labs/segue/internal/adapters/sqlite"
	"github.com/ewilliams-labs/segue/internal/config"
	"github.com/ewilliams-labs/segue/internal/core/mix"
	"github.com/ewilliams-labs/segue/internal/core/services"
	"github.com/ewilliams-labs/segue/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// It's best practice to crash early if required config is missing.
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.ExtractorURL == "" {
		log.Fatal("FATAL: EXTRACTOR_URL environment variable is required")
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Database Adapter
	repo, err := sqlite.NewAdapter(cfg.StoragePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer repo.Close()

	// -- Analysis Service Adapter
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client *extractor.Client
	if cfg.ExtractorClientID != "" && cfg.ExtractorClientSecret != "" {
		client = extractor.NewClientCredentials(ctx, cfg.ExtractorURL, cfg.CueSensitivity,
			cfg.ExtractorClientID, cfg.ExtractorClientSecret, cfg.ExtractorTokenURL)
	} else {
		client = extractor.NewClient(nil, cfg.ExtractorURL, cfg.CueSensitivity)
	}

	// 3. Initialize Core Logic (The Driver)
	// We inject the specific adapters into the agnostic service.
	svc := services.NewOrchestrator(client, repo, mix.DefaultConfig(), cfg.BatchWorkers)

	// 4. Initialize "Driving" Adapter (The Interface)
	pool := worker.NewPool(svc, cfg.BatchWorkers, cfg.QueueSize)
	pool.Start(cfg.BatchWorkers)
	defer pool.Stop()

	handler := rest.NewHandler(svc, pool)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎧 Segue API is running on http://localhost:%d", cfg.Port)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
