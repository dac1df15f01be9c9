package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkalev/modelvet/internal/api"
	"github.com/mkalev/modelvet/internal/auth"
	"github.com/mkalev/modelvet/internal/config"
	"github.com/mkalev/modelvet/internal/dataset"
	"github.com/mkalev/modelvet/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create PostgreSQL store: %v", err)
	}
	defer st.Close()

	reference, err := loadReferenceDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load reference dataset: %v", err)
	}

	descriptor, err := dataset.LoadDescriptor(cfg.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema descriptor: %v", err)
	}
	schema, err := descriptor.Schema(reference)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	var authMiddleware *auth.Middleware
	if !cfg.AuthDisabled {
		if cfg.AuthJWKSURL == "" {
			log.Fatal("AUTH_JWKS_URL must be set unless AUTH_DISABLED=true")
		}
		verifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		authMiddleware = auth.NewMiddleware(verifier)
	}

	handler := api.NewFeedbackHandler(st, schema)
	router := api.SetupRoutes(handler, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}

func loadReferenceDataset(cfg *config.Config) (*dataset.Dataset, error) {
	if cfg.DatasetGCSBucket != "" {
		ctx := context.Background()
		source, err := dataset.NewGCSSource(ctx, cfg.DatasetGCSBucket)
		if err != nil {
			return nil, err
		}
		defer source.Close()
		return source.ReadDataset(ctx, cfg.DatasetGCSObject)
	}

	result, err := dataset.ReadCSVFile(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	return dataset.FromCSV(result)
}
