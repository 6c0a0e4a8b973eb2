package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"rewardsprint/internal/config"
	"rewardsprint/internal/handlers"
	"rewardsprint/internal/security"
	"rewardsprint/internal/service"
	"rewardsprint/internal/storage"
	"rewardsprint/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer backend.Close()

	log.Printf("Storage ready (driver: %s, key: %s)", backend.Name(), cfg.StorageKey)

	familyStore := store.New()
	persistence := storage.NewSync(familyStore, backend, cfg.StorageKey)

	// A failed hydrate is already logged; the store starts empty
	if err := persistence.Hydrate(ctx); err == nil && familyStore.State().HasFamily() {
		log.Println("Family state restored from storage")
	}
	stopSync := persistence.Start()
	defer stopSync()

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	familyService := service.NewFamilyService(familyStore, emailService, cfg.TrialDays)

	stopLimiter := make(chan struct{})
	defer close(stopLimiter)
	loginLimiter := security.NewRateLimiter(10, time.Minute, stopLimiter)
	loginLimiter.TrustProxy = cfg.TrustProxy

	router := handlers.NewRouter(familyService, loginLimiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := handlers.Logging(corsHandler.Handler(router))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	// Flush the latest state in case the last write failed
	if err := persistence.Persist(shutdownCtx); err != nil {
		log.Printf("Failed to persist store: %v", err)
	}
}
