package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/infraboard/internal/config"
	"github.com/rpattn/infraboard/internal/dashboard"
	"github.com/rpattn/infraboard/internal/dataset"
	"github.com/rpattn/infraboard/internal/middleware"

	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The source workbook is read once and shared read-only across every
	// filter-driven recomputation pass.
	loader := dataset.NewLoader(cfg.DataFile).WithHeaderRows(cfg.HeaderRows)
	cache := dataset.NewCache(loader)

	result, err := cache.Get()
	if err != nil {
		log.Fatalf("Failed to load dataset %s: %v", cfg.DataFile, err)
	}
	log.Printf("Loaded %d projects from %s (%d rows repaired)", len(result.Table), cfg.DataFile, len(result.Issues))

	service := dashboard.NewService(cache)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	apiHandler := middleware.LoggingMiddleware(dashboard.NewHTTPHandler(service))

	mux := http.NewServeMux()
	mux.Handle("/api/", corsHandler.Handler(apiHandler))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting dashboard server on %s", cfg.ListenAddr)
		log.Printf("Dashboard endpoint available at http://localhost%s/api/dashboard", cfg.ListenAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
