package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satyam/medicare-backend/internal/api"
	"github.com/satyam/medicare-backend/internal/config"
	"github.com/satyam/medicare-backend/internal/llm"
	"github.com/satyam/medicare-backend/internal/metrics"
	"github.com/satyam/medicare-backend/internal/repository/postgres"
	"github.com/satyam/medicare-backend/internal/service"
	"github.com/satyam/medicare-backend/internal/session"
	"github.com/satyam/medicare-backend/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Conversation sessions live for the process lifetime
	sessions := session.NewRegistry()
	collector := metrics.NewCollector(func() float64 { return float64(sessions.Len()) })

	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Initialize services
	services := service.NewServices(repos, tokens, llmClient, sessions, collector, cfg)

	// Initialize router
	router := api.NewRouter(services, collector)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // triage turns wait on the model
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
