package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/savora-ai/savora/backend/config"
	"github.com/savora-ai/savora/backend/internal/api"
	"github.com/savora-ai/savora/backend/internal/database"
	"github.com/savora-ai/savora/backend/internal/router"
	"github.com/savora-ai/savora/backend/internal/server"
	"github.com/savora-ai/savora/backend/internal/service"
	"github.com/savora-ai/savora/backend/internal/store"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the database and run migrations
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM service: %v", err)
	}

	documentStore := store.NewGormStore(db)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	wizardService := service.NewWizardService(redisClient)
	chatService := service.NewChatService(redisClient, llmService)
	collectionService := service.NewCollectionService(documentStore)
	favoriteService := service.NewFavoriteService(documentStore)

	engine := router.SetupRouter(router.Handlers{
		Health:      api.NewHealthHandler(llmService),
		Auth:        api.NewAuthHandler(authService),
		Wizard:      api.NewWizardHandler(wizardService),
		Generate:    api.NewGenerateHandler(llmService, collectionService),
		Chat:        api.NewChatHandler(chatService),
		Collections: api.NewCollectionHandler(collectionService, favoriteService),
		Kitchen:     api.NewKitchenHandler(llmService),
		Diagnostics: api.NewDiagnosticsHandler(documentStore),
	}, authService)

	srv := server.New(engine, cfg.ServerPort)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	// Block until we receive a signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
