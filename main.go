package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/arnavk09/dream-serve/config"
	"github.com/arnavk09/dream-serve/database"
	"github.com/arnavk09/dream-serve/generation"
	handler "github.com/arnavk09/dream-serve/handlers"
	"github.com/arnavk09/dream-serve/models"
	"github.com/arnavk09/dream-serve/router"
	"github.com/arnavk09/dream-serve/service"
	"github.com/arnavk09/dream-serve/store"
	"github.com/arnavk09/dream-serve/uploader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.MigrateModels(&models.Post{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()

	up, err := uploader.New(ctx, cfg.StorageBucket, cfg.StorageFolder)
	if err != nil {
		log.Fatalf("Failed to create storage uploader: %v", err)
	}

	genClient := generation.NewClient(cfg.GenerationAPIKey, cfg.GenerationEndpoint, nil)

	var enhancer *generation.Enhancer
	if cfg.PromptEnhancer && cfg.GeminiAPIKey != "" {
		enhancer, err = generation.NewEnhancer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Prompt enhancer disabled: %v", err)
		}
	}

	pipeline := service.NewPipeline(up, store.NewPostStore(db))

	app := fiber.New()
	app.Use(cors.New())

	router.SetupRoutes(app, handler.NewPostHandler(pipeline), handler.NewGenerateHandler(genClient, enhancer))

	// close the database connection
	defer func() {
		if err := database.CloseDB(); err != nil {
			fmt.Printf("Error closing the database connection %v", err)
			log.Fatal(err)
		}
	}()

	fmt.Println("Server is listening at the port " + cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
