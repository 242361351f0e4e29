package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hatch-api/config"
	"hatch-api/internal/app"
	"hatch-api/internal/database"
	"hatch-api/internal/logger"
	"hatch-api/internal/objectstore"
	"hatch-api/internal/server"

	_ "hatch-api/docs" // Import generated docs (created by swag init)

	"github.com/go-playground/validator/v10"
)

// @title           Hatch Recruiting API
// @version         1.0
// @description     Recruiting pipeline API: job postings, candidate kanban, resume intake and AI enrichment.

// @contact.name   API Support
// @contact.email  support@hatch.example.com

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Initialize Resume Storage ---
	uploader, err := objectstore.NewGCSUploader(context.Background(), cfg.Storage.Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize resume storage: %v", err)
	}
	defer uploader.Close()

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   validate,
		Logger:      appLogger,
		Uploader:    uploader,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Println("Shutting down server...")

	//Gin shutdowns on its own

	log.Println("Application gracefully stopped.")
}
