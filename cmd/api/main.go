package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stuartshay/otel-data-api/internal/config"
	"github.com/stuartshay/otel-data-api/internal/server"
	"github.com/stuartshay/otel-data-api/internal/store"
)

// @title OwnTracks Data API
// @version 1.0
// @description Read-mostly REST API over OwnTracks location pings, Garmin activities, and PostGIS spatial queries

// @contact.name API Support
// @contact.url https://github.com/stuartshay/otel-data-api/issues

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	log.Println("[API] Starting OwnTracks Data API...")

	// Load configuration
	cfg := config.Load()

	// Run schema migrations before opening the pool
	if cfg.MigrateOnStart {
		if err := store.Migrate(cfg); err != nil {
			log.Fatalf("[API] Failed to migrate database: %v", err)
		}
		log.Println("[API] Database migrated")
	}

	// Connect to database
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("[API] Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("[API] Connected to database")

	// Connect to Redis when rate limiting is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("[API] Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("[API] Failed to connect to Redis: %v", err)
		}
		cancel()
		defer redisClient.Close()
		log.Println("[API] Connected to Redis")
	}

	// Create and setup server
	srv := server.NewServer(cfg, db, redisClient)
	srv.Setup()

	// Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		if err := srv.Run(addr); err != nil {
			log.Fatalf("[API] Failed to start server: %v", err)
		}
	}()

	log.Printf("[API] Server ready on %s", addr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("[API] Shutting down...")
	log.Println("[API] Server stopped")
}
