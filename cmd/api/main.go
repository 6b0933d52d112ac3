package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Paballo854/wings-cafe/internal/config"
	"github.com/Paballo854/wings-cafe/internal/database"
	"github.com/Paballo854/wings-cafe/internal/logger"
	"github.com/Paballo854/wings-cafe/internal/server"
	"github.com/Paballo854/wings-cafe/internal/store"
	filestore "github.com/Paballo854/wings-cafe/internal/store/file"
	pgstore "github.com/Paballo854/wings-cafe/internal/store/postgres"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting cafe inventory API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
	)

	// Build the snapshot store for the configured driver
	var snapshotStore store.Store
	switch cfg.Store.Driver {
	case "postgres":
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to reach database", zap.Error(err))
		}

		// Run migrations
		if err := database.RunMigrations(db, "migrations", log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}

		snapshotStore = pgstore.NewStore(db)
	case "file":
		snapshotStore = filestore.NewStore(cfg.Store.Path, log)
	default:
		log.Fatal("Unknown store driver", zap.String("driver", cfg.Store.Driver))
	}

	// Connect redis only when rate limiting wants it
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to reach redis", zap.Error(err))
		}
	}

	// Create server
	srv, err := server.NewServer(cfg, log, snapshotStore, redisClient)
	if err != nil {
		log.Fatal("Failed to create server", zap.Error(err))
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
