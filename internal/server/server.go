package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/config"
	custommiddleware "github.com/Paballo854/wings-cafe/internal/middleware"
	"github.com/Paballo854/wings-cafe/internal/service"
	"github.com/Paballo854/wings-cafe/internal/store"
	"github.com/Paballo854/wings-cafe/internal/transport"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer assembles the router, middleware stack, services, and handlers
// over the given snapshot store. redisClient may be nil when rate limiting
// is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, st store.Store, redisClient *redis.Client) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if cfg.RateLimit.Enabled && redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Single-writer guard around the snapshot store
	guard := store.NewGuard(st)

	// Initialize services
	authService, err := service.NewAuthService(
		cfg.Auth.Token,
		cfg.Auth.AdminName,
		cfg.Auth.AdminEmail,
		cfg.Auth.AdminPassword,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	inventoryService := service.NewInventoryService(guard, logger)
	customerService := service.NewCustomerService(guard, logger)
	salesService := service.NewSalesService(guard, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(inventoryService, logger)
	customerHandler := transport.NewCustomerHandler(customerService, logger)
	salesHandler := transport.NewSalesHandler(salesService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(authService, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)
	customerHandler.RegisterRoutes(router, authMiddleware)
	salesHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
