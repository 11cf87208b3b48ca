package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	_ "github.com/redmonkez12/portfolio-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/portfolio-api/internal/auth"
	"github.com/redmonkez12/portfolio-api/internal/config"
	"github.com/redmonkez12/portfolio-api/internal/database"
	httpServer "github.com/redmonkez12/portfolio-api/internal/http"
	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/media"
	"github.com/redmonkez12/portfolio-api/internal/portfolio"
	"github.com/redmonkez12/portfolio-api/internal/project"
	"github.com/redmonkez12/portfolio-api/internal/storage"
	"github.com/redmonkez12/portfolio-api/internal/user"
)

// @title           Portfolio API
// @version         1.0
// @description     REST API for developer portfolios with authentication, projects, and media uploads.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize blob store
	blobStore, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)

	// Initialize PASETO service
	pasetoService, err := auth.NewPasetoService(cfg.Auth.PasetoKey)
	if err != nil {
		return fmt.Errorf("failed to initialize PASETO service: %w", err)
	}

	// Initialize portfolio projection with its cache
	portfolioCache := portfolio.NewRedisCache(redisClient, cfg.Redis.PortfolioTTL)
	portfolioService := portfolio.NewService(userRepo, projectRepo, portfolioCache, logger)

	// Initialize services
	authService := auth.NewService(userRepo, pasetoService, logger, cfg.Auth.TokenDuration)
	projectService := project.NewService(projectRepo, logger)
	mediaPipeline := media.NewPipeline(blobStore, logger)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService, portfolioService, logger)
	authMiddleware := auth.NewMiddleware(pasetoService)
	projectHandler := project.NewHandler(
		projectService,
		mediaPipeline,
		portfolioService,
		logger,
		cfg.Upload.MaxImages,
		cfg.Upload.MaxFileSize,
	)
	portfolioHandler := portfolio.NewHandler(portfolioService, logger)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, projectHandler, portfolioHandler, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
