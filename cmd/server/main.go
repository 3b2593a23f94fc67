package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api"
	"github.com/lankacraft/marketapi/internal/cart"
	"github.com/lankacraft/marketapi/internal/checkout"
	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/internal/genai"
	"github.com/lankacraft/marketapi/internal/repository"
	"github.com/lankacraft/marketapi/internal/repository/memory"
	"github.com/lankacraft/marketapi/internal/repository/postgres"
	"github.com/lankacraft/marketapi/internal/service"
	"github.com/lankacraft/marketapi/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Pick the repository backend
	var repos *repository.Repositories
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		repos = postgres.NewRepositories(db, logger)
		logger.Info("Using PostgreSQL repositories", zap.String("host", cfg.Database.Host))
	} else {
		repos = memory.NewRepositories(logger)
		logger.Info("Using in-memory repositories")
	}

	// Device session store
	store := session.NewFileStore(cfg.Session.FilePath, logger)
	if err := store.EnsureDir(); err != nil {
		logger.Fatal("Failed to prepare session directory", zap.Error(err))
	}

	// Wire services
	carts := cart.NewRegistry()
	calc := checkout.NewCalculator(cfg.Checkout)
	generator := genai.NewClient(cfg.Gemini, logger)

	services := api.Services{
		Auth:     service.NewAuthService(repos, store, cfg.Session.LoginDelay, logger),
		Orders:   service.NewOrderService(repos, carts, calc, logger),
		Profiles: service.NewProfileService(generator, logger),
	}

	router := api.NewRouter(cfg, repos, carts, services, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
