package main

import (
	"log/slog"
	"os"

	portsrepo "github.com/crickclub/club_funds_app/internal/core/ports/repositories"
	"github.com/crickclub/club_funds_app/internal/core/services"
	"github.com/crickclub/club_funds_app/internal/handlers"
	"github.com/crickclub/club_funds_app/internal/middleware"
	"github.com/crickclub/club_funds_app/internal/platform/config"
	"github.com/crickclub/club_funds_app/internal/repositories/docstore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Club Funds API
// @version 1.0
// @description Backend for the cricket club shared-money tracker.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The ledger and roster live as JSON documents in the external store;
	// one HTTP client serves both repositories.
	storeClient := docstore.NewClient(cfg.StoreBaseURL, cfg.StoreAPIKey, cfg.StoreTimeout)
	repos := portsrepo.RepositoryProvider{
		LedgerRepo: docstore.NewLedgerRepository(storeClient, cfg.LedgerDocumentID),
		RosterRepo: docstore.NewRosterRepository(storeClient, cfg.RosterDocumentID),
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
