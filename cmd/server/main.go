package main

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/api"
	v1 "github.com/gestia/gestia/internal/api/v1"
	"github.com/gestia/gestia/internal/auth"
	"github.com/gestia/gestia/internal/cache"
	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/postgres"
	"github.com/gestia/gestia/internal/repository"
	"github.com/gestia/gestia/internal/service"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			provideTxRunner,

			// Auth provider
			auth.NewProvider,

			// Repositories
			repository.NewEstablishmentRepository,
			repository.NewSeriesRepository,
			repository.NewClientRepository,
			repository.NewAssetRepository,
			repository.NewInventoryRepository,
			repository.NewInvoiceRepository,
			repository.NewUserRepository,

			// Services
			service.NewAuthService,
			service.NewUserService,
			service.NewEstablishmentService,
			service.NewSeriesService,
			service.NewClientService,
			service.NewAssetService,
			service.NewInventoryService,
			service.NewInvoiceService,
			service.NewDashboardService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideTxRunner(db *postgres.DB) service.TxRunner {
	return db
}

func provideHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	userService service.UserService,
	establishmentService service.EstablishmentService,
	seriesService service.SeriesService,
	clientService service.ClientService,
	assetService service.AssetService,
	inventoryService service.InventoryService,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
) api.Handlers {
	return api.Handlers{
		Health:        v1.NewHealthHandler(logger),
		Auth:          v1.NewAuthHandler(authService, logger),
		User:          v1.NewUserHandler(userService, logger),
		Establishment: v1.NewEstablishmentHandler(establishmentService, logger),
		Series:        v1.NewSeriesHandler(seriesService, logger),
		Client:        v1.NewClientHandler(clientService, logger),
		Asset:         v1.NewAssetHandler(assetService, logger),
		Inventory:     v1.NewInventoryHandler(inventoryService, logger),
		Invoice:       v1.NewInvoiceHandler(invoiceService, logger),
		Dashboard:     v1.NewDashboardHandler(dashboardService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, provider auth.Provider) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger, provider)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
