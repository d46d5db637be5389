package api

import (
	v1 "github.com/gestia/gestia/internal/api/v1"
	"github.com/gestia/gestia/internal/auth"
	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health        *v1.HealthHandler
	Auth          *v1.AuthHandler
	User          *v1.UserHandler
	Establishment *v1.EstablishmentHandler
	Series        *v1.SeriesHandler
	Client        *v1.ClientHandler
	Asset         *v1.AssetHandler
	Inventory     *v1.InventoryHandler
	Invoice       *v1.InvoiceHandler
	Dashboard     *v1.DashboardHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, provider auth.Provider) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg.Server.CORSOrigin),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	public := router.Group("/v1")
	public.Use(middleware.GuestAuthenticateMiddleware)
	{
		public.POST("/auth/signup", handlers.Auth.SignUp)
		public.POST("/auth/login", handlers.Auth.Login)
	}

	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(provider, logger))
	registerV1Routes(private, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	users := router.Group("/users")
	{
		users.POST("", handlers.User.CreateUser)
		users.GET("", handlers.User.ListUsers)
		users.GET("/me", handlers.User.GetCurrentUser)
		users.GET("/:id", handlers.User.GetUser)
		users.PUT("/:id", handlers.User.UpdateUser)
		users.DELETE("/:id", handlers.User.DeleteUser)
	}

	establishments := router.Group("/establishments")
	{
		establishments.POST("", handlers.Establishment.CreateEstablishment)
		establishments.GET("", handlers.Establishment.ListEstablishments)
		establishments.GET("/:id", handlers.Establishment.GetEstablishment)
		establishments.PUT("/:id", handlers.Establishment.UpdateEstablishment)
		establishments.DELETE("/:id", handlers.Establishment.DeleteEstablishment)
	}

	series := router.Group("/series")
	{
		series.POST("", handlers.Series.CreateSeries)
		series.GET("", handlers.Series.ListSeries)
		series.GET("/:id", handlers.Series.GetSeries)
		series.PUT("/:id", handlers.Series.UpdateSeries)
		series.DELETE("/:id", handlers.Series.DeleteSeries)
		series.POST("/:id/default", handlers.Series.SetDefault)
		series.POST("/:id/allocate", handlers.Series.AllocateNext)
	}

	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
	}

	assets := router.Group("/assets")
	{
		assets.POST("", handlers.Asset.CreateAsset)
		assets.GET("", handlers.Asset.ListAssets)
		assets.GET("/:id", handlers.Asset.GetAsset)
		assets.PUT("/:id", handlers.Asset.UpdateAsset)
		assets.DELETE("/:id", handlers.Asset.DeleteAsset)
	}

	inventory := router.Group("/inventory")
	{
		inventory.POST("/items", handlers.Inventory.CreateItem)
		inventory.GET("/items", handlers.Inventory.ListItems)
		inventory.GET("/items/low-stock", handlers.Inventory.ListLowStock)
		inventory.GET("/items/:id", handlers.Inventory.GetItem)
		inventory.PUT("/items/:id", handlers.Inventory.UpdateItem)
		inventory.DELETE("/items/:id", handlers.Inventory.DeleteItem)
		inventory.POST("/items/:id/movements", handlers.Inventory.RecordMovement)
		inventory.GET("/items/:id/movements", handlers.Inventory.ListMovements)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/void", handlers.Invoice.VoidInvoice)
	}

	router.GET("/dashboard/summary", handlers.Dashboard.GetSummary)
}
