package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockmaster/backend/internal/domain/identity"
	"github.com/stockmaster/backend/internal/infrastructure/auth"
	"github.com/stockmaster/backend/internal/infrastructure/logger"
	"github.com/stockmaster/backend/internal/interfaces/http/handler"
	"github.com/stockmaster/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Category   *handler.CategoryHandler
	Warehouse  *handler.WarehouseHandler
	Location   *handler.LocationHandler
	Stock      *handler.StockHandler
	Receipt    *handler.ReceiptHandler
	Delivery   *handler.DeliveryHandler
	Transfer   *handler.TransferHandler
	Adjustment *handler.AdjustmentHandler
}

// Config holds everything needed to build the HTTP engine
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// New builds the gin engine with all middleware and routes mounted.
// Reads require authentication; writes and workflow transitions additionally
// require the inventory manager or admin role.
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)

	engine.GET("/health", cfg.Handlers.Health.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", cfg.Handlers.Health.Health)
	api.POST("/auth/login", cfg.Handlers.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(middleware.AuthConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		Logger:         cfg.Logger,
	}))

	manage := authed.Group("")
	manage.Use(middleware.RequireInventoryManager())

	registerAuthRoutes(authed, manage, cfg.Handlers.Auth)
	registerCatalogRoutes(authed, manage, cfg.Handlers.Product, cfg.Handlers.Category)
	registerWarehouseRoutes(authed, manage, cfg.Handlers.Warehouse, cfg.Handlers.Location)
	registerStockRoutes(authed, manage, cfg.Handlers.Stock)
	registerTradeRoutes(authed, manage, cfg.Handlers.Receipt, cfg.Handlers.Delivery)
	registerInventoryRoutes(authed, manage, cfg.Handlers.Transfer, cfg.Handlers.Adjustment)

	return engine
}

func registerAuthRoutes(authed, manage *gin.RouterGroup, h *handler.AuthHandler) {
	authed.GET("/auth/me", h.Me)
	authed.POST("/auth/logout", h.Logout)
	// Only admins create accounts
	manage.POST("/auth/register", middleware.RequireRole(identity.RoleAdmin), h.Register)
}

func registerCatalogRoutes(authed, manage *gin.RouterGroup, products *handler.ProductHandler, categories *handler.CategoryHandler) {
	authed.GET("/products", products.List)
	authed.GET("/products/:id", products.Get)
	manage.POST("/products", products.Create)
	manage.PUT("/products/:id", products.Update)
	manage.DELETE("/products/:id", products.Delete)

	authed.GET("/categories", categories.List)
	authed.GET("/categories/:id", categories.Get)
	manage.POST("/categories", categories.Create)
	manage.PUT("/categories/:id", categories.Update)
	manage.DELETE("/categories/:id", categories.Delete)
}

func registerWarehouseRoutes(authed, manage *gin.RouterGroup, warehouses *handler.WarehouseHandler, locations *handler.LocationHandler) {
	authed.GET("/warehouses", warehouses.List)
	authed.GET("/warehouses/:id", warehouses.Get)
	manage.POST("/warehouses", warehouses.Create)
	manage.PUT("/warehouses/:id", warehouses.Update)
	manage.DELETE("/warehouses/:id", warehouses.Delete)

	authed.GET("/warehouses/:id/locations", locations.ListByWarehouse)
	authed.GET("/locations/:id", locations.Get)
	manage.POST("/warehouses/:id/locations", locations.Create)
	manage.PUT("/locations/:id", locations.Update)
	manage.DELETE("/locations/:id", locations.Delete)
}

func registerStockRoutes(authed, manage *gin.RouterGroup, stock *handler.StockHandler) {
	authed.GET("/stock", stock.List)
	authed.GET("/stock/item", stock.GetByKey)
	authed.GET("/stock/summary", stock.Summary)
	authed.GET("/stock/low-stock", stock.LowStock)
	authed.GET("/ledger", stock.ListLedger)
	authed.GET("/export/stock", stock.ExportCSV)
	manage.POST("/stock/override", stock.Override)
}

func registerTradeRoutes(authed, manage *gin.RouterGroup, receipts *handler.ReceiptHandler, deliveries *handler.DeliveryHandler) {
	authed.GET("/receipts", receipts.List)
	authed.GET("/receipts/:id", receipts.Get)
	manage.POST("/receipts", receipts.Create)
	manage.PUT("/receipts/:id", receipts.Update)
	manage.DELETE("/receipts/:id", receipts.Delete)
	manage.POST("/receipts/:id/submit", receipts.Submit)
	manage.POST("/receipts/:id/ready", receipts.MarkReady)
	manage.POST("/receipts/:id/validate", receipts.Validate)
	manage.POST("/receipts/:id/cancel", receipts.Cancel)

	authed.GET("/deliveries", deliveries.List)
	authed.GET("/deliveries/:id", deliveries.Get)
	// Staff drive pick and pack on the floor; managing the order itself and
	// completing it stay gated.
	authed.POST("/deliveries/:id/pick", deliveries.Pick)
	authed.POST("/deliveries/:id/pack", deliveries.Pack)
	manage.POST("/deliveries", deliveries.Create)
	manage.PUT("/deliveries/:id", deliveries.Update)
	manage.DELETE("/deliveries/:id", deliveries.Delete)
	manage.POST("/deliveries/:id/complete", deliveries.Complete)
}

func registerInventoryRoutes(authed, manage *gin.RouterGroup, transfers *handler.TransferHandler, adjustments *handler.AdjustmentHandler) {
	authed.GET("/transfers", transfers.List)
	authed.GET("/transfers/:id", transfers.Get)
	manage.POST("/transfers", transfers.Create)
	manage.DELETE("/transfers/:id", transfers.Delete)
	manage.POST("/transfers/:id/submit", transfers.Submit)
	manage.POST("/transfers/:id/complete", transfers.Complete)
	manage.POST("/transfers/:id/cancel", transfers.Cancel)

	authed.GET("/adjustments", adjustments.List)
	authed.GET("/adjustments/:id", adjustments.Get)
	manage.POST("/adjustments", adjustments.Create)
	manage.PUT("/adjustments/:id", adjustments.Update)
	manage.DELETE("/adjustments/:id", adjustments.Delete)
	manage.POST("/adjustments/:id/approve", adjustments.Approve)
	manage.POST("/adjustments/:id/reject", adjustments.Reject)
}
