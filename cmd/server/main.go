package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockmaster/backend/internal/application/catalog"
	identityapp "github.com/stockmaster/backend/internal/application/identity"
	inventoryapp "github.com/stockmaster/backend/internal/application/inventory"
	tradeapp "github.com/stockmaster/backend/internal/application/trade"
	warehouseapp "github.com/stockmaster/backend/internal/application/warehouse"
	"github.com/stockmaster/backend/internal/infrastructure/auth"
	"github.com/stockmaster/backend/internal/infrastructure/config"
	"github.com/stockmaster/backend/internal/infrastructure/logger"
	"github.com/stockmaster/backend/internal/infrastructure/persistence"
	"github.com/stockmaster/backend/internal/interfaces/http/handler"
	"github.com/stockmaster/backend/internal/interfaces/http/middleware"
	"github.com/stockmaster/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StockMaster backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	numbers := persistence.NewGormDocumentNumberGenerator(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, stockRepo)
	warehouseService := warehouseapp.NewWarehouseService(warehouseRepo, locationRepo, stockRepo)
	locationService := warehouseapp.NewLocationService(locationRepo, warehouseRepo, stockRepo)
	stockService := inventoryapp.NewStockService(stockRepo, ledgerRepo, productRepo, warehouseRepo, locationRepo)
	transferService := inventoryapp.NewTransferService(transferRepo, locationRepo, productRepo, numbers, txScope)
	adjustmentService := inventoryapp.NewAdjustmentService(adjustmentRepo, stockRepo, productRepo, locationRepo, numbers, txScope)
	receiptService := tradeapp.NewReceiptService(receiptRepo, warehouseRepo, locationRepo, productRepo, numbers, txScope)
	deliveryService := tradeapp.NewDeliveryService(deliveryRepo, locationRepo, productRepo, numbers, txScope)
	authService := identityapp.NewAuthService(userRepo, jwtService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Health:     handler.NewHealthHandler(db),
			Auth:       handler.NewAuthHandler(authService, blacklist),
			Product:    handler.NewProductHandler(productService),
			Category:   handler.NewCategoryHandler(categoryService),
			Warehouse:  handler.NewWarehouseHandler(warehouseService),
			Location:   handler.NewLocationHandler(locationService),
			Stock:      handler.NewStockHandler(stockService),
			Receipt:    handler.NewReceiptHandler(receiptService),
			Delivery:   handler.NewDeliveryHandler(deliveryService),
			Transfer:   handler.NewTransferHandler(transferService),
			Adjustment: handler.NewAdjustmentHandler(adjustmentService),
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
