package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/bizledger/backend/internal/application/billing"
	inventoryapp "github.com/bizledger/backend/internal/application/inventory"
	partnerapp "github.com/bizledger/backend/internal/application/partner"
	settlementapp "github.com/bizledger/backend/internal/application/settlement"
	tradeapp "github.com/bizledger/backend/internal/application/trade"
	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/event"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/infrastructure/persistence"
	"github.com/bizledger/backend/internal/interfaces/http/handler"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
	"github.com/bizledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLogger := logger.NewGormLogger(log, gormLogLevel)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Repositories
	stockRepo := persistence.NewGormStockRecordRepository(db.DB)
	stockTxRepo := persistence.NewGormStockTransactionRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	balanceEntryRepo := persistence.NewGormBalanceEntryRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	numberGen := persistence.NewGormNumberGenerator(db.DB)

	// Transaction scopes
	stockScope := persistence.NewGormStockTransactionScope(db.DB)
	settlementScope := persistence.NewGormSettlementTransactionScope(db.DB)
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Application services
	stockService := inventoryapp.NewStockServiceWithScope(stockRepo, stockTxRepo, stockScope)
	documentService := billingapp.NewDocumentService(documentRepo, numberGen)
	settlementService := settlementapp.NewSettlementService(paymentRepo, settlementScope, numberGen)
	contactService := partnerapp.NewContactService(contactRepo, balanceEntryRepo)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, orderScope, numberGen)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, orderScope, numberGen)

	// Event bus and domain event handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLowStockAlertHandler(log))
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	stockService.SetEventPublisher(eventBus)
	documentService.SetEventPublisher(eventBus)
	settlementService.SetEventPublisher(eventBus)
	contactService.SetEventPublisher(eventBus)
	salesOrderService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	handlers := router.Handlers{
		System:        handler.NewSystemHandler(cfg.App.Name, cfg.App.Env, db),
		Stock:         handler.NewStockHandler(stockService),
		Invoice:       handler.NewDocumentHandler(documentService, billing.DocumentKindInvoice),
		Bill:          handler.NewDocumentHandler(documentService, billing.DocumentKindBill),
		Payment:       handler.NewPaymentHandler(settlementService),
		SalesOrder:    handler.NewSalesOrderHandler(salesOrderService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Contact:       handler.NewContactHandler(contactService),
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine := router.New(router.Config{
		Handlers:   handlers,
		JWTService: jwtService,
		CORS:       corsConfig,
		Logger:     log,
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Overdue sweep: periodically flips approved documents past their due
	// date to OVERDUE so list filters stay accurate between reads
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Overdue.SweepEnabled {
		go runOverdueSweep(sweepCtx, documentService, cfg.Overdue.SweepInterval, log)
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
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runOverdueSweep(ctx context.Context, docs *billingapp.DocumentService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Overdue sweep started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			log.Info("Overdue sweep stopped")
			return
		case <-ticker.C:
			changed, err := docs.RefreshOverdueStatuses(ctx, time.Now())
			if err != nil {
				log.Error("Overdue sweep failed", zap.Error(err))
				continue
			}
			if changed > 0 {
				log.Info("Overdue sweep flagged documents", zap.Int("count", changed))
			}
		}
	}
}
