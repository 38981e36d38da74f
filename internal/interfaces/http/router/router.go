package router

import (
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/interfaces/http/handler"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every API handler the router mounts
type Handlers struct {
	System        *handler.SystemHandler
	Stock         *handler.StockHandler
	Invoice       *handler.DocumentHandler
	Bill          *handler.DocumentHandler
	Payment       *handler.PaymentHandler
	SalesOrder    *handler.SalesOrderHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Contact       *handler.ContactHandler
}

// Config holds router dependencies
type Config struct {
	Handlers   Handlers
	JWTService *auth.JWTService
	CORS       middleware.CORSConfig
	Logger     *zap.Logger
}

// New builds the gin engine with all middleware and routes mounted.
// Health endpoints stay outside the authenticated API group.
func New(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", cfg.Handlers.System.Health)
	engine.GET("/ready", cfg.Handlers.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTService))

	registerStockRoutes(api, cfg.Handlers.Stock)
	registerDocumentRoutes(api.Group("/invoices"), cfg.Handlers.Invoice)
	registerDocumentRoutes(api.Group("/bills"), cfg.Handlers.Bill)
	registerPaymentRoutes(api, cfg.Handlers.Payment)
	registerOrderRoutes(api, cfg.Handlers.SalesOrder, cfg.Handlers.PurchaseOrder)
	registerContactRoutes(api, cfg.Handlers.Contact)

	return engine
}

func registerStockRoutes(api *gin.RouterGroup, h *handler.StockHandler) {
	stock := api.Group("/stock")
	stock.GET("", h.List)
	stock.GET("/below-reorder", h.ListBelowReorder)
	stock.GET("/products/:product_id", h.GetByProduct)
	stock.GET("/products/:product_id/transactions", h.ListTransactions)
	stock.GET("/transactions", h.ListTransactionsByDocument)
	stock.POST("/transactions", h.ApplyTransaction)
	stock.POST("/reserve", h.Reserve)
	stock.POST("/release", h.Release)
	stock.PUT("/thresholds", h.SetThresholds)
}

func registerDocumentRoutes(group *gin.RouterGroup, h *handler.DocumentHandler) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/overdue", h.ListOverdue)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.POST("/:id/lines", h.AddLine)
	group.PUT("/:id/lines/:line_id", h.UpdateLine)
	group.DELETE("/:id/lines/:line_id", h.RemoveLine)
	group.PUT("/:id/discount", h.SetDiscount)
	group.POST("/:id/approve", h.Approve)
	group.POST("/:id/cancel", h.Cancel)
}

func registerPaymentRoutes(api *gin.RouterGroup, h *handler.PaymentHandler) {
	payments := api.Group("/payments")
	payments.POST("", h.Create)
	payments.GET("", h.List)
	payments.GET("/by-document", h.ListByDocument)
	payments.GET("/:id", h.GetByID)
	payments.PUT("/:id", h.Update)
	payments.DELETE("/:id", h.Delete)
	payments.POST("/:id/clear", h.MarkCleared)
	payments.POST("/:id/bounce", h.MarkBounced)
	payments.POST("/:id/cancel", h.Cancel)
}

func registerOrderRoutes(api *gin.RouterGroup, sales *handler.SalesOrderHandler, purchase *handler.PurchaseOrderHandler) {
	salesOrders := api.Group("/sales-orders")
	salesOrders.POST("", sales.Create)
	salesOrders.GET("", sales.List)
	salesOrders.GET("/:id", sales.GetByID)
	salesOrders.POST("/:id/items", sales.AddItem)
	salesOrders.DELETE("/:id/items/:item_id", sales.RemoveItem)
	salesOrders.POST("/:id/transition", sales.Transition)

	purchaseOrders := api.Group("/purchase-orders")
	purchaseOrders.POST("", purchase.Create)
	purchaseOrders.GET("", purchase.List)
	purchaseOrders.GET("/:id", purchase.GetByID)
	purchaseOrders.POST("/:id/items", purchase.AddItem)
	purchaseOrders.DELETE("/:id/items/:item_id", purchase.RemoveItem)
	purchaseOrders.POST("/:id/transition", purchase.Transition)
}

func registerContactRoutes(api *gin.RouterGroup, h *handler.ContactHandler) {
	contacts := api.Group("/contacts")
	contacts.POST("", h.Create)
	contacts.GET("", h.List)
	contacts.GET("/:id", h.GetByID)
	contacts.PUT("/:id", h.Update)
	contacts.DELETE("/:id", h.Deactivate)
	contacts.GET("/:id/balance-history", h.ListBalanceHistory)
}
