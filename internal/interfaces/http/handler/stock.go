package handler

import (
	inventoryapp "github.com/bizledger/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock-related API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GetByProduct retrieves the stock record for a product
func (h *StockHandler) GetByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	record, err := h.stockService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// List retrieves stock records with filtering and pagination
func (h *StockHandler) List(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	records, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, records, total, page, pageSize)
}

// ListBelowReorder retrieves stock records at or below their reorder level
func (h *StockHandler) ListBelowReorder(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	records, err := h.stockService.ListBelowReorder(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// ApplyTransaction records a stock movement
func (h *StockHandler) ApplyTransaction(c *gin.Context) {
	var req inventoryapp.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.OperatorID = getOperatorID(c)

	record, err := h.stockService.ApplyTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// Reserve earmarks available stock
func (h *StockHandler) Reserve(c *gin.Context) {
	var req inventoryapp.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.stockService.Reserve(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// Release returns reserved stock to available
func (h *StockHandler) Release(c *gin.Context) {
	var req inventoryapp.ReleaseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.stockService.Release(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetThresholds sets minimum, maximum and reorder thresholds
func (h *StockHandler) SetThresholds(c *gin.Context) {
	var req inventoryapp.SetThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.stockService.SetThresholds(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// ListTransactions retrieves the movement log for a product
func (h *StockHandler) ListTransactions(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var filter inventoryapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	txs, total, err := h.stockService.ListTransactions(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, txs, total, page, pageSize)
}

// ListTransactionsByDocument retrieves movements originated by a document
func (h *StockHandler) ListTransactionsByDocument(c *gin.Context) {
	documentType := c.Query("document_type")
	if documentType == "" {
		h.BadRequest(c, "document_type is required")
		return
	}
	documentID, err := uuid.Parse(c.Query("document_id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	txs, err := h.stockService.GetTransactionsByDocument(c.Request.Context(), documentType, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, txs)
}
