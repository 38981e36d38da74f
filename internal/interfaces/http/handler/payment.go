package handler

import (
	settlementapp "github.com/bizledger/backend/internal/application/settlement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment and receipt API endpoints
type PaymentHandler struct {
	BaseHandler
	settlementService *settlementapp.SettlementService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(settlementService *settlementapp.SettlementService) *PaymentHandler {
	return &PaymentHandler{settlementService: settlementService}
}

// Create records a new payment or receipt
func (h *PaymentHandler) Create(c *gin.Context) {
	var req settlementapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.OperatorID = getOperatorID(c)

	payment, err := h.settlementService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// GetByID retrieves a payment by its ID
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.settlementService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// List retrieves payments with filtering and pagination
func (h *PaymentHandler) List(c *gin.Context) {
	var filter settlementapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	payments, total, err := h.settlementService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// ListByDocument retrieves payments allocated against a document
func (h *PaymentHandler) ListByDocument(c *gin.Context) {
	documentID, err := uuid.Parse(c.Query("document_id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	payments, err := h.settlementService.GetByDocument(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Update reworks an uncleared payment
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req settlementapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.settlementService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// Delete soft-deletes an uncleared payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	if err := h.settlementService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkCleared confirms the payment and applies its financial effects
func (h *PaymentHandler) MarkCleared(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	approverID := getOperatorID(c)
	if approverID == nil {
		h.BadRequest(c, "Approver identity not found")
		return
	}

	payment, err := h.settlementService.MarkCleared(c.Request.Context(), id, *approverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// MarkBounced reverses a cleared payment's financial effects
func (h *PaymentHandler) MarkBounced(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.settlementService.MarkBounced(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// Cancel cancels a payment, reversing its effects if it had cleared
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.settlementService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}
