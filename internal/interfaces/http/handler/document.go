package handler

import (
	"time"

	billingapp "github.com/bizledger/backend/internal/application/billing"
	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentHandler handles invoice or bill API endpoints. One instance is
// mounted per document kind so the URL decides the kind, not the payload.
type DocumentHandler struct {
	BaseHandler
	documentService *billingapp.DocumentService
	kind            billing.DocumentKind
}

// NewDocumentHandler creates a new DocumentHandler for the given kind
func NewDocumentHandler(documentService *billingapp.DocumentService, kind billing.DocumentKind) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, kind: kind}
}

// Create creates a new document in draft
func (h *DocumentHandler) Create(c *gin.Context) {
	var req billingapp.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Kind = string(h.kind)
	req.OperatorID = getOperatorID(c)

	doc, err := h.documentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, doc)
}

// GetByID retrieves a document by its ID
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), id, h.kind)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// List retrieves documents with filtering and pagination
func (h *DocumentHandler) List(c *gin.Context) {
	var filter billingapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	docs, total, err := h.documentService.List(c.Request.Context(), h.kind, filter)
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
	h.SuccessWithMeta(c, docs, total, page, pageSize)
}

// ListOverdue retrieves unpaid documents past their due date
func (h *DocumentHandler) ListOverdue(c *gin.Context) {
	asOf := time.Now()
	if s := c.Query("as_of"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	var filter billingapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	docs, err := h.documentService.ListOverdue(c.Request.Context(), h.kind, asOf, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, docs)
}

// Update changes a draft document's descriptive fields
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req billingapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), id, h.kind, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// AddLine appends a line item to a draft document
func (h *DocumentHandler) AddLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req billingapp.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documentService.AddLine(c.Request.Context(), id, h.kind, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// UpdateLine replaces one line item on a draft document
func (h *DocumentHandler) UpdateLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req billingapp.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documentService.UpdateLine(c.Request.Context(), id, h.kind, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// RemoveLine removes one line item from a draft document
func (h *DocumentHandler) RemoveLine(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	doc, err := h.documentService.RemoveLine(c.Request.Context(), id, h.kind, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// setDiscountRequest carries the document-level discount
type setDiscountRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// SetDiscount sets the document-level discount on a draft document
func (h *DocumentHandler) SetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req setDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documentService.SetDiscount(c.Request.Context(), id, h.kind, req.Discount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Approve locks a draft document and opens its balance
func (h *DocumentHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	approverID := getOperatorID(c)
	if approverID == nil {
		h.BadRequest(c, "Approver identity not found")
		return
	}

	doc, err := h.documentService.Approve(c.Request.Context(), id, h.kind, *approverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}

// Cancel cancels an unpaid document
func (h *DocumentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	doc, err := h.documentService.Cancel(c.Request.Context(), id, h.kind)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, doc)
}
