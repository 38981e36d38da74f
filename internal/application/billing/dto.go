package billing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest represents one priced line on a document
type LineItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// CreateDocumentRequest represents a request to create an invoice or bill
type CreateDocumentRequest struct {
	Kind      string            `json:"kind" binding:"required,oneof=INVOICE BILL"`
	ContactID uuid.UUID         `json:"contact_id" binding:"required"`
	IssueDate time.Time         `json:"issue_date" binding:"required"`
	DueDate   time.Time         `json:"due_date" binding:"required"`
	Discount  decimal.Decimal   `json:"discount"`
	Lines     []LineItemRequest `json:"lines" binding:"dive"`
	Notes     string            `json:"notes"`
	OperatorID *uuid.UUID       `json:"-"`
}

// UpdateDocumentRequest changes the descriptive fields of an editable document
type UpdateDocumentRequest struct {
	DueDate *time.Time `json:"due_date"`
	Notes   *string    `json:"notes"`
}

// LineItemResponse represents a document line in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DocumentResponse represents an invoice or bill in API responses
type DocumentResponse struct {
	ID             uuid.UUID              `json:"id"`
	Kind           billing.DocumentKind   `json:"kind"`
	DocumentNumber string                 `json:"document_number"`
	ContactID      uuid.UUID              `json:"contact_id"`
	IssueDate      time.Time              `json:"issue_date"`
	DueDate        time.Time              `json:"due_date"`
	Lines          []LineItemResponse     `json:"lines"`
	Discount       decimal.Decimal        `json:"discount"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	BalanceAmount  decimal.Decimal        `json:"balance_amount"`
	Status         billing.DocumentStatus `json:"status"`
	DaysOverdue    int                    `json:"days_overdue"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Version        int                    `json:"version"`
}

// ToDocumentResponse converts a domain document to a response
func ToDocumentResponse(d *billing.Document) DocumentResponse {
	lines := make([]LineItemResponse, len(d.LineItems))
	for i := range d.LineItems {
		lines[i] = LineItemResponse{
			ID:          d.LineItems[i].ID,
			ProductID:   d.LineItems[i].ProductID,
			Description: d.LineItems[i].Description,
			Quantity:    d.LineItems[i].Quantity,
			UnitPrice:   d.LineItems[i].UnitPrice,
			TaxAmount:   d.LineItems[i].TaxAmount,
			LineTotal:   d.LineItems[i].LineTotal,
		}
	}

	return DocumentResponse{
		ID:             d.ID,
		Kind:           d.Kind,
		DocumentNumber: d.DocumentNumber,
		ContactID:      d.ContactID,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		Lines:          lines,
		Discount:       d.Discount,
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		BalanceAmount:  d.BalanceAmount,
		Status:         d.Status,
		DaysOverdue:    d.DaysOverdue(time.Now()),
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Version:        d.Version,
	}
}

// ToDocumentResponses converts a slice of documents to responses
func ToDocumentResponses(docs []billing.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// DocumentListFilter represents filter options for the document list
type DocumentListFilter struct {
	ContactID   *uuid.UUID `form:"contact_id"`
	Status      string     `form:"status" binding:"omitempty,oneof=DRAFT APPROVED PAID OVERDUE CANCELLED"`
	Outstanding *bool      `form:"outstanding"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
