package settlement

import (
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/settlement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationRequest attributes part of the payment amount to one document
type AllocationRequest struct {
	DocumentID uuid.UUID       `json:"document_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreatePaymentRequest represents a request to record a payment or receipt
type CreatePaymentRequest struct {
	Direction     string              `json:"direction" binding:"required,oneof=PAYMENT RECEIPT"`
	ContactID     uuid.UUID           `json:"contact_id" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	PaymentDate   time.Time           `json:"payment_date" binding:"required"`
	Method        string              `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHECK CARD"`
	BankName      string              `json:"bank_name"`
	AccountNumber string              `json:"account_number"`
	CheckNumber   string              `json:"check_number"`
	CardReference string              `json:"card_reference"`
	Allocations   []AllocationRequest `json:"allocations" binding:"dive"`
	Notes         string              `json:"notes"`
	OperatorID    *uuid.UUID          `json:"-"`
}

// UpdatePaymentRequest represents a request to rework an uncleared payment.
// The allocation list fully replaces the previous one.
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal    `json:"amount"`
	PaymentDate   *time.Time          `json:"payment_date"`
	Method        string              `json:"method" binding:"omitempty,oneof=CASH BANK_TRANSFER CHECK CARD"`
	BankName      string              `json:"bank_name"`
	AccountNumber string              `json:"account_number"`
	CheckNumber   string              `json:"check_number"`
	CardReference string              `json:"card_reference"`
	Allocations   []AllocationRequest `json:"allocations" binding:"dive"`
	Notes         *string             `json:"notes"`
}

// AllocationResponse represents one document allocation in API responses
type AllocationResponse struct {
	ID              uuid.UUID            `json:"id"`
	DocumentKind    billing.DocumentKind `json:"document_kind"`
	DocumentID      uuid.UUID            `json:"document_id"`
	DocumentNumber  string               `json:"document_number"`
	AllocatedAmount decimal.Decimal      `json:"allocated_amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                uuid.UUID                   `json:"id"`
	PaymentNumber     string                      `json:"payment_number"`
	Direction         settlement.PaymentDirection `json:"direction"`
	ContactID         uuid.UUID                   `json:"contact_id"`
	Amount            decimal.Decimal             `json:"amount"`
	PaymentDate       time.Time                   `json:"payment_date"`
	Method            settlement.PaymentMethod    `json:"method"`
	BankName          string                      `json:"bank_name,omitempty"`
	AccountNumber     string                      `json:"account_number,omitempty"`
	CheckNumber       string                      `json:"check_number,omitempty"`
	CardReference     string                      `json:"card_reference,omitempty"`
	Allocations       []AllocationResponse        `json:"allocations"`
	TotalAllocated    decimal.Decimal             `json:"total_allocated"`
	UnallocatedAmount decimal.Decimal             `json:"unallocated_amount"`
	Status            settlement.PaymentStatus    `json:"status"`
	Active            bool                        `json:"active"`
	ClearedBy         *uuid.UUID                  `json:"cleared_by,omitempty"`
	ClearedAt         *time.Time                  `json:"cleared_at,omitempty"`
	Notes             string                      `json:"notes,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	Version           int                         `json:"version"`
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(p *settlement.Payment) PaymentResponse {
	allocations := make([]AllocationResponse, len(p.Allocations))
	for i := range p.Allocations {
		allocations[i] = AllocationResponse{
			ID:              p.Allocations[i].ID,
			DocumentKind:    p.Allocations[i].DocumentKind,
			DocumentID:      p.Allocations[i].DocumentID,
			DocumentNumber:  p.Allocations[i].DocumentNumber,
			AllocatedAmount: p.Allocations[i].AllocatedAmount,
		}
	}

	return PaymentResponse{
		ID:                p.ID,
		PaymentNumber:     p.PaymentNumber,
		Direction:         p.Direction,
		ContactID:         p.ContactID,
		Amount:            p.Amount,
		PaymentDate:       p.PaymentDate,
		Method:            p.Method.Method,
		BankName:          p.Method.BankName,
		AccountNumber:     p.Method.AccountNumber,
		CheckNumber:       p.Method.CheckNumber,
		CardReference:     p.Method.CardReference,
		Allocations:       allocations,
		TotalAllocated:    p.TotalAllocated,
		UnallocatedAmount: p.UnallocatedAmount(),
		Status:            p.Status,
		Active:            p.Active,
		ClearedBy:         p.ClearedBy,
		ClearedAt:         p.ClearedAt,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
}

// ToPaymentResponses converts a slice of payments to responses
func ToPaymentResponses(payments []settlement.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	ContactID *uuid.UUID `form:"contact_id"`
	Direction string     `form:"direction" binding:"omitempty,oneof=PAYMENT RECEIPT"`
	Status    string     `form:"status" binding:"omitempty,oneof=PENDING CLEARED BOUNCED CANCELLED"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
