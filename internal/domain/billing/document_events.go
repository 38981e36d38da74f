package billing

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDocument = "Document"

// Event type constants
const (
	EventTypeDocumentApproved  = "DocumentApproved"
	EventTypeDocumentPaid      = "DocumentPaid"
	EventTypeDocumentCancelled = "DocumentCancelled"
)

// DocumentApprovedEvent is raised when a draft document is approved
type DocumentApprovedEvent struct {
	shared.BaseDomainEvent
	DocumentID     uuid.UUID       `json:"document_id"`
	Kind           DocumentKind    `json:"kind"`
	DocumentNumber string          `json:"document_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ApproverID     uuid.UUID       `json:"approver_id"`
}

// NewDocumentApprovedEvent creates a new DocumentApprovedEvent
func NewDocumentApprovedEvent(doc *Document, approverID uuid.UUID) *DocumentApprovedEvent {
	return &DocumentApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentApproved, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Kind:            doc.Kind,
		DocumentNumber:  doc.DocumentNumber,
		TotalAmount:     doc.TotalAmount,
		ApproverID:      approverID,
	}
}

// EventType returns the event type name
func (e *DocumentApprovedEvent) EventType() string {
	return EventTypeDocumentApproved
}

// DocumentPaidEvent is raised when a document balance reaches zero
type DocumentPaidEvent struct {
	shared.BaseDomainEvent
	DocumentID     uuid.UUID       `json:"document_id"`
	Kind           DocumentKind    `json:"kind"`
	DocumentNumber string          `json:"document_number"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
}

// NewDocumentPaidEvent creates a new DocumentPaidEvent
func NewDocumentPaidEvent(doc *Document) *DocumentPaidEvent {
	return &DocumentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentPaid, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Kind:            doc.Kind,
		DocumentNumber:  doc.DocumentNumber,
		PaidAmount:      doc.PaidAmount,
	}
}

// EventType returns the event type name
func (e *DocumentPaidEvent) EventType() string {
	return EventTypeDocumentPaid
}

// DocumentCancelledEvent is raised when a document is voided
type DocumentCancelledEvent struct {
	shared.BaseDomainEvent
	DocumentID     uuid.UUID    `json:"document_id"`
	Kind           DocumentKind `json:"kind"`
	DocumentNumber string       `json:"document_number"`
}

// NewDocumentCancelledEvent creates a new DocumentCancelledEvent
func NewDocumentCancelledEvent(doc *Document) *DocumentCancelledEvent {
	return &DocumentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCancelled, AggregateTypeDocument, doc.ID),
		DocumentID:      doc.ID,
		Kind:            doc.Kind,
		DocumentNumber:  doc.DocumentNumber,
	}
}

// EventType returns the event type name
func (e *DocumentCancelledEvent) EventType() string {
	return EventTypeDocumentCancelled
}
