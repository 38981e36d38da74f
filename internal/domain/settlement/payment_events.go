package settlement

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePayment = "Payment"

// Event type constants
const (
	EventTypePaymentCreated   = "PaymentCreated"
	EventTypePaymentCleared   = "PaymentCleared"
	EventTypePaymentBounced   = "PaymentBounced"
	EventTypePaymentCancelled = "PaymentCancelled"
	EventTypePaymentDeleted   = "PaymentDeleted"
)

// PaymentCreatedEvent is raised when a payment is recorded
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID        `json:"payment_id"`
	PaymentNumber string           `json:"payment_number"`
	Direction     PaymentDirection `json:"direction"`
	ContactID     uuid.UUID        `json:"contact_id"`
	Amount        decimal.Decimal  `json:"amount"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		Direction:       p.Direction,
		ContactID:       p.ContactID,
		Amount:          p.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentCreatedEvent) EventType() string {
	return EventTypePaymentCreated
}

// PaymentClearedEvent is raised when a payment is cleared by an approver
type PaymentClearedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID `json:"payment_id"`
	PaymentNumber string    `json:"payment_number"`
	ApproverID    uuid.UUID `json:"approver_id"`
}

// NewPaymentClearedEvent creates a new PaymentClearedEvent
func NewPaymentClearedEvent(p *Payment, approverID uuid.UUID) *PaymentClearedEvent {
	return &PaymentClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCleared, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		ApproverID:      approverID,
	}
}

// EventType returns the event type name
func (e *PaymentClearedEvent) EventType() string {
	return EventTypePaymentCleared
}

// PaymentBouncedEvent is raised when a payment fails after recording
type PaymentBouncedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID       `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewPaymentBouncedEvent creates a new PaymentBouncedEvent
func NewPaymentBouncedEvent(p *Payment) *PaymentBouncedEvent {
	return &PaymentBouncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentBounced, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		Amount:          p.Amount,
	}
}

// EventType returns the event type name
func (e *PaymentBouncedEvent) EventType() string {
	return EventTypePaymentBounced
}

// PaymentCancelledEvent is raised when a pending payment is voided
type PaymentCancelledEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID `json:"payment_id"`
	PaymentNumber string    `json:"payment_number"`
}

// NewPaymentCancelledEvent creates a new PaymentCancelledEvent
func NewPaymentCancelledEvent(p *Payment) *PaymentCancelledEvent {
	return &PaymentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCancelled, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
	}
}

// EventType returns the event type name
func (e *PaymentCancelledEvent) EventType() string {
	return EventTypePaymentCancelled
}

// PaymentDeletedEvent is raised when a payment is soft-deleted
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID `json:"payment_id"`
	PaymentNumber string    `json:"payment_number"`
}

// NewPaymentDeletedEvent creates a new PaymentDeletedEvent
func NewPaymentDeletedEvent(p *Payment) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentDeleted, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
	}
}

// EventType returns the event type name
func (e *PaymentDeletedEvent) EventType() string {
	return EventTypePaymentDeleted
}
