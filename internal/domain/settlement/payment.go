package settlement

import (
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDirection distinguishes outgoing payments from incoming receipts
type PaymentDirection string

const (
	// DirectionPayment is money going out to a vendor
	DirectionPayment PaymentDirection = "PAYMENT"
	// DirectionReceipt is money coming in from a customer
	DirectionReceipt PaymentDirection = "RECEIPT"
)

// String returns the string representation of PaymentDirection
func (d PaymentDirection) String() string {
	return string(d)
}

// IsValid returns true if the direction is valid
func (d PaymentDirection) IsValid() bool {
	return d == DirectionPayment || d == DirectionReceipt
}

// PaymentStatus represents the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCleared   PaymentStatus = "CLEARED"
	PaymentStatusBounced   PaymentStatus = "BOUNCED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCleared, PaymentStatusBounced, PaymentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo returns true if the status transition is allowed.
// Clearing is one-way; the only paths out of Cleared are Bounced.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusCleared || target == PaymentStatusBounced || target == PaymentStatusCancelled
	case PaymentStatusCleared:
		return target == PaymentStatusBounced
	default:
		return false
	}
}

// Allocation attributes part of a payment to one outstanding document
type Allocation struct {
	shared.BaseEntity
	PaymentID       uuid.UUID            `gorm:"type:uuid;not null;index:idx_allocation_payment"`
	DocumentKind    billing.DocumentKind `gorm:"type:varchar(10);not null"`
	DocumentID      uuid.UUID            `gorm:"type:uuid;not null;index:idx_allocation_document"`
	DocumentNumber  string               `gorm:"type:varchar(50);not null"`
	AllocatedAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Allocation) TableName() string {
	return "payment_allocations"
}

// Payment records money moving between the business and a contact, with
// allocations attributing the amount to outstanding documents. The invariant
// TotalAllocated <= Amount holds at all times. Deletion is soft: reversed
// payments stay on record with Active = false.
type Payment struct {
	shared.AuditedAggregateRoot
	PaymentNumber  string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_payment_number"`
	Direction      PaymentDirection `gorm:"type:varchar(10);not null;index"`
	ContactID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_payment_contact"`
	Amount         decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PaymentDate    time.Time        `gorm:"not null"`
	Method         MethodDetails    `gorm:"embedded;embeddedPrefix:method_"`
	Allocations    []Allocation     `gorm:"foreignKey:PaymentID;references:ID"`
	TotalAllocated decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status         PaymentStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Active         bool             `gorm:"not null;default:true;index"`
	ClearedBy      *uuid.UUID       `gorm:"type:uuid"`
	ClearedAt      *time.Time
	Notes          string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new pending payment with no allocations
func NewPayment(paymentNumber string, direction PaymentDirection, contactID uuid.UUID, amount decimal.Decimal, paymentDate time.Time, method MethodDetails) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid payment direction")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}

	p := &Payment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		PaymentNumber:        paymentNumber,
		Direction:            direction,
		ContactID:            contactID,
		Amount:               amount,
		PaymentDate:          paymentDate,
		Method:               method,
		Allocations:          make([]Allocation, 0),
		TotalAllocated:       decimal.Zero,
		Status:               PaymentStatusPending,
		Active:               true,
	}

	p.AddDomainEvent(NewPaymentCreatedEvent(p))
	return p, nil
}

// UnallocatedAmount returns the amount not yet attributed to any document
func (p *Payment) UnallocatedAmount() decimal.Decimal {
	return p.Amount.Sub(p.TotalAllocated)
}

// IsEditable returns true if update/delete are still allowed
func (p *Payment) IsEditable() bool {
	return p.Active && p.Status != PaymentStatusCleared
}

// AddAllocation attributes part of the payment to a document.
// The allocation sum may never exceed the payment amount.
func (p *Payment) AddAllocation(kind billing.DocumentKind, documentID uuid.UUID, documentNumber string, amount decimal.Decimal) error {
	if !p.IsEditable() {
		return shared.ErrPaymentLocked
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}
	if documentID == uuid.Nil {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocated amount must be positive")
	}
	for idx := range p.Allocations {
		if p.Allocations[idx].DocumentID == documentID {
			return shared.NewDomainError("DUPLICATE_ALLOCATION", "Document is already allocated on this payment")
		}
	}
	if p.TotalAllocated.Add(amount).GreaterThan(p.Amount) {
		return shared.ErrOverAllocation
	}

	p.Allocations = append(p.Allocations, Allocation{
		BaseEntity:      shared.NewBaseEntity(),
		PaymentID:       p.ID,
		DocumentKind:    kind,
		DocumentID:      documentID,
		DocumentNumber:  documentNumber,
		AllocatedAmount: amount,
	})
	p.TotalAllocated = p.TotalAllocated.Add(amount)
	p.touch()

	return nil
}

// ClearAllocations removes every allocation, used when rebuilding on update
func (p *Payment) ClearAllocations() error {
	if !p.IsEditable() {
		return shared.ErrPaymentLocked
	}

	p.Allocations = make([]Allocation, 0)
	p.TotalAllocated = decimal.Zero
	p.touch()
	return nil
}

// ChangeAmount updates the payment amount on a still-editable payment.
// Allocations must be rebuilt afterwards; the invariant is re-checked here.
func (p *Payment) ChangeAmount(amount decimal.Decimal) error {
	if !p.IsEditable() {
		return shared.ErrPaymentLocked
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if p.TotalAllocated.GreaterThan(amount) {
		return shared.ErrOverAllocation
	}

	p.Amount = amount
	p.touch()
	return nil
}

// MarkCleared stamps the approver and moves the payment to Cleared, one-way
func (p *Payment) MarkCleared(approverID uuid.UUID) error {
	if !p.Active {
		return shared.ErrNotFound
	}
	if !p.Status.CanTransitionTo(PaymentStatusCleared) {
		return shared.ErrInvalidTransition
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	p.Status = PaymentStatusCleared
	p.ClearedBy = &approverID
	p.ClearedAt = &now
	p.touch()

	p.AddDomainEvent(NewPaymentClearedEvent(p, approverID))
	return nil
}

// MarkBounced records a failed payment; the caller reverses document credits
func (p *Payment) MarkBounced() error {
	if !p.Active {
		return shared.ErrNotFound
	}
	if !p.Status.CanTransitionTo(PaymentStatusBounced) {
		return shared.ErrInvalidTransition
	}

	p.Status = PaymentStatusBounced
	p.touch()

	p.AddDomainEvent(NewPaymentBouncedEvent(p))
	return nil
}

// Cancel voids a pending payment; the caller reverses document credits
func (p *Payment) Cancel() error {
	if !p.Active {
		return shared.ErrNotFound
	}
	if !p.Status.CanTransitionTo(PaymentStatusCancelled) {
		return shared.ErrInvalidTransition
	}

	p.Status = PaymentStatusCancelled
	p.touch()

	p.AddDomainEvent(NewPaymentCancelledEvent(p))
	return nil
}

// Deactivate soft-deletes the payment. Cleared payments cannot be deleted.
func (p *Payment) Deactivate() error {
	if p.Status == PaymentStatusCleared {
		return shared.ErrPaymentLocked
	}
	if !p.Active {
		return shared.ErrNotFound
	}

	p.Active = false
	p.touch()

	p.AddDomainEvent(NewPaymentDeletedEvent(p))
	return nil
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
