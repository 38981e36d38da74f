package settlement

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence.
// Queries exclude soft-deleted payments unless stated otherwise.
type PaymentRepository interface {
	// FindByID finds an active payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByIDIncludingInactive finds a payment regardless of its active flag
	FindByIDIncludingInactive(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByNumber finds an active payment by its number
	FindByNumber(ctx context.Context, paymentNumber string) (*Payment, error)

	// FindByContact finds active payments for a contact
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// FindByDocument finds active payments with an allocation to a document
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]Payment, error)

	// FindByStatus finds active payments in a status
	FindByStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) ([]Payment, error)

	// FindAll finds active payments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// Save creates or updates a payment with its allocations
	Save(ctx context.Context, payment *Payment) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, payment *Payment) error

	// Count counts active payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaymentFilter extends shared.Filter with payment-specific filters
type PaymentFilter struct {
	shared.Filter
	Direction *PaymentDirection
	Status    *PaymentStatus
	ContactID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
