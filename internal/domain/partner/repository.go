package partner

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByName finds contacts whose name matches the search term
	FindByName(ctx context.Context, name string, filter shared.Filter) ([]Contact, error)

	// FindByType finds contacts of a type matching the filter
	FindByType(ctx context.Context, contactType ContactType, filter shared.Filter) ([]Contact, error)

	// FindAll finds active contacts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, contact *Contact) error

	// Delete deletes a contact
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts active contacts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BalanceEntryRepository defines the interface for the balance audit log
type BalanceEntryRepository interface {
	// Create appends a new balance entry (append-only)
	Create(ctx context.Context, entry *BalanceEntry) error

	// FindByContact finds balance entries for a contact
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]BalanceEntry, error)

	// FindByPayment finds balance entries originated by a payment
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]BalanceEntry, error)
}
