package billing

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentRepository defines the interface for settlable document persistence
type DocumentRepository interface {
	// FindByID finds a document by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindByIDAndKind finds a document by ID constrained to a kind
	FindByIDAndKind(ctx context.Context, id uuid.UUID, kind DocumentKind) (*Document, error)

	// FindByNumber finds a document by its number
	FindByNumber(ctx context.Context, documentNumber string) (*Document, error)

	// FindByKind finds documents of a kind matching the filter
	FindByKind(ctx context.Context, kind DocumentKind, filter shared.Filter) ([]Document, error)

	// FindByContact finds documents for a contact
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]Document, error)

	// FindOutstanding finds non-cancelled documents with a positive balance
	FindOutstanding(ctx context.Context, kind DocumentKind, filter shared.Filter) ([]Document, error)

	// FindOverdue finds outstanding documents past their due date
	FindOverdue(ctx context.Context, kind DocumentKind, asOf time.Time, filter shared.Filter) ([]Document, error)

	// Save creates or updates a document with its line items
	Save(ctx context.Context, doc *Document) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, doc *Document) error

	// Delete deletes a document
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByKind counts documents of a kind matching the filter
	CountByKind(ctx context.Context, kind DocumentKind, filter shared.Filter) (int64, error)
}

// DocumentFilter extends shared.Filter with document-specific filters
type DocumentFilter struct {
	shared.Filter
	Kind      *DocumentKind
	ContactID *uuid.UUID
	Status    *DocumentStatus
	DueBefore *time.Time
	DueAfter  *time.Time
}
