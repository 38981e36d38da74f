package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	var doc billing.Document
	if err := r.db.WithContext(ctx).Preload("LineItems").First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	doc.SyncPersistedVersion()
	return &doc, nil
}

// FindByIDAndKind finds a document by ID constrained to a kind
func (r *GormDocumentRepository) FindByIDAndKind(ctx context.Context, id uuid.UUID, kind billing.DocumentKind) (*billing.Document, error) {
	var doc billing.Document
	if err := r.db.WithContext(ctx).Preload("LineItems").
		First(&doc, "id = ? AND kind = ?", id, kind).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	doc.SyncPersistedVersion()
	return &doc, nil
}

// FindByNumber finds a document by its number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, documentNumber string) (*billing.Document, error) {
	var doc billing.Document
	if err := r.db.WithContext(ctx).Preload("LineItems").
		First(&doc, "document_number = ?", documentNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	doc.SyncPersistedVersion()
	return &doc, nil
}

// FindByKind finds documents of a kind matching the filter
func (r *GormDocumentRepository) FindByKind(ctx context.Context, kind billing.DocumentKind, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&billing.Document{}).Where("kind = ?", kind),
		filter,
	)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Preload("LineItems").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByContact finds documents for a contact
func (r *GormDocumentRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&billing.Document{}).Where("contact_id = ?", contactID),
		filter,
	)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Preload("LineItems").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOutstanding finds non-cancelled documents with a positive balance
func (r *GormDocumentRepository) FindOutstanding(ctx context.Context, kind billing.DocumentKind, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&billing.Document{}).
			Where("kind = ? AND status NOT IN ? AND balance_amount > 0",
				kind, []billing.DocumentStatus{billing.DocumentStatusCancelled, billing.DocumentStatusDraft}),
		filter,
	)
	query = applyPagination(query, filter, "due_date ASC")

	if err := query.Preload("LineItems").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOverdue finds outstanding documents past their due date
func (r *GormDocumentRepository) FindOverdue(ctx context.Context, kind billing.DocumentKind, asOf time.Time, filter shared.Filter) ([]billing.Document, error) {
	var docs []billing.Document
	query := r.db.WithContext(ctx).Model(&billing.Document{}).
		Where("kind = ? AND status NOT IN ? AND balance_amount > 0 AND due_date < ?",
			kind, []billing.DocumentStatus{billing.DocumentStatusCancelled, billing.DocumentStatusDraft}, asOf)
	query = applyPagination(query, filter, "due_date ASC")

	if err := query.Preload("LineItems").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Save creates or updates a document with its line items
func (r *GormDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("LineItems").Save(doc).Error; err != nil {
			return err
		}
		return r.replaceLineItems(tx, doc)
	})
	if err != nil {
		return err
	}
	doc.SyncPersistedVersion()
	return nil
}

// SaveWithLock saves with optimistic locking: the write matches the version
// as loaded, not the in-memory counter, so one operation may apply several
// mutations before saving.
// Line items are fully replaced, so edits and removals both persist.
func (r *GormDocumentRepository) SaveWithLock(ctx context.Context, doc *billing.Document) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(doc).
			Where("id = ? AND version = ?", doc.ID, doc.PersistedVersion()).
			Updates(map[string]interface{}{
				"due_date":       doc.DueDate,
				"discount":       doc.Discount,
				"subtotal":       doc.Subtotal,
				"tax_amount":     doc.TaxAmount,
				"total_amount":   doc.TotalAmount,
				"paid_amount":    doc.PaidAmount,
				"balance_amount": doc.BalanceAmount,
				"status":         doc.Status,
				"notes":          doc.Notes,
				"version":        doc.Version,
				"updated_at":     doc.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.replaceLineItems(tx, doc)
	})
	if err != nil {
		return err
	}
	doc.SyncPersistedVersion()
	return nil
}

// replaceLineItems rewrites the document's line items to match the aggregate
func (r *GormDocumentRepository) replaceLineItems(tx *gorm.DB, doc *billing.Document) error {
	if err := tx.Where("document_id = ?", doc.ID).Delete(&billing.LineItem{}).Error; err != nil {
		return err
	}
	if len(doc.LineItems) == 0 {
		return nil
	}
	return tx.Create(&doc.LineItems).Error
}

// Delete deletes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&billing.LineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Document{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByKind counts documents of a kind matching the filter
func (r *GormDocumentRepository) CountByKind(ctx context.Context, kind billing.DocumentKind, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&billing.Document{}).Where("kind = ?", kind),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters applies document-specific filter keys to the query
func (r *GormDocumentRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "outstanding":
			if value == true {
				query = query.Where("status NOT IN ? AND balance_amount > 0",
					[]billing.DocumentStatus{billing.DocumentStatusCancelled, billing.DocumentStatusDraft})
			}
		case "due_before":
			query = query.Where("due_date < ?", value)
		case "due_after":
			query = query.Where("due_date > ?", value)
		}
	}
	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ billing.DocumentRepository = (*GormDocumentRepository)(nil)
