package persistence

import (
	"context"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBalanceEntryRepository implements the append-only balance audit log
type GormBalanceEntryRepository struct {
	db *gorm.DB
}

// NewGormBalanceEntryRepository creates a new GormBalanceEntryRepository
func NewGormBalanceEntryRepository(db *gorm.DB) *GormBalanceEntryRepository {
	return &GormBalanceEntryRepository{db: db}
}

// Create appends a new balance entry
func (r *GormBalanceEntryRepository) Create(ctx context.Context, entry *partner.BalanceEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByContact finds balance entries for a contact
func (r *GormBalanceEntryRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]partner.BalanceEntry, error) {
	var entries []partner.BalanceEntry
	query := r.db.WithContext(ctx).Model(&partner.BalanceEntry{}).
		Where("contact_id = ?", contactID)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByPayment finds balance entries originated by a payment
func (r *GormBalanceEntryRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]partner.BalanceEntry, error) {
	var entries []partner.BalanceEntry
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormBalanceEntryRepository implements BalanceEntryRepository
var _ partner.BalanceEntryRepository = (*GormBalanceEntryRepository)(nil)
