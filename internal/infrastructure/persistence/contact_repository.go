package persistence

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Contact, error) {
	var contact partner.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	contact.SyncPersistedVersion()
	return &contact, nil
}

// FindByName finds contacts whose name matches the search term
func (r *GormContactRepository) FindByName(ctx context.Context, name string, filter shared.Filter) ([]partner.Contact, error) {
	var contacts []partner.Contact
	query := r.db.WithContext(ctx).Model(&partner.Contact{}).
		Where("active = ? AND name LIKE ?", true, "%"+name+"%")
	query = applyPagination(query, filter, "name ASC")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByType finds contacts of a type matching the filter
func (r *GormContactRepository) FindByType(ctx context.Context, contactType partner.ContactType, filter shared.Filter) ([]partner.Contact, error) {
	var contacts []partner.Contact
	query := r.db.WithContext(ctx).Model(&partner.Contact{}).
		Where("active = ? AND contact_type = ?", true, contactType)
	query = applyPagination(query, filter, "name ASC")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindAll finds active contacts matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Contact, error) {
	var contacts []partner.Contact
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&partner.Contact{}).Where("active = ?", true),
		filter,
	)
	query = applyPagination(query, filter, "name ASC")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return err
	}
	contact.SyncPersistedVersion()
	return nil
}

// SaveWithLock saves with optimistic locking: the write matches the version
// as loaded, not the in-memory counter, so one operation may apply several
// mutations before saving
func (r *GormContactRepository) SaveWithLock(ctx context.Context, contact *partner.Contact) error {
	result := r.db.WithContext(ctx).
		Model(contact).
		Where("id = ? AND version = ?", contact.ID, contact.PersistedVersion()).
		Updates(map[string]interface{}{
			"name":         contact.Name,
			"contact_type": contact.ContactType,
			"email":        contact.Email,
			"phone":        contact.Phone,
			"balance":      contact.Balance,
			"active":       contact.Active,
			"version":      contact.Version,
			"updated_at":   contact.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	contact.SyncPersistedVersion()
	return nil
}

// Delete deletes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts active contacts matching the filter
func (r *GormContactRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&partner.Contact{}).Where("active = ?", true),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters applies contact-specific filter keys to the query
func (r *GormContactRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "contact_type":
			query = query.Where("contact_type = ?", value)
		case "name":
			query = query.Where("name LIKE ?", "%"+value.(string)+"%")
		}
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormContactRepository implements ContactRepository
var _ partner.ContactRepository = (*GormContactRepository)(nil)
