package persistence

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/settlement"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// All queries except FindByIDIncludingInactive exclude soft-deleted payments.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds an active payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Payment, error) {
	var payment settlement.Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").
		First(&payment, "id = ? AND active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	payment.SyncPersistedVersion()
	return &payment, nil
}

// FindByIDIncludingInactive finds a payment regardless of its active flag
func (r *GormPaymentRepository) FindByIDIncludingInactive(ctx context.Context, id uuid.UUID) (*settlement.Payment, error) {
	var payment settlement.Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").
		First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	payment.SyncPersistedVersion()
	return &payment, nil
}

// FindByNumber finds an active payment by its number
func (r *GormPaymentRepository) FindByNumber(ctx context.Context, paymentNumber string) (*settlement.Payment, error) {
	var payment settlement.Payment
	if err := r.db.WithContext(ctx).Preload("Allocations").
		First(&payment, "payment_number = ? AND active = ?", paymentNumber, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	payment.SyncPersistedVersion()
	return &payment, nil
}

// FindByContact finds active payments for a contact
func (r *GormPaymentRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]settlement.Payment, error) {
	var payments []settlement.Payment
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&settlement.Payment{}).
			Where("contact_id = ? AND active = ?", contactID, true),
		filter,
	)
	query = applyPagination(query, filter, "payment_date DESC")

	if err := query.Preload("Allocations").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByDocument finds active payments with an allocation to a document
func (r *GormPaymentRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]settlement.Payment, error) {
	var payments []settlement.Payment
	if err := r.db.WithContext(ctx).
		Joins("JOIN payment_allocations ON payment_allocations.payment_id = payments.id").
		Where("payment_allocations.document_id = ? AND payments.active = ?", documentID, true).
		Order("payments.payment_date ASC").
		Preload("Allocations").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByStatus finds active payments in a status
func (r *GormPaymentRepository) FindByStatus(ctx context.Context, status settlement.PaymentStatus, filter shared.Filter) ([]settlement.Payment, error) {
	var payments []settlement.Payment
	query := r.db.WithContext(ctx).Model(&settlement.Payment{}).
		Where("status = ? AND active = ?", status, true)
	query = applyPagination(query, filter, "payment_date DESC")

	if err := query.Preload("Allocations").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindAll finds active payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settlement.Payment, error) {
	var payments []settlement.Payment
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&settlement.Payment{}).Where("active = ?", true),
		filter,
	)
	query = applyPagination(query, filter, "payment_date DESC")

	if err := query.Preload("Allocations").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment with its allocations
func (r *GormPaymentRepository) Save(ctx context.Context, payment *settlement.Payment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations").Save(payment).Error; err != nil {
			return err
		}
		return r.replaceAllocations(tx, payment)
	})
	if err != nil {
		return err
	}
	payment.SyncPersistedVersion()
	return nil
}

// SaveWithLock saves with optimistic locking: the write matches the version
// as loaded, not the in-memory counter, so reallocation (clear + re-add)
// can advance the version more than once before saving.
// Allocations are fully replaced, reallocation rewrites the child rows.
func (r *GormPaymentRepository) SaveWithLock(ctx context.Context, payment *settlement.Payment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(payment).
			Where("id = ? AND version = ?", payment.ID, payment.PersistedVersion()).
			Updates(map[string]interface{}{
				"amount":                payment.Amount,
				"payment_date":          payment.PaymentDate,
				"method_method":         payment.Method.Method,
				"method_bank_name":      payment.Method.BankName,
				"method_account_number": payment.Method.AccountNumber,
				"method_check_number":   payment.Method.CheckNumber,
				"method_card_reference": payment.Method.CardReference,
				"total_allocated":       payment.TotalAllocated,
				"status":                payment.Status,
				"active":                payment.Active,
				"cleared_by":            payment.ClearedBy,
				"cleared_at":            payment.ClearedAt,
				"notes":                 payment.Notes,
				"version":               payment.Version,
				"updated_at":            payment.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.replaceAllocations(tx, payment)
	})
	if err != nil {
		return err
	}
	payment.SyncPersistedVersion()
	return nil
}

// replaceAllocations rewrites the payment's allocations to match the aggregate
func (r *GormPaymentRepository) replaceAllocations(tx *gorm.DB, payment *settlement.Payment) error {
	if err := tx.Where("payment_id = ?", payment.ID).Delete(&settlement.Allocation{}).Error; err != nil {
		return err
	}
	if len(payment.Allocations) == 0 {
		return nil
	}
	return tx.Create(&payment.Allocations).Error
}

// Count counts active payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(
		r.db.WithContext(ctx).Model(&settlement.Payment{}).Where("active = ?", true),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters applies payment-specific filter keys to the query
func (r *GormPaymentRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "direction":
			query = query.Where("direction = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "start_date":
			query = query.Where("payment_date >= ?", value)
		case "end_date":
			query = query.Where("payment_date <= ?", value)
		}
	}
	return query
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ settlement.PaymentRepository = (*GormPaymentRepository)(nil)
