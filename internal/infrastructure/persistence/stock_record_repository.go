package persistence

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	record.SyncPersistedVersion()
	return &record, nil
}

// FindByProductID finds the stock record for a product
func (r *GormStockRecordRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	record.SyncPersistedVersion()
	return &record, nil
}

// FindByProductIDs finds stock records for multiple products
func (r *GormStockRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	if len(productIDs) == 0 {
		return []inventory.StockRecord{}, nil
	}

	var records []inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds stock records matching the filter
func (r *GormStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBelowReorderLevel finds records at or below their reorder level
func (r *GormStockRecordRepository) FindBelowReorderLevel(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
		Where("reorder_level > 0 AND current_stock <= reorder_level")
	query = applyPagination(query, filter, "current_stock ASC")

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetOrCreate gets the existing record for a product or creates an empty one
func (r *GormStockRecordRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	record, err := r.FindByProductID(ctx, productID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	record, err = inventory.NewStockRecord(productID)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT handles the race between concurrent creators
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return nil, result.Error
	}

	// Conflict: someone else created it first, fetch theirs
	if result.RowsAffected == 0 {
		return r.FindByProductID(ctx, productID)
	}

	record.SyncPersistedVersion()
	return record, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return err
	}
	record.SyncPersistedVersion()
	return nil
}

// SaveWithLock saves with optimistic locking: the write matches the version
// as loaded, not the in-memory counter, so one operation may apply several
// mutations before saving
func (r *GormStockRecordRepository) SaveWithLock(ctx context.Context, record *inventory.StockRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.PersistedVersion()).
		Updates(map[string]interface{}{
			"current_stock":  record.CurrentStock,
			"reserved_stock": record.ReservedStock,
			"average_cost":   record.AverageCost,
			"total_value":    record.TotalValue,
			"minimum_stock":  record.MinimumStock,
			"maximum_stock":  record.MaximumStock,
			"reorder_level":  record.ReorderLevel,
			"version":        record.Version,
			"updated_at":     record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	record.SyncPersistedVersion()
	return nil
}

// Delete deletes a stock record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts stock records matching the filter
func (r *GormStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters applies stock-specific filter keys to the query
func (r *GormStockRecordRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "below_reorder":
			if value == true {
				query = query.Where("reorder_level > 0 AND current_stock <= reorder_level")
			}
		case "has_stock":
			if value == true {
				query = query.Where("current_stock > 0")
			}
		case "no_stock":
			if value == true {
				query = query.Where("current_stock = 0 AND reserved_stock = 0")
			}
		}
	}
	return query
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
