package persistence

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	order.SyncPersistedVersion()
	return &order, nil
}

// FindByNumber finds a sales order by its number
func (r *GormSalesOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	order.SyncPersistedVersion()
	return &order, nil
}

// FindByContact finds sales orders for a contact
func (r *GormSalesOrderRepository) FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.db.WithContext(ctx).Model(&trade.SalesOrder{}).
		Where("contact_id = ?", contactID)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds sales orders in a status
func (r *GormSalesOrderRepository) FindByStatus(ctx context.Context, status trade.SalesOrderStatus, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.db.WithContext(ctx).Model(&trade.SalesOrder{}).
		Where("status = ?", status)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds sales orders matching the filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	query = applyPagination(query, filter, "created_at DESC")

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a sales order with its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		return r.replaceItems(tx, order)
	})
	if err != nil {
		return err
	}
	order.SyncPersistedVersion()
	return nil
}

// SaveWithLock saves with optimistic locking: the write matches the version
// as loaded, not the in-memory counter, so a delivery (per-line updates plus
// a status change) can advance the version more than once before saving
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(order).
			Where("id = ? AND version = ?", order.ID, order.PersistedVersion()).
			Updates(map[string]interface{}{
				"status":       order.Status,
				"total_amount": order.TotalAmount,
				"notes":        order.Notes,
				"version":      order.Version,
				"updated_at":   order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return r.replaceItems(tx, order)
	})
	if err != nil {
		return err
	}
	order.SyncPersistedVersion()
	return nil
}

// replaceItems rewrites the order's items to match the aggregate
func (r *GormSalesOrderRepository) replaceItems(tx *gorm.DB, order *trade.SalesOrder) error {
	if err := tx.Where("order_id = ?", order.ID).Delete(&trade.SalesOrderItem{}).Error; err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return nil
	}
	return tx.Create(&order.Items).Error
}

// Delete deletes a sales order
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.SalesOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SalesOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilters applies order-specific filter keys to the query
func (r *GormSalesOrderRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
