package trade

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByNumber finds a sales order by its number
	FindByNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindByContact finds sales orders for a contact
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)

	// FindByStatus finds sales orders in a status
	FindByStatus(ctx context.Context, status SalesOrderStatus, filter shared.Filter) ([]SalesOrder, error)

	// FindAll finds sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order with its items
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	// Delete deletes a sales order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByNumber finds a purchase order by its number
	FindByNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindByContact finds purchase orders for a contact
	FindByContact(ctx context.Context, contactID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in a status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// Delete deletes a purchase order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
