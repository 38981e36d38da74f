package inventory

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByProductID finds the stock record for a product
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockRecord, error)

	// FindByProductIDs finds stock records for multiple products
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]StockRecord, error)

	// FindAll finds stock records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRecord, error)

	// FindBelowReorderLevel finds records at or below their reorder level
	FindBelowReorderLevel(ctx context.Context, filter shared.Filter) ([]StockRecord, error)

	// GetOrCreate gets the existing record for a product or creates an empty one
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*StockRecord, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, record *StockRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *StockRecord) error

	// Delete deletes a stock record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts stock records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockTransactionRepository defines the interface for the append-only movement log
type StockTransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)

	// FindByStockRecord finds transactions for a stock record
	FindByStockRecord(ctx context.Context, stockRecordID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)

	// FindByProduct finds transactions for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)

	// FindByDocument finds transactions originated by a document
	FindByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]StockTransaction, error)

	// FindByDateRange finds transactions within a date range
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]StockTransaction, error)

	// Create appends a new transaction (no update or delete is allowed)
	Create(ctx context.Context, tx *StockTransaction) error

	// CreateBatch appends multiple transactions
	CreateBatch(ctx context.Context, txs []*StockTransaction) error

	// CountByProduct counts transactions for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// StockFilter extends shared.Filter with stock-specific filters
type StockFilter struct {
	shared.Filter
	ProductID    *uuid.UUID
	Status       *StockStatus
	BelowReorder bool
	HasStock     bool
}

// TransactionFilter extends shared.Filter with movement-log filters
type TransactionFilter struct {
	shared.Filter
	ProductID       *uuid.UUID
	TransactionType *TransactionType
	DocumentType    string
	DocumentID      *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
}
