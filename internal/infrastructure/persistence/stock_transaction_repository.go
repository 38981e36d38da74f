package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements the append-only movement log
// using GORM. Rows are never updated or deleted.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByStockRecord finds transactions for a stock record
func (r *GormStockTransactionRepository) FindByStockRecord(ctx context.Context, stockRecordID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("stock_record_id = ?", stockRecordID)
	query = applyPagination(query, filter, "transaction_date DESC")

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByProduct finds transactions for a product
func (r *GormStockTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID)
	query = applyPagination(query, filter, "transaction_date DESC")

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByDocument finds transactions originated by a document
func (r *GormStockTransactionRepository) FindByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", documentType, documentID).
		Order("transaction_date ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByDateRange finds transactions within a date range
func (r *GormStockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
		Where("transaction_date >= ? AND transaction_date <= ?", start, end)
	query = applyPagination(query, filter, "transaction_date DESC")

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create appends a new transaction
func (r *GormStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// CreateBatch appends multiple transactions
func (r *GormStockTransactionRepository) CreateBatch(ctx context.Context, txs []*inventory.StockTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(txs).Error
}

// CountByProduct counts transactions for a product
func (r *GormStockTransactionRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
