package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStockRepo is an in-memory StockRecordRepository for service tests
type fakeStockRepo struct {
	records map[uuid.UUID]*inventory.StockRecord // keyed by product ID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[uuid.UUID]*inventory.StockRecord)}
}

func (r *fakeStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockRepo) FindByProductID(_ context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	rec, ok := r.records[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *fakeStockRepo) FindByProductIDs(_ context.Context, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	for _, id := range productIDs {
		if rec, ok := r.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeStockRepo) FindBelowReorderLevel(_ context.Context, _ shared.Filter) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	for _, rec := range r.records {
		if rec.ReorderLevel.IsPositive() && rec.CurrentStock.LessThanOrEqual(rec.ReorderLevel) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) GetOrCreate(_ context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	if rec, ok := r.records[productID]; ok {
		return rec, nil
	}
	rec, err := inventory.NewStockRecord(productID)
	if err != nil {
		return nil, err
	}
	r.records[productID] = rec
	return rec, nil
}

func (r *fakeStockRepo) Save(_ context.Context, record *inventory.StockRecord) error {
	r.records[record.ProductID] = record
	return nil
}

func (r *fakeStockRepo) SaveWithLock(_ context.Context, record *inventory.StockRecord) error {
	r.records[record.ProductID] = record
	return nil
}

func (r *fakeStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	for pid, rec := range r.records {
		if rec.ID == id {
			delete(r.records, pid)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeStockRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.records)), nil
}

// fakeTransactionRepo is an in-memory append-only StockTransactionRepository
type fakeTransactionRepo struct {
	txs []*inventory.StockTransaction
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	for _, tx := range r.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTransactionRepo) FindByStockRecord(_ context.Context, stockRecordID uuid.UUID, _ shared.Filter) ([]inventory.StockTransaction, error) {
	var out []inventory.StockTransaction
	for _, tx := range r.txs {
		if tx.StockRecordID == stockRecordID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.StockTransaction, error) {
	var out []inventory.StockTransaction
	for _, tx := range r.txs {
		if tx.ProductID == productID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByDocument(_ context.Context, documentType string, documentID uuid.UUID) ([]inventory.StockTransaction, error) {
	var out []inventory.StockTransaction
	for _, tx := range r.txs {
		if tx.DocumentRef.DocumentType == documentType && tx.DocumentRef.DocumentID != nil && *tx.DocumentRef.DocumentID == documentID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByDateRange(_ context.Context, start, end time.Time, _ shared.Filter) ([]inventory.StockTransaction, error) {
	var out []inventory.StockTransaction
	for _, tx := range r.txs {
		if !tx.TransactionDate.Before(start) && !tx.TransactionDate.After(end) {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *inventory.StockTransaction) error {
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeTransactionRepo) CreateBatch(_ context.Context, txs []*inventory.StockTransaction) error {
	r.txs = append(r.txs, txs...)
	return nil
}

func (r *fakeTransactionRepo) CountByProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	for _, tx := range r.txs {
		if tx.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func setupStockService() (*StockService, *fakeStockRepo, *fakeTransactionRepo) {
	stockRepo := newFakeStockRepo()
	txRepo := &fakeTransactionRepo{}
	return NewStockService(stockRepo, txRepo), stockRepo, txRepo
}

func TestStockService_ApplyTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("purchase creates record and movement", func(t *testing.T) {
		svc, _, txRepo := setupStockService()
		productID := uuid.New()

		resp, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID:       productID,
			TransactionType: "PURCHASE",
			Quantity:        decimal.NewFromInt(10),
			UnitPrice:       decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		assert.True(t, resp.CurrentStock.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.AverageCost.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(1000)))

		require.Len(t, txRepo.txs, 1)
		tx := txRepo.txs[0]
		assert.True(t, tx.BalanceBefore.IsZero())
		assert.True(t, tx.BalanceAfter.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, inventory.TransactionTypePurchase, tx.TransactionType)
	})

	t.Run("sequence of movements keeps weighted average", func(t *testing.T) {
		svc, _, _ := setupStockService()
		productID := uuid.New()

		_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID: productID, TransactionType: "PURCHASE",
			Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		_, err = svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID: productID, TransactionType: "PURCHASE",
			Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(200),
		})
		require.NoError(t, err)

		resp, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID: productID, TransactionType: "SALE",
			Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(300),
		})
		require.NoError(t, err)

		// Consumption never changes the average cost
		assert.True(t, resp.AverageCost.Equal(decimal.NewFromInt(150)))
		assert.True(t, resp.CurrentStock.Equal(decimal.NewFromInt(15)))
		assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(2250)))
	})

	t.Run("insufficient stock rejected without movement record", func(t *testing.T) {
		svc, _, txRepo := setupStockService()
		productID := uuid.New()

		_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID: productID, TransactionType: "SALE",
			Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Empty(t, txRepo.txs)
	})

	t.Run("invalid transaction type rejected", func(t *testing.T) {
		svc, _, _ := setupStockService()

		_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID: uuid.New(), TransactionType: "THEFT",
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1),
		})
		assert.Error(t, err)
	})

	t.Run("movement carries document reference", func(t *testing.T) {
		svc, _, txRepo := setupStockService()
		docID := uuid.New()

		_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
			ProductID:       uuid.New(),
			TransactionType: "PURCHASE",
			Quantity:        decimal.NewFromInt(3),
			UnitPrice:       decimal.NewFromInt(7),
			DocumentType:    "PURCHASE_ORDER",
			DocumentID:      &docID,
			DocumentNumber:  "PO000001",
		})
		require.NoError(t, err)

		require.Len(t, txRepo.txs, 1)
		assert.Equal(t, "PURCHASE_ORDER", txRepo.txs[0].DocumentRef.DocumentType)
		assert.Equal(t, docID, *txRepo.txs[0].DocumentRef.DocumentID)
	})
}

func TestStockService_ReserveAndRelease(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupStockService()
	productID := uuid.New()

	_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
		ProductID: productID, TransactionType: "PURCHASE",
		Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	resp, err := svc.Reserve(ctx, ReserveStockRequest{ProductID: productID, Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)
	assert.True(t, resp.ReservedStock.Equal(decimal.NewFromInt(4)))
	assert.True(t, resp.AvailableStock.Equal(decimal.NewFromInt(6)))

	// Over-reserving fails and leaves the record unchanged
	_, err = svc.Reserve(ctx, ReserveStockRequest{ProductID: productID, Quantity: decimal.NewFromInt(7)})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientAvailableStock)

	// Releasing more than reserved clamps at zero
	rel, err := svc.Release(ctx, ReleaseStockRequest{ProductID: productID, Quantity: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, rel.ReleasedQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, rel.ReservedStock.IsZero())

	// Reserving on an unknown product is not found
	_, err = svc.Reserve(ctx, ReserveStockRequest{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStockService_SetThresholds(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupStockService()
	productID := uuid.New()

	min := decimal.NewFromInt(5)
	reorder := decimal.NewFromInt(8)
	resp, err := svc.SetThresholds(ctx, SetThresholdsRequest{
		ProductID:    productID,
		MinimumStock: &min,
		ReorderLevel: &reorder,
	})
	require.NoError(t, err)
	assert.True(t, resp.MinimumStock.Equal(min))
	assert.True(t, resp.ReorderLevel.Equal(reorder))
	// Empty record with a positive minimum is out of stock first
	assert.Equal(t, inventory.StockStatusOutOfStock, resp.Status)
}

func TestStockService_GetTransactionsByDocument(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupStockService()
	docID := uuid.New()

	_, err := svc.ApplyTransaction(ctx, ApplyTransactionRequest{
		ProductID:       uuid.New(),
		TransactionType: "PURCHASE",
		Quantity:        decimal.NewFromInt(2),
		UnitPrice:       decimal.NewFromInt(5),
		DocumentType:    "PURCHASE_ORDER",
		DocumentID:      &docID,
	})
	require.NoError(t, err)

	txs, err := svc.GetTransactionsByDocument(ctx, "PURCHASE_ORDER", docID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	txs, err = svc.GetTransactionsByDocument(ctx, "INVOICE", docID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
