package persistence

import (
	"context"
	"testing"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStockRecordRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ctx := context.Background()
	productID := uuid.New()

	created, err := repo.GetOrCreate(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, productID, created.ProductID)
	assert.True(t, created.CurrentStock.IsZero())

	// Second call returns the existing record
	again, err := repo.GetOrCreate(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormStockRecordRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ctx := context.Background()

	record, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, record.ApplyMovement(inventory.TransactionTypePurchase, decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(100)))
	require.NoError(t, repo.SaveWithLock(ctx, record))

	loaded, err := repo.FindByProductID(ctx, record.ProductID)
	require.NoError(t, err)
	assert.True(t, loaded.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, record.Version, loaded.Version)

	t.Run("several mutations save in one write", func(t *testing.T) {
		// A delivery releases the reservation and books the movement,
		// bumping the version twice between load and save
		require.NoError(t, loaded.Reserve(decimal.NewFromInt(4)))
		loaded.Release(decimal.NewFromInt(4))
		require.NoError(t, loaded.ApplyMovement(inventory.TransactionTypeSale, decimal.NewFromInt(4), valueobject.NewMoneyUSDFromFloat(100)))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		after, err := repo.FindByProductID(ctx, loaded.ProductID)
		require.NoError(t, err)
		assert.True(t, after.CurrentStock.Equal(decimal.NewFromInt(6)))
	})

	t.Run("stale copy is rejected", func(t *testing.T) {
		first, err := repo.FindByProductID(ctx, record.ProductID)
		require.NoError(t, err)
		second, err := repo.FindByProductID(ctx, record.ProductID)
		require.NoError(t, err)

		require.NoError(t, first.ApplyMovement(inventory.TransactionTypePurchase, decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(10)))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.ApplyMovement(inventory.TransactionTypePurchase, decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(10)))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormStockRecordRepository_FindBelowReorderLevel(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ctx := context.Background()

	low, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)
	require.NoError(t, low.ApplyMovement(inventory.TransactionTypePurchase, decimal.NewFromInt(2), valueobject.NewMoneyUSDFromFloat(10)))
	require.NoError(t, low.SetThresholds(decimal.Zero, decimal.Zero, decimal.NewFromInt(5)))
	require.NoError(t, repo.SaveWithLock(ctx, low))

	healthy, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)
	require.NoError(t, healthy.ApplyMovement(inventory.TransactionTypePurchase, decimal.NewFromInt(50), valueobject.NewMoneyUSDFromFloat(10)))
	require.NoError(t, healthy.SetThresholds(decimal.Zero, decimal.Zero, decimal.NewFromInt(5)))
	require.NoError(t, repo.SaveWithLock(ctx, healthy))

	records, err := repo.FindBelowReorderLevel(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, low.ProductID, records[0].ProductID)
}

func TestGormStockTransactionRepository_FindByDocument(t *testing.T) {
	db := setupTestDB(t)
	stockRepo := NewGormStockRecordRepository(db)
	txRepo := NewGormStockTransactionRepository(db)
	ctx := context.Background()

	record, err := stockRepo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	orderID := uuid.New()
	tx, err := inventory.NewStockTransaction(
		record.ID, record.ProductID, inventory.TransactionTypeSale,
		decimal.NewFromInt(3), decimal.NewFromInt(25), decimal.Zero,
		decimal.NewFromInt(10), decimal.NewFromInt(7),
	)
	require.NoError(t, err)
	tx.WithDocumentRef("SALES_ORDER", orderID, "SO000001")
	require.NoError(t, txRepo.Create(ctx, tx))

	found, err := txRepo.FindByDocument(ctx, "SALES_ORDER", orderID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SO000001", found[0].DocumentRef.DocumentNumber)

	none, err := txRepo.FindByDocument(ctx, "PURCHASE_ORDER", orderID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
