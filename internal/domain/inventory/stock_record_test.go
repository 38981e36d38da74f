package inventory

import (
	"testing"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStockRecord(t *testing.T) *StockRecord {
	record, err := NewStockRecord(uuid.New())
	require.NoError(t, err)
	require.NotNil(t, record)
	return record
}

func money(amount float64) valueobject.Money {
	return valueobject.NewMoneyUSDFromFloat(amount)
}

func TestNewStockRecord(t *testing.T) {
	t.Run("creates empty record", func(t *testing.T) {
		record := createTestStockRecord(t)

		assert.True(t, record.CurrentStock.IsZero())
		assert.True(t, record.ReservedStock.IsZero())
		assert.True(t, record.AverageCost.IsZero())
		assert.True(t, record.TotalValue.IsZero())
		assert.Equal(t, 1, record.GetVersion())
	})

	t.Run("rejects nil product", func(t *testing.T) {
		record, err := NewStockRecord(uuid.Nil)

		assert.Nil(t, record)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
	})
}

func TestStockRecord_WeightedAverageCost(t *testing.T) {
	record := createTestStockRecord(t)

	// First purchase sets the cost outright
	err := record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100))
	require.NoError(t, err)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, record.TotalValue.Equal(decimal.NewFromInt(1000)))

	// Second purchase at a higher price blends the average
	err = record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(200))
	require.NoError(t, err)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(20)))
	assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(150)))
	assert.True(t, record.TotalValue.Equal(decimal.NewFromInt(3000)))

	// Consumption leaves the average cost unchanged
	err = record.ApplyMovement(TransactionTypeSale, decimal.NewFromInt(5), money(0))
	require.NoError(t, err)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(15)))
	assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(150)))
	assert.True(t, record.TotalValue.Equal(decimal.NewFromInt(2250)))
}

func TestStockRecord_ApplyMovement(t *testing.T) {
	t.Run("opening resets stock and cost", func(t *testing.T) {
		record := createTestStockRecord(t)
		require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))

		err := record.ApplyMovement(TransactionTypeOpening, decimal.NewFromInt(3), money(40))
		require.NoError(t, err)

		assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(3)))
		assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(40)))
		assert.True(t, record.TotalValue.Equal(decimal.NewFromInt(120)))
	})

	t.Run("return blends cost like purchase", func(t *testing.T) {
		record := createTestStockRecord(t)
		require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))

		err := record.ApplyMovement(TransactionTypeReturn, decimal.NewFromInt(10), money(200))
		require.NoError(t, err)
		assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(150)))
	})

	t.Run("positive adjustment blends, negative consumes", func(t *testing.T) {
		record := createTestStockRecord(t)
		require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))

		require.NoError(t, record.ApplyMovement(TransactionTypeAdjustment, decimal.NewFromInt(10), money(200)))
		assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(150)))
		assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(20)))

		require.NoError(t, record.ApplyMovement(TransactionTypeAdjustment, decimal.NewFromInt(-5), money(0)))
		assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(15)))
		assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(150)))
	})

	t.Run("outbound exceeding stock fails without mutation", func(t *testing.T) {
		record := createTestStockRecord(t)
		require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(5), money(100)))

		err := record.ApplyMovement(TransactionTypeSale, decimal.NewFromInt(6), money(0))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(5)))
		assert.True(t, record.TotalValue.Equal(decimal.NewFromInt(500)))
	})

	t.Run("damage and transfer consume stock", func(t *testing.T) {
		record := createTestStockRecord(t)
		require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))

		require.NoError(t, record.ApplyMovement(TransactionTypeDamage, decimal.NewFromInt(2), money(0)))
		require.NoError(t, record.ApplyMovement(TransactionTypeTransfer, decimal.NewFromInt(3), money(0)))
		assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		record := createTestStockRecord(t)

		err := record.ApplyMovement(TransactionTypePurchase, decimal.Zero, money(100))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("rejects negative quantity for typed movement", func(t *testing.T) {
		record := createTestStockRecord(t)

		err := record.ApplyMovement(TransactionTypeSale, decimal.NewFromInt(-1), money(0))
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		record := createTestStockRecord(t)

		err := record.ApplyMovement(TransactionType("BOGUS"), decimal.NewFromInt(1), money(1))
		assert.Error(t, err)
	})
}

func TestStockRecord_ReserveAndRelease(t *testing.T) {
	record := createTestStockRecord(t)
	require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))

	// Reserve within available
	require.NoError(t, record.Reserve(decimal.NewFromInt(4)))
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(4)))
	assert.True(t, record.AvailableStock().Equal(decimal.NewFromInt(6)))

	// Reserving more than available fails and leaves state unchanged
	err := record.Reserve(decimal.NewFromInt(7))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_AVAILABLE_STOCK", domainErr.Code)
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(4)))
	assert.True(t, record.AvailableStock().Equal(decimal.NewFromInt(6)))

	// Release part of the reservation
	released := record.Release(decimal.NewFromInt(2))
	assert.True(t, released.Equal(decimal.NewFromInt(2)))
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(2)))
	assert.True(t, record.AvailableStock().Equal(decimal.NewFromInt(8)))
}

func TestStockRecord_ReleaseClamps(t *testing.T) {
	record := createTestStockRecord(t)
	require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))
	require.NoError(t, record.Reserve(decimal.NewFromInt(3)))

	// Releasing more than reserved clamps to the reserved quantity
	released := record.Release(decimal.NewFromInt(10))
	assert.True(t, released.Equal(decimal.NewFromInt(3)))
	assert.True(t, record.ReservedStock.IsZero())

	// Releasing with nothing reserved is a no-op
	released = record.Release(decimal.NewFromInt(1))
	assert.True(t, released.IsZero())
}

func TestStockRecord_Status(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		min      int64
		max      int64
		reorder  int64
		expected StockStatus
	}{
		{"out of stock", 0, 5, 100, 10, StockStatusOutOfStock},
		{"low stock wins over reorder", 4, 5, 100, 10, StockStatusLowStock},
		{"over stock", 100, 5, 100, 10, StockStatusOverStock},
		{"reorder required", 8, 5, 100, 10, StockStatusReorderRequired},
		{"in stock", 50, 5, 100, 10, StockStatusInStock},
		{"no thresholds", 50, 0, 0, 0, StockStatusInStock},
		{"max ignored when zero", 50, 5, 0, 10, StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := createTestStockRecord(t)
			record.CurrentStock = decimal.NewFromInt(tt.current)
			record.MinimumStock = decimal.NewFromInt(tt.min)
			record.MaximumStock = decimal.NewFromInt(tt.max)
			record.ReorderLevel = decimal.NewFromInt(tt.reorder)

			assert.Equal(t, tt.expected, record.Status())
		})
	}
}

func TestStockRecord_SetThresholds(t *testing.T) {
	record := createTestStockRecord(t)

	require.NoError(t, record.SetThresholds(decimal.NewFromInt(5), decimal.NewFromInt(100), decimal.NewFromInt(10)))
	assert.True(t, record.MinimumStock.Equal(decimal.NewFromInt(5)))

	err := record.SetThresholds(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	err = record.SetThresholds(decimal.NewFromInt(20), decimal.NewFromInt(10), decimal.Zero)
	assert.Error(t, err)
}

func TestStockRecord_Events(t *testing.T) {
	record := createTestStockRecord(t)

	require.NoError(t, record.ApplyMovement(TransactionTypePurchase, decimal.NewFromInt(10), money(100)))
	require.NoError(t, record.Reserve(decimal.NewFromInt(2)))
	record.Release(decimal.NewFromInt(1))

	types := make([]string, 0)
	for _, evt := range record.GetDomainEvents() {
		types = append(types, evt.EventType())
	}
	assert.Contains(t, types, EventTypeStockIncreased)
	assert.Contains(t, types, EventTypeAverageCostChanged)
	assert.Contains(t, types, EventTypeStockReserved)
	assert.Contains(t, types, EventTypeStockReleased)

	record.ClearDomainEvents()
	assert.Empty(t, record.GetDomainEvents())
}

func TestTransactionType(t *testing.T) {
	assert.True(t, TransactionTypePurchase.IsInbound())
	assert.True(t, TransactionTypeReturn.IsInbound())
	assert.True(t, TransactionTypeSale.IsOutbound())
	assert.True(t, TransactionTypeDamage.IsOutbound())
	assert.True(t, TransactionTypeTransfer.IsOutbound())
	assert.False(t, TransactionTypeAdjustment.IsInbound())
	assert.False(t, TransactionTypeAdjustment.IsOutbound())
	assert.False(t, TransactionType("BOGUS").IsValid())
}

func TestNewStockTransaction(t *testing.T) {
	t.Run("creates valid transaction", func(t *testing.T) {
		tx, err := NewStockTransaction(
			uuid.New(), uuid.New(),
			TransactionTypePurchase,
			decimal.NewFromInt(10), decimal.NewFromInt(100),
			decimal.NewFromInt(1000),
			decimal.Zero, decimal.NewFromInt(10),
		)
		require.NoError(t, err)
		assert.True(t, tx.QuantityChange().Equal(decimal.NewFromInt(10)))
		assert.True(t, tx.IsIncrease())
	})

	t.Run("chainable setters", func(t *testing.T) {
		docID := uuid.New()
		operatorID := uuid.New()
		tx, err := NewStockTransaction(
			uuid.New(), uuid.New(),
			TransactionTypeSale,
			decimal.NewFromInt(-5), decimal.NewFromInt(150),
			decimal.NewFromInt(750),
			decimal.NewFromInt(10), decimal.NewFromInt(5),
		)
		require.NoError(t, err)

		tx.WithDocumentRef("SALES_ORDER", docID, "SO000042").
			WithNote("partial delivery").
			WithOperatorID(operatorID)

		assert.Equal(t, "SALES_ORDER", tx.DocumentRef.DocumentType)
		assert.Equal(t, docID, *tx.DocumentRef.DocumentID)
		assert.Equal(t, "SO000042", tx.DocumentRef.DocumentNumber)
		assert.Equal(t, operatorID, *tx.OperatorID)
		assert.False(t, tx.IsIncrease())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockTransaction(
			uuid.New(), uuid.New(),
			TransactionTypePurchase,
			decimal.Zero, decimal.NewFromInt(100),
			decimal.Zero, decimal.Zero, decimal.Zero,
		)
		assert.Error(t, err)
	})
}
