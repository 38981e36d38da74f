package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSalesOrder(t *testing.T) *SalesOrder {
	o, err := NewSalesOrder("SO000001", uuid.New(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func createConfirmedSalesOrder(t *testing.T) *SalesOrder {
	o := createTestSalesOrder(t)
	_, err := o.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(25))
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(SalesOrderStatusConfirmed))
	return o
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		o := createTestSalesOrder(t)

		assert.Equal(t, SalesOrderStatusDraft, o.Status)
		assert.True(t, o.TotalAmount.IsZero())
		assert.Empty(t, o.Items)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewSalesOrder("", uuid.New(), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil contact", func(t *testing.T) {
		_, err := NewSalesOrder("SO000002", uuid.Nil, time.Now())
		assert.Error(t, err)
	})
}

func TestSalesOrder_AddItem(t *testing.T) {
	o := createTestSalesOrder(t)

	item, err := o.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(250)))

	_, err = o.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(2), decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(450)))

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := o.AddItem(uuid.New(), "Bad", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := o.AddItem(uuid.New(), "Bad", decimal.NewFromInt(1), decimal.NewFromInt(-5))
		assert.Error(t, err)
	})
}

func TestSalesOrder_RemoveItem(t *testing.T) {
	o := createTestSalesOrder(t)
	item, err := o.AddItem(uuid.New(), "Widget", decimal.NewFromInt(4), decimal.NewFromInt(50))
	require.NoError(t, err)
	itemID := item.ID

	require.NoError(t, o.RemoveItem(itemID))
	assert.Empty(t, o.Items)
	assert.True(t, o.TotalAmount.IsZero())

	assert.Error(t, o.RemoveItem(itemID))
}

func TestSalesOrder_ItemsLockedAfterConfirm(t *testing.T) {
	o := createConfirmedSalesOrder(t)

	_, err := o.AddItem(uuid.New(), "Late addition", decimal.NewFromInt(1), decimal.NewFromInt(10))
	assert.Error(t, err)

	err = o.RemoveItem(o.Items[0].ID)
	assert.Error(t, err)
}

func TestSalesOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    SalesOrderStatus
		to      SalesOrderStatus
		allowed bool
	}{
		{"draft to confirmed", SalesOrderStatusDraft, SalesOrderStatusConfirmed, true},
		{"draft cannot skip to ready", SalesOrderStatusDraft, SalesOrderStatusReadyToShip, false},
		{"draft cannot skip to partial", SalesOrderStatusDraft, SalesOrderStatusPartiallyDelivered, false},
		{"draft cannot skip to delivered", SalesOrderStatusDraft, SalesOrderStatusDelivered, false},
		{"confirmed to production", SalesOrderStatusConfirmed, SalesOrderStatusInProduction, true},
		{"confirmed skips to ready", SalesOrderStatusConfirmed, SalesOrderStatusReadyToShip, true},
		{"no backward move", SalesOrderStatusReadyToShip, SalesOrderStatusConfirmed, false},
		{"partial stays partial", SalesOrderStatusPartiallyDelivered, SalesOrderStatusPartiallyDelivered, true},
		{"partial to delivered", SalesOrderStatusPartiallyDelivered, SalesOrderStatusDelivered, true},
		{"cancel from draft", SalesOrderStatusDraft, SalesOrderStatusCancelled, true},
		{"cancel from partial", SalesOrderStatusPartiallyDelivered, SalesOrderStatusCancelled, true},
		{"delivered is terminal", SalesOrderStatusDelivered, SalesOrderStatusCancelled, false},
		{"cancelled is terminal", SalesOrderStatusCancelled, SalesOrderStatusConfirmed, false},
		{"invalid target", SalesOrderStatusDraft, SalesOrderStatus("SHIPPED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSalesOrder_TransitionTo(t *testing.T) {
	t.Run("confirm requires items", func(t *testing.T) {
		o := createTestSalesOrder(t)
		err := o.TransitionTo(SalesOrderStatusConfirmed)
		assert.Error(t, err)
	})

	t.Run("emits status changed event", func(t *testing.T) {
		o := createConfirmedSalesOrder(t)
		o.ClearDomainEvents()

		require.NoError(t, o.TransitionTo(SalesOrderStatusInProduction))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*SalesOrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, SalesOrderStatusConfirmed, evt.FromStatus)
		assert.Equal(t, SalesOrderStatusInProduction, evt.ToStatus)
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		o := createConfirmedSalesOrder(t)
		err := o.TransitionTo(SalesOrderStatusDraft)
		assert.Error(t, err)
	})
}

func TestSalesOrder_RecordDelivery(t *testing.T) {
	o := createConfirmedSalesOrder(t)
	itemID := o.Items[0].ID

	item, err := o.RecordDelivery(itemID, decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, item.DeliveredQuantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, item.RemainingQuantity().Equal(decimal.NewFromInt(6)))
	assert.False(t, o.IsFullyDelivered())

	_, err = o.RecordDelivery(itemID, decimal.NewFromInt(6))
	require.NoError(t, err)
	assert.True(t, o.IsFullyDelivered())

	t.Run("rejects over-delivery", func(t *testing.T) {
		o := createConfirmedSalesOrder(t)
		_, err := o.RecordDelivery(o.Items[0].ID, decimal.NewFromInt(11))
		require.Error(t, err)
		assert.True(t, o.Items[0].DeliveredQuantity.IsZero())
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		o := createConfirmedSalesOrder(t)
		_, err := o.RecordDelivery(uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := createConfirmedSalesOrder(t)
		_, err := o.RecordDelivery(o.Items[0].ID, decimal.Zero)
		assert.Error(t, err)
	})
}
