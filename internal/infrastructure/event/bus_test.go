package event

import (
	"context"
	"errors"
	"testing"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.received = append(h.received, evt)
	return h.err
}

func testEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "StockRecord", uuid.New())
	return &evt
}

func TestInMemoryEventBus_TypedSubscription(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	typed := &recordingHandler{types: []string{inventory.EventTypeStockIncreased}}
	bus.Subscribe(typed)

	require.NoError(t, bus.Publish(context.Background(),
		testEvent(inventory.EventTypeStockIncreased),
		testEvent(inventory.EventTypeStockDecreased),
	))

	require.Len(t, typed.received, 1)
	assert.Equal(t, inventory.EventTypeStockIncreased, typed.received[0].EventType())
}

func TestInMemoryEventBus_WildcardSubscription(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := &recordingHandler{}
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(),
		testEvent(inventory.EventTypeStockIncreased),
		testEvent(inventory.EventTypeStockReserved),
	))

	assert.Len(t, wildcard.received, 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{err: errors.New("boom")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, inventory.EventTypeStockIncreased)
	bus.Subscribe(healthy, inventory.EventTypeStockIncreased)

	require.NoError(t, bus.Publish(context.Background(), testEvent(inventory.EventTypeStockIncreased)))

	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := &recordingHandler{types: []string{inventory.EventTypeStockIncreased}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent(inventory.EventTypeStockIncreased)))

	assert.Empty(t, handler.received)
}

func TestLowStockAlertHandler(t *testing.T) {
	handler := NewLowStockAlertHandler(zap.NewNop())

	assert.Equal(t, []string{inventory.EventTypeStockBelowReorder}, handler.EventTypes())

	// Non-matching event types are ignored without error
	require.NoError(t, handler.Handle(context.Background(), testEvent(inventory.EventTypeStockIncreased)))
}
