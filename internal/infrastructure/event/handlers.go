package event

import (
	"context"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockAlertHandler logs a warning whenever stock falls to or below the
// reorder level. Replenishment stays a human decision; the handler only
// makes the condition visible.
type LowStockAlertHandler struct {
	logger *zap.Logger
}

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowReorder}
}

// Handle processes a domain event
func (h *LowStockAlertHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	e, ok := evt.(*inventory.StockBelowReorderEvent)
	if !ok {
		return nil
	}
	h.logger.Warn("stock at or below reorder level",
		zap.String("product_id", e.ProductID.String()),
		zap.String("current_stock", e.CurrentStock.String()),
		zap.String("reorder_level", e.ReorderLevel.String()),
	)
	return nil
}

// AuditLogHandler writes every domain event to the structured log. It
// subscribes as a wildcard handler.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

/// EventTypes returns an empty slice: this handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle processes a domain event
func (h *AuditLogHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()),
	)
	return nil
}

// Interface conformance
var (
	_ shared.EventHandler = (*LowStockAlertHandler)(nil)
	_ shared.EventHandler = (*AuditLogHandler)(nil)
)
