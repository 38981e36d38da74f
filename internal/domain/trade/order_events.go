package trade

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeSalesOrder    = "SalesOrder"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event type constants
const (
	EventTypeSalesOrderStatusChanged    = "SalesOrderStatusChanged"
	EventTypePurchaseOrderStatusChanged = "PurchaseOrderStatusChanged"
)

// SalesOrderStatusChangedEvent is raised on every sales order transition
type SalesOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID        `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	FromStatus  SalesOrderStatus `json:"from_status"`
	ToStatus    SalesOrderStatus `json:"to_status"`
}

// NewSalesOrderStatusChangedEvent creates a new SalesOrderStatusChangedEvent
func NewSalesOrderStatusChangedEvent(o *SalesOrder, from, to SalesOrderStatus) *SalesOrderStatusChangedEvent {
	return &SalesOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderStatusChanged, AggregateTypeSalesOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// EventType returns the event type name
func (e *SalesOrderStatusChangedEvent) EventType() string {
	return EventTypeSalesOrderStatusChanged
}

// PurchaseOrderStatusChangedEvent is raised on every purchase order transition
type PurchaseOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID           `json:"order_id"`
	OrderNumber string              `json:"order_number"`
	FromStatus  PurchaseOrderStatus `json:"from_status"`
	ToStatus    PurchaseOrderStatus `json:"to_status"`
}

// NewPurchaseOrderStatusChangedEvent creates a new PurchaseOrderStatusChangedEvent
func NewPurchaseOrderStatusChangedEvent(o *PurchaseOrder, from, to PurchaseOrderStatus) *PurchaseOrderStatusChangedEvent {
	return &PurchaseOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderStatusChanged, AggregateTypePurchaseOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderStatusChangedEvent) EventType() string {
	return EventTypePurchaseOrderStatusChanged
}
