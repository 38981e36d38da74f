package inventory

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStockRecord = "StockRecord"

// Event type constants
const (
	EventTypeStockIncreased     = "StockIncreased"
	EventTypeStockDecreased     = "StockDecreased"
	EventTypeStockReserved      = "StockReserved"
	EventTypeStockReleased      = "StockReleased"
	EventTypeAverageCostChanged = "AverageCostChanged"
	EventTypeStockBelowReorder  = "StockBelowReorder"
)

// StockIncreasedEvent is raised when a movement adds stock
type StockIncreasedEvent struct {
	shared.BaseDomainEvent
	StockRecordID   uuid.UUID       `json:"stock_record_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// NewStockIncreasedEvent creates a new StockIncreasedEvent
func NewStockIncreasedEvent(record *StockRecord, txType TransactionType, quantity, unitPrice decimal.Decimal) *StockIncreasedEvent {
	return &StockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIncreased, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		TransactionType: txType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
	}
}

// EventType returns the event type name
func (e *StockIncreasedEvent) EventType() string {
	return EventTypeStockIncreased
}

// StockDecreasedEvent is raised when a movement removes stock
type StockDecreasedEvent struct {
	shared.BaseDomainEvent
	StockRecordID   uuid.UUID       `json:"stock_record_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// NewStockDecreasedEvent creates a new StockDecreasedEvent
func NewStockDecreasedEvent(record *StockRecord, txType TransactionType, quantity decimal.Decimal) *StockDecreasedEvent {
	return &StockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecreased, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		TransactionType: txType,
		Quantity:        quantity,
		UnitCost:        record.AverageCost,
	}
}

// EventType returns the event type name
func (e *StockDecreasedEvent) EventType() string {
	return EventTypeStockDecreased
}

// StockReservedEvent is raised when available stock is reserved for an order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(record *StockRecord, quantity decimal.Decimal) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Quantity:        quantity,
	}
}

// EventType returns the event type name
func (e *StockReservedEvent) EventType() string {
	return EventTypeStockReserved
}

// StockReleasedEvent is raised when reserved stock is released back to available
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(record *StockRecord, quantity decimal.Decimal) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Quantity:        quantity,
	}
}

// EventType returns the event type name
func (e *StockReleasedEvent) EventType() string {
	return EventTypeStockReleased
}

// AverageCostChangedEvent is raised when an inbound movement changes the weighted average cost
type AverageCostChangedEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	OldCost       decimal.Decimal `json:"old_cost"`
	NewCost       decimal.Decimal `json:"new_cost"`
}

// NewAverageCostChangedEvent creates a new AverageCostChangedEvent
func NewAverageCostChangedEvent(record *StockRecord, oldCost, newCost decimal.Decimal) *AverageCostChangedEvent {
	return &AverageCostChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAverageCostChanged, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		OldCost:         oldCost,
		NewCost:         newCost,
	}
}

// EventType returns the event type name
func (e *AverageCostChangedEvent) EventType() string {
	return EventTypeAverageCostChanged
}

// StockBelowReorderEvent is raised when stock falls to or below the reorder level
type StockBelowReorderEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
}

// NewStockBelowReorderEvent creates a new StockBelowReorderEvent
func NewStockBelowReorderEvent(record *StockRecord) *StockBelowReorderEvent {
	return &StockBelowReorderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowReorder, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		CurrentStock:    record.CurrentStock,
		ReorderLevel:    record.ReorderLevel,
	}
}

// EventType returns the event type name
func (e *StockBelowReorderEvent) EventType() string {
	return EventTypeStockBelowReorder
}
