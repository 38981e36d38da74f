package trade

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderStatus represents the fulfillment stage of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusDraft              SalesOrderStatus = "DRAFT"
	SalesOrderStatusConfirmed          SalesOrderStatus = "CONFIRMED"
	SalesOrderStatusInProduction       SalesOrderStatus = "IN_PRODUCTION"
	SalesOrderStatusReadyToShip        SalesOrderStatus = "READY_TO_SHIP"
	SalesOrderStatusPartiallyDelivered SalesOrderStatus = "PARTIALLY_DELIVERED"
	SalesOrderStatusDelivered          SalesOrderStatus = "DELIVERED"
	SalesOrderStatusCancelled          SalesOrderStatus = "CANCELLED"
)

// salesOrderStage orders the forward progression of the status machine
var salesOrderStage = map[SalesOrderStatus]int{
	SalesOrderStatusDraft:              0,
	SalesOrderStatusConfirmed:          1,
	SalesOrderStatusInProduction:       2,
	SalesOrderStatusReadyToShip:        3,
	SalesOrderStatusPartiallyDelivered: 4,
	SalesOrderStatusDelivered:          5,
}

// String returns the string representation of SalesOrderStatus
func (s SalesOrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s SalesOrderStatus) IsValid() bool {
	if s == SalesOrderStatusCancelled {
		return true
	}
	_, ok := salesOrderStage[s]
	return ok
}

// IsTerminal returns true if no further transitions are allowed
func (s SalesOrderStatus) IsTerminal() bool {
	return s == SalesOrderStatusDelivered || s == SalesOrderStatusCancelled
}

// CanTransitionTo returns true if the move is allowed. The machine only
// moves forward; Cancelled is reachable from any non-terminal state, and
// repeated partial deliveries stay in PartiallyDelivered. A Draft order
// must pass through Confirmed before any later stage.
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	if !target.IsValid() || s.IsTerminal() {
		return false
	}
	if target == SalesOrderStatusCancelled {
		return true
	}
	if s == SalesOrderStatusDraft {
		return target == SalesOrderStatusConfirmed
	}
	if s == SalesOrderStatusPartiallyDelivered && target == SalesOrderStatusPartiallyDelivered {
		return true
	}
	return salesOrderStage[target] > salesOrderStage[s]
}

// SalesOrderItem is one ordered product line with cumulative delivery tracking
type SalesOrderItem struct {
	shared.BaseEntity
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_order_item_order"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description       string          `gorm:"type:varchar(255)"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeliveredQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// RemainingQuantity returns the quantity ordered but not yet delivered
func (i *SalesOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.DeliveredQuantity)
}

// recordDelivery accumulates delivered quantity, capped at the ordered quantity
func (i *SalesOrderItem) recordDelivery(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Delivered quantity must be positive")
	}
	if quantity.GreaterThan(i.RemainingQuantity()) {
		return shared.NewDomainError("EXCEEDS_ORDERED", "Delivered quantity exceeds the remaining ordered quantity")
	}
	i.DeliveredQuantity = i.DeliveredQuantity.Add(quantity)
	return nil
}

// SalesOrder is a customer order whose confirmed lines reserve stock and
// whose deliveries consume it
type SalesOrder struct {
	shared.AuditedAggregateRoot
	OrderNumber string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_number"`
	ContactID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_sales_order_contact"`
	OrderDate   time.Time        `gorm:"not null"`
	Status      SalesOrderStatus `gorm:"type:varchar(25);not null;default:'DRAFT';index"`
	Items       []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new draft sales order
func NewSalesOrder(orderNumber string, contactID uuid.UUID, orderDate time.Time) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}

	return &SalesOrder{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		OrderNumber:          orderNumber,
		ContactID:            contactID,
		OrderDate:            orderDate,
		Status:               SalesOrderStatusDraft,
		Items:                make([]SalesOrderItem, 0),
		TotalAmount:          decimal.Zero,
	}, nil
}

// AddItem appends an order line; only draft orders can change structurally
func (o *SalesOrder) AddItem(productID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*SalesOrderItem, error) {
	if o.Status != SalesOrderStatusDraft {
		return nil, shared.NewDomainError("ORDER_NOT_DRAFT", "Items can only be changed on draft orders")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}

	item := SalesOrderItem{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           o.ID,
		ProductID:         productID,
		Description:       description,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		LineTotal:         quantity.Mul(unitPrice),
		DeliveredQuantity: decimal.Zero,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotals()

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem deletes an order line from a draft order
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != SalesOrderStatusDraft {
		return shared.NewDomainError("ORDER_NOT_DRAFT", "Items can only be changed on draft orders")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// TransitionTo moves the order through its status machine. Stock effects
// belong to the orchestrating service; this validates the move only.
func (o *SalesOrder) TransitionTo(target SalesOrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidTransition
	}
	if target == SalesOrderStatusConfirmed && len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without items")
	}

	from := o.Status
	o.Status = target
	o.touch()

	o.AddDomainEvent(NewSalesOrderStatusChangedEvent(o, from, target))
	return nil
}

// RecordDelivery accumulates delivered quantity on one line
func (o *SalesOrder) RecordDelivery(itemID uuid.UUID, quantity decimal.Decimal) (*SalesOrderItem, error) {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].recordDelivery(quantity); err != nil {
				return nil, err
			}
			o.touch()
			return &o.Items[idx], nil
		}
	}
	return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// IsFullyDelivered returns true when every line is delivered in full
func (o *SalesOrder) IsFullyDelivered() bool {
	if len(o.Items) == 0 {
		return false
	}
	for idx := range o.Items {
		if o.Items[idx].RemainingQuantity().IsPositive() {
			return false
		}
	}
	return true
}

// recalculateTotals recomputes the order total from its lines
func (o *SalesOrder) recalculateTotals() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineTotal)
	}
	o.TotalAmount = total
	o.touch()
}

func (o *SalesOrder) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
