package trade

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the receiving stage of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "CONFIRMED"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// purchaseOrderStage orders the forward progression of the status machine
var purchaseOrderStage = map[PurchaseOrderStatus]int{
	PurchaseOrderStatusDraft:             0,
	PurchaseOrderStatusConfirmed:         1,
	PurchaseOrderStatusPartiallyReceived: 2,
	PurchaseOrderStatusReceived:          3,
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s PurchaseOrderStatus) IsValid() bool {
	if s == PurchaseOrderStatusCancelled {
		return true
	}
	_, ok := purchaseOrderStage[s]
	return ok
}

// IsTerminal returns true if no further transitions are allowed
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// CanTransitionTo returns true if the move is allowed; same forward-only
// discipline as the sales order machine
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	if !target.IsValid() || s.IsTerminal() {
		return false
	}
	if target == PurchaseOrderStatusCancelled {
		return true
	}
	if s == PurchaseOrderStatusDraft {
		return target == PurchaseOrderStatusConfirmed
	}
	if s == PurchaseOrderStatusPartiallyReceived && target == PurchaseOrderStatusPartiallyReceived {
		return true
	}
	return purchaseOrderStage[target] > purchaseOrderStage[s]
}

// ReceivingStatus is derived from the completion percentage
type ReceivingStatus string

const (
	ReceivingStatusPending   ReceivingStatus = "PENDING"
	ReceivingStatusPartial   ReceivingStatus = "PARTIAL"
	ReceivingStatusCompleted ReceivingStatus = "COMPLETED"
)

// PurchaseOrderItem is one ordered product line with cumulative receipt tracking
type PurchaseOrderItem struct {
	shared.BaseEntity
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchase_order_item_order"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description      string          `gorm:"type:varchar(255)"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// RemainingQuantity returns the quantity ordered but not yet received
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// recordReceipt accumulates received quantity, capped at the ordered quantity
func (i *PurchaseOrderItem) recordReceipt(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if quantity.GreaterThan(i.RemainingQuantity()) {
		return shared.NewDomainError("EXCEEDS_ORDERED", "Received quantity exceeds the remaining ordered quantity")
	}
	i.ReceivedQuantity = i.ReceivedQuantity.Add(quantity)
	return nil
}

// PurchaseOrder is a vendor order whose receipts add stock at purchase price
type PurchaseOrder struct {
	shared.AuditedAggregateRoot
	OrderNumber string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_order_number"`
	ContactID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_purchase_order_contact"`
	OrderDate   time.Time           `gorm:"not null"`
	Status      PurchaseOrderStatus `gorm:"type:varchar(25);not null;default:'DRAFT';index"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(orderNumber string, contactID uuid.UUID, orderDate time.Time) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}

	return &PurchaseOrder{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		OrderNumber:          orderNumber,
		ContactID:            contactID,
		OrderDate:            orderDate,
		Status:               PurchaseOrderStatusDraft,
		Items:                make([]PurchaseOrderItem, 0),
		TotalAmount:          decimal.Zero,
	}, nil
}

// AddItem appends an order line; only draft orders can change structurally
func (o *PurchaseOrder) AddItem(productID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
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

	item := PurchaseOrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		OrderID:          o.ID,
		ProductID:        productID,
		Description:      description,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		LineTotal:        quantity.Mul(unitPrice),
		ReceivedQuantity: decimal.Zero,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotals()

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem deletes an order line from a draft order
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
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

// TransitionTo moves the order through its status machine
func (o *PurchaseOrder) TransitionTo(target PurchaseOrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidTransition
	}
	if target == PurchaseOrderStatusConfirmed && len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without items")
	}

	from := o.Status
	o.Status = target
	o.touch()

	o.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(o, from, target))
	return nil
}

// RecordReceipt accumulates received quantity on one line
func (o *PurchaseOrder) RecordReceipt(itemID uuid.UUID, quantity decimal.Decimal) (*PurchaseOrderItem, error) {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].recordReceipt(quantity); err != nil {
				return nil, err
			}
			o.touch()
			return &o.Items[idx], nil
		}
	}
	return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// CompletionPercentage returns round(total received / total ordered * 100)
func (o *PurchaseOrder) CompletionPercentage() int {
	ordered := decimal.Zero
	received := decimal.Zero
	for idx := range o.Items {
		ordered = ordered.Add(o.Items[idx].Quantity)
		received = received.Add(o.Items[idx].ReceivedQuantity)
	}
	if ordered.IsZero() {
		return 0
	}
	pct := received.Div(ordered).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// ReceivingStatus derives the receiving state from the completion percentage:
// 0% -> Pending, (0,100)% -> Partial, 100% -> Completed
func (o *PurchaseOrder) ReceivingStatus() ReceivingStatus {
	switch pct := o.CompletionPercentage(); {
	case pct <= 0:
		return ReceivingStatusPending
	case pct >= 100 && o.isFullyReceived():
		return ReceivingStatusCompleted
	default:
		return ReceivingStatusPartial
	}
}

// isFullyReceived guards against rounding reporting 100% early
func (o *PurchaseOrder) isFullyReceived() bool {
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

// IsFullyReceived returns true when every line is received in full
func (o *PurchaseOrder) IsFullyReceived() bool {
	return o.isFullyReceived()
}

// recalculateTotals recomputes the order total from its lines
func (o *PurchaseOrder) recalculateTotals() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineTotal)
	}
	o.TotalAmount = total
	o.touch()
}

func (o *PurchaseOrder) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
