package inventory

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus classifies the stock level of a record against its thresholds
type StockStatus string

const (
	StockStatusInStock         StockStatus = "IN_STOCK"
	StockStatusOutOfStock      StockStatus = "OUT_OF_STOCK"
	StockStatusLowStock        StockStatus = "LOW_STOCK"
	StockStatusOverStock       StockStatus = "OVER_STOCK"
	StockStatusReorderRequired StockStatus = "REORDER_REQUIRED"
)

// StockRecord tracks on-hand stock, reservations and weighted-average cost
// for a single product. It is the aggregate root for stock operations; all
// movements append an immutable StockTransaction.
type StockRecord struct {
	shared.AuditedAggregateRoot
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_record_product"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // On-hand quantity
	ReservedStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Earmarked for confirmed orders
	AverageCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average cost
	TotalValue    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // CurrentStock * AverageCost, derived
	MinimumStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaximumStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates an empty stock record for a product
func NewStockRecord(productID uuid.UUID) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockRecord{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		ProductID:            productID,
		CurrentStock:         decimal.Zero,
		ReservedStock:        decimal.Zero,
		AverageCost:          decimal.Zero,
		TotalValue:           decimal.Zero,
		MinimumStock:         decimal.Zero,
		MaximumStock:         decimal.Zero,
		ReorderLevel:         decimal.Zero,
	}, nil
}

// AvailableStock returns the quantity not reserved for orders, never negative
func (r *StockRecord) AvailableStock() decimal.Decimal {
	available := r.CurrentStock.Sub(r.ReservedStock)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Status classifies the record against its thresholds.
// Precedence: OutOfStock > LowStock > OverStock > ReorderRequired > InStock.
func (r *StockRecord) Status() StockStatus {
	switch {
	case r.CurrentStock.LessThanOrEqual(decimal.Zero):
		return StockStatusOutOfStock
	case r.MinimumStock.IsPositive() && r.CurrentStock.LessThanOrEqual(r.MinimumStock):
		return StockStatusLowStock
	case r.MaximumStock.IsPositive() && r.CurrentStock.GreaterThanOrEqual(r.MaximumStock):
		return StockStatusOverStock
	case r.ReorderLevel.IsPositive() && r.CurrentStock.LessThanOrEqual(r.ReorderLevel):
		return StockStatusReorderRequired
	default:
		return StockStatusInStock
	}
}

// ApplyMovement updates stock, average cost and total value for one movement.
// Inbound types blend the weighted-average cost; Opening resets it outright;
// outbound types consume at the current average cost and never change it.
// The quantity is signed only for Adjustment; every other type requires a
// positive magnitude with direction implied by the type.
func (r *StockRecord) ApplyMovement(txType TransactionType, quantity decimal.Decimal, unitPrice valueobject.Money) error {
	if !txType.IsValid() {
		return shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid stock transaction type")
	}
	if quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	switch txType {
	case TransactionTypeOpening:
		return r.setOpening(quantity, unitPrice)
	case TransactionTypeAdjustment:
		if quantity.IsPositive() {
			return r.receive(txType, quantity, unitPrice)
		}
		return r.consume(txType, quantity.Abs())
	default:
		if quantity.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive for typed movements")
		}
		if txType.IsInbound() {
			return r.receive(txType, quantity, unitPrice)
		}
		return r.consume(txType, quantity)
	}
}

// receive adds stock and recalculates the moving weighted average cost:
// newAvgCost = (oldTotalValue + qty*unitPrice) / (oldStock + qty)
func (r *StockRecord) receive(txType TransactionType, quantity decimal.Decimal, unitPrice valueobject.Money) error {
	oldCost := r.AverageCost

	if r.CurrentStock.LessThanOrEqual(decimal.Zero) {
		r.AverageCost = unitPrice.Amount()
	} else {
		totalValue := r.CurrentStock.Mul(r.AverageCost).Add(quantity.Mul(unitPrice.Amount()))
		r.AverageCost = totalValue.Div(r.CurrentStock.Add(quantity)).Round(4)
	}

	r.CurrentStock = r.CurrentStock.Add(quantity)
	r.recalculateTotalValue()

	r.AddDomainEvent(NewStockIncreasedEvent(r, txType, quantity, unitPrice.Amount()))
	if !oldCost.Equal(r.AverageCost) {
		r.AddDomainEvent(NewAverageCostChangedEvent(r, oldCost, r.AverageCost))
	}

	return nil
}

// consume removes stock at the current average cost; the cost is unchanged
func (r *StockRecord) consume(txType TransactionType, quantity decimal.Decimal) error {
	if r.CurrentStock.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	r.CurrentStock = r.CurrentStock.Sub(quantity)
	r.recalculateTotalValue()

	r.AddDomainEvent(NewStockDecreasedEvent(r, txType, quantity))
	if r.ReorderLevel.IsPositive() && r.CurrentStock.LessThanOrEqual(r.ReorderLevel) {
		r.AddDomainEvent(NewStockBelowReorderEvent(r))
	}

	return nil
}

// setOpening resets stock and average cost to the opening values
func (r *StockRecord) setOpening(quantity decimal.Decimal, unitPrice valueobject.Money) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Opening quantity cannot be negative")
	}

	r.CurrentStock = quantity
	r.AverageCost = unitPrice.Amount()
	r.recalculateTotalValue()

	r.AddDomainEvent(NewStockIncreasedEvent(r, TransactionTypeOpening, quantity, unitPrice.Amount()))
	return nil
}

// Reserve earmarks available stock for a confirmed order
func (r *StockRecord) Reserve(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if r.AvailableStock().LessThan(quantity) {
		return shared.ErrInsufficientAvailableStock
	}

	r.ReservedStock = r.ReservedStock.Add(quantity)
	r.touch()

	r.AddDomainEvent(NewStockReservedEvent(r, quantity))
	return nil
}

// Release returns reserved stock to available. It clamps to the currently
// reserved quantity rather than failing, to tolerate partial-release callers.
// Returns the quantity actually released.
func (r *StockRecord) Release(quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	released := quantity
	if released.GreaterThan(r.ReservedStock) {
		released = r.ReservedStock
	}
	if released.IsZero() {
		return decimal.Zero
	}

	r.ReservedStock = r.ReservedStock.Sub(released)
	r.touch()

	r.AddDomainEvent(NewStockReleasedEvent(r, released))
	return released
}

// SetThresholds updates the minimum/maximum/reorder thresholds
func (r *StockRecord) SetThresholds(minimum, maximum, reorder decimal.Decimal) error {
	if minimum.IsNegative() || maximum.IsNegative() || reorder.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Thresholds cannot be negative")
	}
	if maximum.IsPositive() && minimum.GreaterThan(maximum) {
		return shared.NewDomainError("INVALID_THRESHOLD", "Minimum threshold cannot exceed maximum")
	}

	r.MinimumStock = minimum
	r.MaximumStock = maximum
	r.ReorderLevel = reorder
	r.touch()

	return nil
}

// GetAverageCostMoney returns the average cost as a Money value object
func (r *StockRecord) GetAverageCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.AverageCost)
}

// CanFulfill returns true if the available quantity covers the requested quantity
func (r *StockRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.AvailableStock().GreaterThanOrEqual(quantity)
}

func (r *StockRecord) recalculateTotalValue() {
	r.TotalValue = r.CurrentStock.Mul(r.AverageCost)
	r.touch()
}

func (r *StockRecord) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
