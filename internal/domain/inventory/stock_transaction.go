package inventory

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of stock movement
type TransactionType string

const (
	// TransactionTypePurchase is stock received from a purchase
	TransactionTypePurchase TransactionType = "PURCHASE"
	// TransactionTypeSale is stock shipped for a sale
	TransactionTypeSale TransactionType = "SALE"
	// TransactionTypeAdjustment is a signed stock correction
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
	// TransactionTypeTransfer is stock transferred out to another location
	TransactionTypeTransfer TransactionType = "TRANSFER"
	// TransactionTypeReturn is stock returned by a customer
	TransactionTypeReturn TransactionType = "RETURN"
	// TransactionTypeDamage is stock written off as damaged
	TransactionTypeDamage TransactionType = "DAMAGE"
	// TransactionTypeOpening is an opening balance that resets stock and cost
	TransactionTypeOpening TransactionType = "OPENING"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypePurchase,
		TransactionTypeSale,
		TransactionTypeAdjustment,
		TransactionTypeTransfer,
		TransactionTypeReturn,
		TransactionTypeDamage,
		TransactionTypeOpening:
		return true
	}
	return false
}

// IsInbound returns true if this type adds stock.
// Adjustment and Opening are directionless; the sign of the quantity decides.
func (t TransactionType) IsInbound() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeReturn:
		return true
	}
	return false
}

// IsOutbound returns true if this type removes stock
func (t TransactionType) IsOutbound() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeTransfer, TransactionTypeDamage:
		return true
	}
	return false
}

// DocumentRef identifies the document that originated a stock movement
type DocumentRef struct {
	DocumentType   string     `gorm:"type:varchar(30);index:idx_stock_tx_document" json:"document_type"`
	DocumentID     *uuid.UUID `gorm:"type:uuid;index:idx_stock_tx_document" json:"document_id"`
	DocumentNumber string     `gorm:"type:varchar(50)" json:"document_number"`
}

// StockTransaction is an immutable record of a stock movement. Once appended,
// transactions are never modified; corrections are made with new transactions.
type StockTransaction struct {
	shared.BaseEntity
	StockRecordID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_tx_record"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_tx_product"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index:idx_stock_tx_type"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed: positive adds stock, negative removes
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalValue      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Record's total value after the movement
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DocumentRef     DocumentRef     `gorm:"embedded"`
	Note            string          `gorm:"type:varchar(255)"`
	OperatorID      *uuid.UUID      `gorm:"type:uuid"`
	TransactionDate time.Time       `gorm:"not null;index:idx_stock_tx_date"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a new stock transaction record
func NewStockTransaction(
	stockRecordID uuid.UUID,
	productID uuid.UUID,
	txType TransactionType,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	totalValue decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
) (*StockTransaction, error) {
	if stockRecordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_RECORD", "Stock record ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid stock transaction type")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &StockTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		StockRecordID:   stockRecordID,
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalValue:      totalValue,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceAfter,
		TransactionDate: time.Now(),
	}, nil
}

// WithDocumentRef sets the originating document reference
func (t *StockTransaction) WithDocumentRef(docType string, docID uuid.UUID, docNumber string) *StockTransaction {
	t.DocumentRef = DocumentRef{
		DocumentType:   docType,
		DocumentID:     &docID,
		DocumentNumber: docNumber,
	}
	return t
}

// WithNote sets a free-form note on the transaction
func (t *StockTransaction) WithNote(note string) *StockTransaction {
	t.Note = note
	return t
}

// WithOperatorID sets the user who performed the movement
func (t *StockTransaction) WithOperatorID(operatorID uuid.UUID) *StockTransaction {
	t.OperatorID = &operatorID
	return t
}

// WithTransactionDate overrides the transaction date
func (t *StockTransaction) WithTransactionDate(date time.Time) *StockTransaction {
	t.TransactionDate = date
	return t
}

// QuantityChange returns the net on-hand change recorded by this transaction
func (t *StockTransaction) QuantityChange() decimal.Decimal {
	return t.BalanceAfter.Sub(t.BalanceBefore)
}

// IsIncrease returns true if the movement added stock
func (t *StockTransaction) IsIncrease() bool {
	return t.BalanceAfter.GreaterThan(t.BalanceBefore)
}
