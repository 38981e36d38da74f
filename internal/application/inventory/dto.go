package inventory

import (
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRecordResponse represents a stock record in API responses
type StockRecordResponse struct {
	ID             uuid.UUID             `json:"id"`
	ProductID      uuid.UUID             `json:"product_id"`
	CurrentStock   decimal.Decimal       `json:"current_stock"`
	ReservedStock  decimal.Decimal       `json:"reserved_stock"`
	AvailableStock decimal.Decimal       `json:"available_stock"`
	AverageCost    decimal.Decimal       `json:"average_cost"`
	TotalValue     decimal.Decimal       `json:"total_value"`
	MinimumStock   decimal.Decimal       `json:"minimum_stock"`
	MaximumStock   decimal.Decimal       `json:"maximum_stock"`
	ReorderLevel   decimal.Decimal       `json:"reorder_level"`
	Status         inventory.StockStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Version        int                   `json:"version"`
}

// ToStockRecordResponse converts a domain stock record to a response
func ToStockRecordResponse(r *inventory.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		CurrentStock:   r.CurrentStock,
		ReservedStock:  r.ReservedStock,
		AvailableStock: r.AvailableStock(),
		AverageCost:    r.AverageCost,
		TotalValue:     r.TotalValue,
		MinimumStock:   r.MinimumStock,
		MaximumStock:   r.MaximumStock,
		ReorderLevel:   r.ReorderLevel,
		Status:         r.Status(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Version:        r.Version,
	}
}

// ToStockRecordResponses converts a slice of stock records to responses
func ToStockRecordResponses(records []inventory.StockRecord) []StockRecordResponse {
	responses := make([]StockRecordResponse, len(records))
	for i := range records {
		responses[i] = ToStockRecordResponse(&records[i])
	}
	return responses
}

// StockListFilter represents filter options for the stock list
type StockListFilter struct {
	Search       string     `form:"search"`
	ProductID    *uuid.UUID `form:"product_id"`
	BelowReorder *bool      `form:"below_reorder"`
	HasStock     *bool      `form:"has_stock"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ApplyTransactionRequest represents a request to record a stock movement
type ApplyTransactionRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DocumentType    string          `json:"document_type"`
	DocumentID      *uuid.UUID      `json:"document_id"`
	DocumentNumber  string          `json:"document_number"`
	Note            string          `json:"note"`
	OperatorID      *uuid.UUID      `json:"operator_id"`
	TransactionDate *time.Time      `json:"transaction_date"`
}

// ReserveStockRequest represents a request to reserve available stock
type ReserveStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// ReleaseStockRequest represents a request to release reserved stock
type ReleaseStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// ReleaseStockResponse reports how much was actually released
type ReleaseStockResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ReleasedQuantity decimal.Decimal `json:"released_quantity"`
	ReservedStock    decimal.Decimal `json:"reserved_stock"`
	AvailableStock   decimal.Decimal `json:"available_stock"`
}

// SetThresholdsRequest represents a request to set stock level thresholds
type SetThresholdsRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
	MaximumStock *decimal.Decimal `json:"maximum_stock"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// StockTransactionResponse represents a stock movement in API responses
type StockTransactionResponse struct {
	ID              uuid.UUID                 `json:"id"`
	StockRecordID   uuid.UUID                 `json:"stock_record_id"`
	ProductID       uuid.UUID                 `json:"product_id"`
	TransactionType inventory.TransactionType `json:"transaction_type"`
	Quantity        decimal.Decimal           `json:"quantity"`
	UnitPrice       decimal.Decimal           `json:"unit_price"`
	TotalValue      decimal.Decimal           `json:"total_value"`
	BalanceBefore   decimal.Decimal           `json:"balance_before"`
	BalanceAfter    decimal.Decimal           `json:"balance_after"`
	DocumentType    string                    `json:"document_type,omitempty"`
	DocumentID      *uuid.UUID                `json:"document_id,omitempty"`
	DocumentNumber  string                    `json:"document_number,omitempty"`
	Note            string                    `json:"note,omitempty"`
	OperatorID      *uuid.UUID                `json:"operator_id,omitempty"`
	TransactionDate time.Time                 `json:"transaction_date"`
}

// ToStockTransactionResponse converts a domain transaction to a response
func ToStockTransactionResponse(tx *inventory.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:              tx.ID,
		StockRecordID:   tx.StockRecordID,
		ProductID:       tx.ProductID,
		TransactionType: tx.TransactionType,
		Quantity:        tx.Quantity,
		UnitPrice:       tx.UnitPrice,
		TotalValue:      tx.TotalValue,
		BalanceBefore:   tx.BalanceBefore,
		BalanceAfter:    tx.BalanceAfter,
		DocumentType:    tx.DocumentRef.DocumentType,
		DocumentID:      tx.DocumentRef.DocumentID,
		DocumentNumber:  tx.DocumentRef.DocumentNumber,
		Note:            tx.Note,
		OperatorID:      tx.OperatorID,
		TransactionDate: tx.TransactionDate,
	}
}

// ToStockTransactionResponses converts a slice of transactions to responses
func ToStockTransactionResponses(txs []inventory.StockTransaction) []StockTransactionResponse {
	responses := make([]StockTransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToStockTransactionResponse(&txs[i])
	}
	return responses
}

// TransactionListFilter represents filter options for the movement log
type TransactionListFilter struct {
	ProductID       *uuid.UUID `form:"product_id"`
	TransactionType string     `form:"transaction_type"`
	DocumentType    string     `form:"document_type"`
	DocumentID      *uuid.UUID `form:"document_id"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string     `form:"order_by"`
	OrderDir        string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
