package trade

import (
	"time"

	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest represents one ordered product line
type OrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	ContactID  uuid.UUID          `json:"contact_id" binding:"required"`
	OrderDate  time.Time          `json:"order_date"`
	Items      []OrderItemRequest `json:"items" binding:"dive"`
	Notes      string             `json:"notes"`
	OperatorID *uuid.UUID         `json:"-"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	ContactID  uuid.UUID          `json:"contact_id" binding:"required"`
	OrderDate  time.Time          `json:"order_date"`
	Items      []OrderItemRequest `json:"items" binding:"dive"`
	Notes      string             `json:"notes"`
	OperatorID *uuid.UUID         `json:"-"`
}

// QuantityLine carries a per-line quantity for a delivery or receipt payload
type QuantityLine struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// TransitionSalesOrderRequest moves a sales order through its status machine.
// Deliveries are required when transitioning to PARTIALLY_DELIVERED or
// DELIVERED and forbidden otherwise.
type TransitionSalesOrderRequest struct {
	TargetStatus string         `json:"target_status" binding:"required"`
	Deliveries   []QuantityLine `json:"deliveries" binding:"dive"`
	OperatorID   *uuid.UUID     `json:"-"`
}

// TransitionPurchaseOrderRequest moves a purchase order through its status
// machine. Receipts are required when transitioning to PARTIALLY_RECEIVED or
// RECEIVED and forbidden otherwise.
type TransitionPurchaseOrderRequest struct {
	TargetStatus string         `json:"target_status" binding:"required"`
	Receipts     []QuantityLine `json:"receipts" binding:"dive"`
	OperatorID   *uuid.UUID     `json:"-"`
}

// SalesOrderItemResponse represents a sales order line in API responses
type SalesOrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LineTotal         decimal.Decimal `json:"line_total"`
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID          uuid.UUID                `json:"id"`
	OrderNumber string                   `json:"order_number"`
	ContactID   uuid.UUID                `json:"contact_id"`
	OrderDate   time.Time                `json:"order_date"`
	Status      trade.SalesOrderStatus   `json:"status"`
	Items       []SalesOrderItemResponse `json:"items"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Version     int                      `json:"version"`
}

// ToSalesOrderResponse converts a domain sales order to a response
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = SalesOrderItemResponse{
			ID:                o.Items[i].ID,
			ProductID:         o.Items[i].ProductID,
			Description:       o.Items[i].Description,
			Quantity:          o.Items[i].Quantity,
			UnitPrice:         o.Items[i].UnitPrice,
			LineTotal:         o.Items[i].LineTotal,
			DeliveredQuantity: o.Items[i].DeliveredQuantity,
			RemainingQuantity: o.Items[i].RemainingQuantity(),
		}
	}

	return SalesOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		ContactID:   o.ContactID,
		OrderDate:   o.OrderDate,
		Status:      o.Status,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

// ToSalesOrderResponses converts a slice of sales orders to responses
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LineTotal         decimal.Decimal `json:"line_total"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	OrderNumber          string                      `json:"order_number"`
	ContactID            uuid.UUID                   `json:"contact_id"`
	OrderDate            time.Time                   `json:"order_date"`
	Status               trade.PurchaseOrderStatus   `json:"status"`
	ReceivingStatus      trade.ReceivingStatus       `json:"receiving_status"`
	CompletionPercentage int                         `json:"completion_percentage"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Notes                string                      `json:"notes,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
	Version              int                         `json:"version"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = PurchaseOrderItemResponse{
			ID:                o.Items[i].ID,
			ProductID:         o.Items[i].ProductID,
			Description:       o.Items[i].Description,
			Quantity:          o.Items[i].Quantity,
			UnitPrice:         o.Items[i].UnitPrice,
			LineTotal:         o.Items[i].LineTotal,
			ReceivedQuantity:  o.Items[i].ReceivedQuantity,
			RemainingQuantity: o.Items[i].RemainingQuantity(),
		}
	}

	return PurchaseOrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		ContactID:            o.ContactID,
		OrderDate:            o.OrderDate,
		Status:               o.Status,
		ReceivingStatus:      o.ReceivingStatus(),
		CompletionPercentage: o.CompletionPercentage(),
		Items:                items,
		TotalAmount:          o.TotalAmount,
		Notes:                o.Notes,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		Version:              o.Version,
	}
}

// ToPurchaseOrderResponses converts a slice of purchase orders to responses
func ToPurchaseOrderResponses(orders []trade.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	ContactID *uuid.UUID `form:"contact_id"`
	Status    string     `form:"status"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
