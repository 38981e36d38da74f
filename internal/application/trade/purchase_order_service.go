package trade

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// PurchaseOrderService drives purchase orders through their status machine.
// Receiving is the inbound mirror of delivery: nothing is reserved on
// confirmation, and each received line applies an inbound purchase movement
// at the line price.
type PurchaseOrderService struct {
	purchaseRepo   trade.PurchaseOrderRepository
	txScope        TransactionScope
	numberGen      NumberGenerator
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	purchaseRepo trade.PurchaseOrderRepository,
	txScope TransactionScope,
	numberGen NumberGenerator,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
		numberGen:    numberGen,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PurchaseOrderService) publishDomainEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter OrderListFilter) ([]PurchaseOrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	orders, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderResponses(orders), total, nil
}

// Create creates a new draft purchase order with its lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	number, err := s.numberGen.NextNumber(ctx, PurchaseOrderSequence)
	if err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order, err := trade.NewPurchaseOrder(number, req.ContactID, orderDate)
	if err != nil {
		return nil, err
	}
	if req.OperatorID != nil {
		order.SetCreatedBy(*req.OperatorID)
	}
	order.Notes = req.Notes

	for _, item := range req.Items {
		if _, err := order.AddItem(item.ProductID, item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// AddItem appends a line to a draft purchase order
func (s *PurchaseOrderService) AddItem(ctx context.Context, id uuid.UUID, req OrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := order.AddItem(req.ProductID, req.Description, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// RemoveItem deletes a line from a draft purchase order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Transition moves a purchase order to the target status, applying inbound
// stock movements for any received lines. Requesting the current status with
// no payload is an idempotent no-op.
func (s *PurchaseOrderService) Transition(ctx context.Context, id uuid.UUID, req TransitionPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	target := trade.PurchaseOrderStatus(req.TargetStatus)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid purchase order status")
	}

	receiptTarget := target == trade.PurchaseOrderStatusPartiallyReceived || target == trade.PurchaseOrderStatusReceived
	if len(req.Receipts) > 0 && !receiptTarget {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Receipt lines are only accepted when receiving")
	}

	var (
		order   *trade.PurchaseOrder
		touched []shared.AggregateRoot
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Idempotent: re-requesting the current status without a payload
		if order.Status == target && len(req.Receipts) == 0 {
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return shared.ErrInvalidTransition
		}

		if receiptTarget {
			if len(req.Receipts) == 0 {
				return shared.NewDomainError("RECEIPT_REQUIRED", "Receiving requires at least one receipt line")
			}
			records, err := s.applyReceipts(ctx, repos, order, req.Receipts, req.OperatorID)
			if err != nil {
				return err
			}
			touched = append(touched, records...)
			if target == trade.PurchaseOrderStatusReceived && !order.IsFullyReceived() {
				return shared.NewDomainError("NOT_FULLY_RECEIVED", "Order still has unreceived quantities")
			}
		}

		if err := order.TransitionTo(target); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, append([]shared.AggregateRoot{order}, touched...)...)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// applyReceipts records the received quantity on each line and applies an
// inbound purchase movement at the line price, feeding the weighted-average
// cost.
func (s *PurchaseOrderService) applyReceipts(ctx context.Context, repos TransactionalRepositories, order *trade.PurchaseOrder, receipts []QuantityLine, operatorID *uuid.UUID) ([]shared.AggregateRoot, error) {
	var touched []shared.AggregateRoot
	for _, line := range receipts {
		item, err := order.RecordReceipt(line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}

		record, err := repos.StockRepo().GetOrCreate(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		balanceBefore := record.CurrentStock
		if err := record.ApplyMovement(inventory.TransactionTypePurchase, line.Quantity, valueobject.NewMoneyUSD(item.UnitPrice)); err != nil {
			return nil, err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, record); err != nil {
			return nil, err
		}

		tx, err := inventory.NewStockTransaction(
			record.ID, item.ProductID, inventory.TransactionTypePurchase,
			line.Quantity, item.UnitPrice, record.TotalValue,
			balanceBefore, record.CurrentStock,
		)
		if err != nil {
			return nil, err
		}
		tx.WithDocumentRef(PurchaseOrderDocumentType, order.ID, order.OrderNumber)
		if operatorID != nil {
			tx.WithOperatorID(*operatorID)
		}
		if err := repos.StockTransactionRepo().Create(ctx, tx); err != nil {
			return nil, err
		}

		touched = append(touched, record)
	}
	return touched, nil
}
