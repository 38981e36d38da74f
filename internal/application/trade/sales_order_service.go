package trade

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Numbering sequences for orders
const (
	SalesOrderSequence    = "SO"
	PurchaseOrderSequence = "PO"
)

// Document types recorded on stock movements originated by orders
const (
	SalesOrderDocumentType    = "SALES_ORDER"
	PurchaseOrderDocumentType = "PURCHASE_ORDER"
)

// NumberGenerator issues sequential order numbers (e.g. SO000042)
type NumberGenerator interface {
	NextNumber(ctx context.Context, sequence string) (string, error)
}

// SalesOrderService drives sales orders through their status machine and
// orchestrates the stock effects: confirming reserves every line, deliveries
// release the reservation and consume stock, cancelling releases whatever
// was reserved but not delivered. Transitions with stock effects run in one
// transaction scope.
type SalesOrderService struct {
	salesRepo      trade.SalesOrderRepository
	txScope        TransactionScope
	numberGen      NumberGenerator
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	salesRepo trade.SalesOrderRepository,
	txScope TransactionScope,
	numberGen NumberGenerator,
) *SalesOrderService {
	return &SalesOrderService{
		salesRepo: salesRepo,
		txScope:   txScope,
		numberGen: numberGen,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SalesOrderService) publishDomainEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
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

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter OrderListFilter) ([]SalesOrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	orders, err := s.salesRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.salesRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSalesOrderResponses(orders), total, nil
}

// Create creates a new draft sales order with its lines
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	number, err := s.numberGen.NextNumber(ctx, SalesOrderSequence)
	if err != nil {
		return nil, err
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order, err := trade.NewSalesOrder(number, req.ContactID, orderDate)
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

	if err := s.salesRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// AddItem appends a line to a draft sales order
func (s *SalesOrderService) AddItem(ctx context.Context, id uuid.UUID, req OrderItemRequest) (*SalesOrderResponse, error) {
	order, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := order.AddItem(req.ProductID, req.Description, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.salesRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// RemoveItem deletes a line from a draft sales order
func (s *SalesOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.salesRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Transition moves a sales order to the target status, applying the stock
// effects the move implies. Requesting the current status with no payload is
// an idempotent no-op.
func (s *SalesOrderService) Transition(ctx context.Context, id uuid.UUID, req TransitionSalesOrderRequest) (*SalesOrderResponse, error) {
	target := trade.SalesOrderStatus(req.TargetStatus)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid sales order status")
	}

	deliveryTarget := target == trade.SalesOrderStatusPartiallyDelivered || target == trade.SalesOrderStatusDelivered
	if len(req.Deliveries) > 0 && !deliveryTarget {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Delivery lines are only accepted when delivering")
	}

	var (
		order   *trade.SalesOrder
		touched []shared.AggregateRoot
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.SalesOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Idempotent: re-requesting the current status without a payload
		if order.Status == target && len(req.Deliveries) == 0 {
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return shared.ErrInvalidTransition
		}

		switch {
		case target == trade.SalesOrderStatusConfirmed:
			records, err := s.reserveAllLines(ctx, repos, order)
			if err != nil {
				return err
			}
			touched = append(touched, records...)

		case deliveryTarget:
			if len(req.Deliveries) == 0 {
				return shared.NewDomainError("DELIVERY_REQUIRED", "Delivering requires at least one delivery line")
			}
			records, err := s.applyDeliveries(ctx, repos, order, req.Deliveries, req.OperatorID)
			if err != nil {
				return err
			}
			touched = append(touched, records...)
			if target == trade.SalesOrderStatusDelivered && !order.IsFullyDelivered() {
				return shared.NewDomainError("NOT_FULLY_DELIVERED", "Order still has undelivered quantities")
			}

		case target == trade.SalesOrderStatusCancelled:
			if order.Status != trade.SalesOrderStatusDraft {
				records, err := s.releaseUndelivered(ctx, repos, order)
				if err != nil {
					return err
				}
				touched = append(touched, records...)
			}
		}

		if err := order.TransitionTo(target); err != nil {
			return err
		}
		return repos.SalesOrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, append([]shared.AggregateRoot{order}, touched...)...)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// reserveAllLines reserves stock for every order line. Availability is
// checked across all lines before any reservation is taken, so a failure
// leaves nothing reserved from the attempt.
func (s *SalesOrderService) reserveAllLines(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) ([]shared.AggregateRoot, error) {
	required := make(map[uuid.UUID]decimal.Decimal)
	for i := range order.Items {
		pid := order.Items[i].ProductID
		required[pid] = required[pid].Add(order.Items[i].Quantity)
	}

	records := make(map[uuid.UUID]*inventory.StockRecord, len(required))
	for pid, qty := range required {
		record, err := repos.StockRepo().GetOrCreate(ctx, pid)
		if err != nil {
			return nil, err
		}
		if record.AvailableStock().LessThan(qty) {
			return nil, shared.ErrInsufficientAvailableStock
		}
		records[pid] = record
	}

	var touched []shared.AggregateRoot
	for pid, qty := range required {
		record := records[pid]
		if err := record.Reserve(qty); err != nil {
			return nil, err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, record); err != nil {
			return nil, err
		}
		touched = append(touched, record)
	}
	return touched, nil
}

// applyDeliveries records the delivered quantity on each line, releases its
// reservation and consumes the stock with an outbound sale movement.
func (s *SalesOrderService) applyDeliveries(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder, deliveries []QuantityLine, operatorID *uuid.UUID) ([]shared.AggregateRoot, error) {
	var touched []shared.AggregateRoot
	for _, line := range deliveries {
		item, err := order.RecordDelivery(line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}

		record, err := repos.StockRepo().FindByProductID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		record.Release(line.Quantity)
		balanceBefore := record.CurrentStock
		if err := record.ApplyMovement(inventory.TransactionTypeSale, line.Quantity, valueobject.NewMoneyUSD(item.UnitPrice)); err != nil {
			return nil, err
		}
		if err := repos.StockRepo().SaveWithLock(ctx, record); err != nil {
			return nil, err
		}

		tx, err := inventory.NewStockTransaction(
			record.ID, item.ProductID, inventory.TransactionTypeSale,
			line.Quantity, item.UnitPrice, record.TotalValue,
			balanceBefore, record.CurrentStock,
		)
		if err != nil {
			return nil, err
		}
		tx.WithDocumentRef(SalesOrderDocumentType, order.ID, order.OrderNumber)
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

// releaseUndelivered returns the reservation held for quantities that were
// ordered but never delivered.
func (s *SalesOrderService) releaseUndelivered(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) ([]shared.AggregateRoot, error) {
	remaining := make(map[uuid.UUID]decimal.Decimal)
	for i := range order.Items {
		rem := order.Items[i].RemainingQuantity()
		if rem.IsPositive() {
			pid := order.Items[i].ProductID
			remaining[pid] = remaining[pid].Add(rem)
		}
	}

	var touched []shared.AggregateRoot
	for pid, qty := range remaining {
		record, err := repos.StockRepo().FindByProductID(ctx, pid)
		if err != nil {
			return nil, err
		}
		record.Release(qty)
		if err := repos.StockRepo().SaveWithLock(ctx, record); err != nil {
			return nil, err
		}
		touched = append(touched, record)
	}
	return touched, nil
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.ContactID != nil {
		domainFilter.Filters["contact_id"] = *filter.ContactID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
