package inventory

import (
	"context"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService handles stock-related business operations
type StockService struct {
	stockRepo       inventory.StockRecordRepository
	transactionRepo inventory.StockTransactionRepository
	txScope         TransactionScope
	eventPublisher  shared.EventPublisher
}

// NewStockService creates a new StockService without transaction support
func NewStockService(
	stockRepo inventory.StockRecordRepository,
	transactionRepo inventory.StockTransactionRepository,
) *StockService {
	return &StockService{
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		txScope:         NewNoOpTransactionScope(stockRepo, transactionRepo),
	}
}

// NewStockServiceWithScope creates a new StockService whose write operations
// run inside the given transaction scope
func NewStockServiceWithScope(
	stockRepo inventory.StockRecordRepository,
	transactionRepo inventory.StockTransactionRepository,
	txScope TransactionScope,
) *StockService {
	return &StockService{
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		txScope:         txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes all domain events from the stock record
func (s *StockService) publishDomainEvents(ctx context.Context, record *inventory.StockRecord) {
	if s.eventPublisher == nil {
		return
	}
	events := record.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	record.ClearDomainEvents()
}

// GetByProduct retrieves the stock record for a product
func (s *StockService) GetByProduct(ctx context.Context, productID uuid.UUID) (*StockRecordResponse, error) {
	record, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToStockRecordResponse(record)
	return &response, nil
}

// List retrieves stock records with filtering and pagination
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]StockRecordResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	records, err := s.stockRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.stockRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToStockRecordResponses(records), total, nil
}

// ListBelowReorder retrieves stock records at or below their reorder level
func (s *StockService) ListBelowReorder(ctx context.Context, filter StockListFilter) ([]StockRecordResponse, error) {
	records, err := s.stockRepo.FindBelowReorderLevel(ctx, s.buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToStockRecordResponses(records), nil
}

// ApplyTransaction records a stock movement: the stock record is mutated
// according to the transaction type and an immutable movement record is
// appended, atomically when a real transaction scope is configured.
func (s *StockService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*StockRecordResponse, error) {
	txType := inventory.TransactionType(req.TransactionType)
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid stock transaction type")
	}

	var record *inventory.StockRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.StockRepo().GetOrCreate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		balanceBefore := record.CurrentStock
		unitPrice := valueobject.NewMoneyUSD(req.UnitPrice)

		if err := record.ApplyMovement(txType, req.Quantity, unitPrice); err != nil {
			return err
		}

		if err := repos.StockRepo().SaveWithLock(ctx, record); err != nil {
			return err
		}

		tx, err := inventory.NewStockTransaction(
			record.ID,
			req.ProductID,
			txType,
			req.Quantity,
			req.UnitPrice,
			record.TotalValue,
			balanceBefore,
			record.CurrentStock,
		)
		if err != nil {
			return err
		}
		if req.DocumentID != nil {
			tx.WithDocumentRef(req.DocumentType, *req.DocumentID, req.DocumentNumber)
		}
		if req.Note != "" {
			tx.WithNote(req.Note)
		}
		if req.OperatorID != nil {
			tx.WithOperatorID(*req.OperatorID)
		}
		if req.TransactionDate != nil {
			tx.WithTransactionDate(*req.TransactionDate)
		}

		return repos.TransactionRepo().Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// Reserve earmarks available stock without reducing the on-hand quantity
func (s *StockService) Reserve(ctx context.Context, req ReserveStockRequest) (*StockRecordResponse, error) {
	record, err := s.stockRepo.FindByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if err := record.Reserve(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.stockRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// Release returns reserved stock to available. Releasing more than is
// reserved is not an error; the reservation is clamped at zero and the
// actually released quantity is reported.
func (s *StockService) Release(ctx context.Context, req ReleaseStockRequest) (*ReleaseStockResponse, error) {
	record, err := s.stockRepo.FindByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	released := record.Release(req.Quantity)

	if err := s.stockRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, record)

	return &ReleaseStockResponse{
		ProductID:        req.ProductID,
		ReleasedQuantity: released,
		ReservedStock:    record.ReservedStock,
		AvailableStock:   record.AvailableStock(),
	}, nil
}

// SetThresholds sets the minimum, maximum and reorder thresholds
func (s *StockService) SetThresholds(ctx context.Context, req SetThresholdsRequest) (*StockRecordResponse, error) {
	record, err := s.stockRepo.GetOrCreate(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	min := record.MinimumStock
	max := record.MaximumStock
	reorder := record.ReorderLevel
	if req.MinimumStock != nil {
		min = *req.MinimumStock
	}
	if req.MaximumStock != nil {
		max = *req.MaximumStock
	}
	if req.ReorderLevel != nil {
		reorder = *req.ReorderLevel
	}

	if err := record.SetThresholds(min, max, reorder); err != nil {
		return nil, err
	}

	if err := s.stockRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	response := ToStockRecordResponse(record)
	return &response, nil
}

// ListTransactions retrieves the movement log for a product
func (s *StockService) ListTransactions(ctx context.Context, productID uuid.UUID, filter TransactionListFilter) ([]StockTransactionResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	} else {
		domainFilter.OrderBy = "transaction_date"
		domainFilter.OrderDir = "desc"
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.TransactionType != "" {
		domainFilter.Filters["transaction_type"] = filter.TransactionType
	}

	var (
		txs []inventory.StockTransaction
		err error
	)
	if filter.StartDate != nil && filter.EndDate != nil {
		txs, err = s.transactionRepo.FindByDateRange(ctx, *filter.StartDate, *filter.EndDate, domainFilter)
	} else {
		txs, err = s.transactionRepo.FindByProduct(ctx, productID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}

	return ToStockTransactionResponses(txs), total, nil
}

// GetTransactionsByDocument retrieves the movements originated by a document
func (s *StockService) GetTransactionsByDocument(ctx context.Context, documentType string, documentID uuid.UUID) ([]StockTransactionResponse, error) {
	txs, err := s.transactionRepo.FindByDocument(ctx, documentType, documentID)
	if err != nil {
		return nil, err
	}
	return ToStockTransactionResponses(txs), nil
}

// CanFulfill reports whether the available stock covers the requested quantity
func (s *StockService) CanFulfill(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) (bool, error) {
	record, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return false, err
	}
	return record.CanFulfill(quantity), nil
}

func (s *StockService) buildFilter(filter StockListFilter) shared.Filter {
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
	domainFilter.Search = filter.Search

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.BelowReorder != nil && *filter.BelowReorder {
		domainFilter.Filters["below_reorder"] = true
	}
	if filter.HasStock != nil {
		if *filter.HasStock {
			domainFilter.Filters["has_stock"] = true
		} else {
			domainFilter.Filters["no_stock"] = true
		}
	}
	return domainFilter
}
