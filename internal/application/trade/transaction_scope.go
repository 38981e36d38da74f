package trade

import (
	"context"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories touched
// by one order transition: the order itself plus the stock records and the
// movement log its lines affect. Transitions with stock effects must run
// inside one scope so reservation, release and movements commit atomically
// with the status change.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order and stock
// repositories that share the same underlying database transaction.
type TransactionalRepositories interface {
	// SalesOrderRepo returns the sales order repository scoped to the current transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	// StockRepo returns the stock record repository scoped to the current transaction
	StockRepo() inventory.StockRecordRepository
	// StockTransactionRepo returns the movement log repository scoped to the current transaction
	StockTransactionRepo() inventory.StockTransactionRepository
}

// NoOpTransactionScope is a transaction scope without real transactions,
// used in tests.
type NoOpTransactionScope struct {
	salesRepo    trade.SalesOrderRepository
	purchaseRepo trade.PurchaseOrderRepository
	stockRepo    inventory.StockRecordRepository
	stockTxRepo  inventory.StockTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	salesRepo trade.SalesOrderRepository,
	purchaseRepo trade.PurchaseOrderRepository,
	stockRepo inventory.StockRecordRepository,
	stockTxRepo inventory.StockTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		salesRepo:    salesRepo,
		purchaseRepo: purchaseRepo,
		stockRepo:    stockRepo,
		stockTxRepo:  stockTxRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesRepo
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseRepo
}

// StockRepo returns the stock record repository.
func (s *NoOpTransactionScope) StockRepo() inventory.StockRecordRepository {
	return s.stockRepo
}

// StockTransactionRepo returns the movement log repository.
func (s *NoOpTransactionScope) StockTransactionRepo() inventory.StockTransactionRepository {
	return s.stockTxRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
