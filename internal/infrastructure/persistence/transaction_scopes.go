package persistence

import (
	"context"

	appinv "github.com/bizledger/backend/internal/application/inventory"
	appsettlement "github.com/bizledger/backend/internal/application/settlement"
	apptrade "github.com/bizledger/backend/internal/application/trade"
	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/settlement"
	"github.com/bizledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the inventory application's
// TransactionScope using GORM transactions.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

type gormStockRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the stock record repository scoped to the current transaction
func (r *gormStockRepositories) StockRepo() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// TransactionRepo returns the movement log repository scoped to the current transaction
func (r *gormStockRepositories) TransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

// GormSettlementTransactionScope implements the settlement application's
// TransactionScope using GORM transactions. One scope covers the payment,
// the documents it credits, the contact balance and its audit log.
type GormSettlementTransactionScope struct {
	db *gorm.DB
}

// NewGormSettlementTransactionScope creates a new GormSettlementTransactionScope
func NewGormSettlementTransactionScope(db *gorm.DB) *GormSettlementTransactionScope {
	return &GormSettlementTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormSettlementTransactionScope) Execute(ctx context.Context, fn func(repos appsettlement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSettlementRepositories{tx: tx})
	})
}

type gormSettlementRepositories struct {
	tx *gorm.DB
}

// PaymentRepo returns the payment repository scoped to the current transaction
func (r *gormSettlementRepositories) PaymentRepo() settlement.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// DocumentRepo returns the document repository scoped to the current transaction
func (r *gormSettlementRepositories) DocumentRepo() billing.DocumentRepository {
	return NewGormDocumentRepository(r.tx)
}

// ContactRepo returns the contact repository scoped to the current transaction
func (r *gormSettlementRepositories) ContactRepo() partner.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// BalanceEntryRepo returns the balance audit log repository scoped to the current transaction
func (r *gormSettlementRepositories) BalanceEntryRepo() partner.BalanceEntryRepository {
	return NewGormBalanceEntryRepository(r.tx)
}

// GormOrderTransactionScope implements the trade application's
// TransactionScope using GORM transactions.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

// SalesOrderRepo returns the sales order repository scoped to the current transaction
func (r *gormOrderRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
func (r *gormOrderRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// StockRepo returns the stock record repository scoped to the current transaction
func (r *gormOrderRepositories) StockRepo() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// StockTransactionRepo returns the movement log repository scoped to the current transaction
func (r *gormOrderRepositories) StockTransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

// Interface conformance
var (
	_ appinv.TransactionScope        = (*GormStockTransactionScope)(nil)
	_ appsettlement.TransactionScope = (*GormSettlementTransactionScope)(nil)
	_ apptrade.TransactionScope      = (*GormOrderTransactionScope)(nil)
)
