package settlement

import (
	"context"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/settlement"
)

// TransactionScope provides transactional access to the repositories touched
// by one settlement operation: the payment, its linked documents, the contact
// and the contact's balance audit log. Every settlement create/update/delete
// must run inside one scope so all writes commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the settlement repositories
// that share the same underlying database transaction.
type TransactionalRepositories interface {
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() settlement.PaymentRepository
	// DocumentRepo returns the document repository scoped to the current transaction
	DocumentRepo() billing.DocumentRepository
	// ContactRepo returns the contact repository scoped to the current transaction
	ContactRepo() partner.ContactRepository
	// BalanceEntryRepo returns the balance audit log repository scoped to the current transaction
	BalanceEntryRepo() partner.BalanceEntryRepository
}

// NoOpTransactionScope is a transaction scope without real transactions,
// used in tests.
type NoOpTransactionScope struct {
	paymentRepo      settlement.PaymentRepository
	documentRepo     billing.DocumentRepository
	contactRepo      partner.ContactRepository
	balanceEntryRepo partner.BalanceEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	paymentRepo settlement.PaymentRepository,
	documentRepo billing.DocumentRepository,
	contactRepo partner.ContactRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		paymentRepo:      paymentRepo,
		documentRepo:     documentRepo,
		contactRepo:      contactRepo,
		balanceEntryRepo: balanceEntryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() settlement.PaymentRepository {
	return s.paymentRepo
}

// DocumentRepo returns the document repository.
func (s *NoOpTransactionScope) DocumentRepo() billing.DocumentRepository {
	return s.documentRepo
}

// ContactRepo returns the contact repository.
func (s *NoOpTransactionScope) ContactRepo() partner.ContactRepository {
	return s.contactRepo
}

// BalanceEntryRepo returns the balance audit log repository.
func (s *NoOpTransactionScope) BalanceEntryRepo() partner.BalanceEntryRepository {
	return s.balanceEntryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
