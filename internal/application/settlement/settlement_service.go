package settlement

import (
	"context"
	"fmt"
	"sort"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/settlement"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSequence is the numbering sequence for payment numbers
const PaymentSequence = "PAY"

// NumberGenerator issues sequential document numbers (e.g. PAY000042)
type NumberGenerator interface {
	NextNumber(ctx context.Context, sequence string) (string, error)
}

// SettlementService orchestrates payments against documents and the contact
// running balance. Every mutation runs inside one transaction scope: the
// payment, each linked document and the contact balance commit atomically.
type SettlementService struct {
	paymentRepo    settlement.PaymentRepository
	txScope        TransactionScope
	numberGen      NumberGenerator
	eventPublisher shared.EventPublisher
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	paymentRepo settlement.PaymentRepository,
	txScope TransactionScope,
	numberGen NumberGenerator,
) *SettlementService {
	return &SettlementService{
		paymentRepo: paymentRepo,
		txScope:     txScope,
		numberGen:   numberGen,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SettlementService) publishDomainEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
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

// GetByID retrieves a payment by ID
func (s *SettlementService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *SettlementService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
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
	if filter.Direction != "" {
		domainFilter.Filters["direction"] = filter.Direction
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentResponses(payments), total, nil
}

// GetByDocument retrieves payments allocated to a document
func (s *SettlementService) GetByDocument(ctx context.Context, documentID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// Create records a new payment and applies its allocations: each linked
// document's paid amount is incremented and the contact's running balance is
// adjusted, all in one transaction.
func (s *SettlementService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	direction := settlement.PaymentDirection(req.Direction)
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid payment direction")
	}

	method, err := s.buildMethodDetails(req.Method, req.BankName, req.AccountNumber, req.CheckNumber, req.CardReference)
	if err != nil {
		return nil, err
	}

	var (
		payment *settlement.Payment
		contact *partner.Contact
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		contact, err = repos.ContactRepo().FindByID(ctx, req.ContactID)
		if err != nil {
			return err
		}
		if !contact.Active {
			return shared.ErrNotFound
		}
		if err := checkContactCapability(contact, direction); err != nil {
			return err
		}

		number, err := s.numberGen.NextNumber(ctx, PaymentSequence)
		if err != nil {
			return err
		}

		payment, err = settlement.NewPayment(number, direction, contact.ID, req.Amount, req.PaymentDate, method)
		if err != nil {
			return err
		}
		if req.OperatorID != nil {
			payment.SetCreatedBy(*req.OperatorID)
		}
		if req.Notes != "" {
			payment.Notes = req.Notes
		}

		if err := s.applyAllocations(ctx, repos, payment, req.Allocations); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		return s.adjustContactBalance(ctx, repos, contact, balanceDelta(direction, payment.Amount), payment,
			fmt.Sprintf("settlement %s", payment.PaymentNumber))
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, payment, contact)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Update reworks an uncleared payment. The old allocations are fully
// reversed first — each document's paid amount decremented and the contact
// delta reverted — and only then are the new amount and allocations
// validated and applied. Applying before reversing would double-count.
func (s *SettlementService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	var (
		payment *settlement.Payment
		contact *partner.Contact
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !payment.IsEditable() {
			return shared.ErrPaymentLocked
		}

		contact, err = repos.ContactRepo().FindByID(ctx, payment.ContactID)
		if err != nil {
			return err
		}

		// Reverse the old allocations and contact delta
		if err := s.reverseAllocations(ctx, repos, payment); err != nil {
			return err
		}
		if err := s.adjustContactBalance(ctx, repos, contact, balanceDelta(payment.Direction, payment.Amount).Neg(), payment,
			fmt.Sprintf("reversal of %s", payment.PaymentNumber)); err != nil {
			return err
		}

		// Rework the payment
		if err := payment.ClearAllocations(); err != nil {
			return err
		}
		if req.Amount != nil {
			if err := payment.ChangeAmount(*req.Amount); err != nil {
				return err
			}
		}
		if req.PaymentDate != nil {
			payment.PaymentDate = *req.PaymentDate
		}
		if req.Method != "" {
			method, err := s.buildMethodDetails(req.Method, req.BankName, req.AccountNumber, req.CheckNumber, req.CardReference)
			if err != nil {
				return err
			}
			payment.Method = method
		}
		if req.Notes != nil {
			payment.Notes = *req.Notes
		}

		// Re-apply against the new amount and allocation list
		if err := s.applyAllocations(ctx, repos, payment, req.Allocations); err != nil {
			return err
		}

		if err := repos.PaymentRepo().SaveWithLock(ctx, payment); err != nil {
			return err
		}

		return s.adjustContactBalance(ctx, repos, contact, balanceDelta(payment.Direction, payment.Amount), payment,
			fmt.Sprintf("settlement %s", payment.PaymentNumber))
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, payment, contact)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Delete soft-deletes a payment, reversing its effect on documents and the
// contact balance. Cleared payments cannot be deleted. Bounced and cancelled
// payments were already reversed when they left Pending, so only the record
// itself is deactivated.
func (s *SettlementService) Delete(ctx context.Context, id uuid.UUID) error {
	var (
		payment *settlement.Payment
		contact *partner.Contact
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if payment.Status == settlement.PaymentStatusCleared {
			return shared.ErrPaymentLocked
		}

		if payment.Status == settlement.PaymentStatusPending {
			contact, err = repos.ContactRepo().FindByID(ctx, payment.ContactID)
			if err != nil {
				return err
			}
			if err := s.reverseAllocations(ctx, repos, payment); err != nil {
				return err
			}
			if err := s.adjustContactBalance(ctx, repos, contact, balanceDelta(payment.Direction, payment.Amount).Neg(), payment,
				fmt.Sprintf("deletion of %s", payment.PaymentNumber)); err != nil {
				return err
			}
		}

		if err := payment.Deactivate(); err != nil {
			return err
		}
		return repos.PaymentRepo().SaveWithLock(ctx, payment)
	})
	if err != nil {
		return err
	}

	if contact != nil {
		s.publishDomainEvents(ctx, payment, contact)
	} else {
		s.publishDomainEvents(ctx, payment)
	}
	return nil
}

// MarkCleared stamps the approver and clears the payment, locking it against
// further edits and deletes. Document effects were applied at creation.
func (s *SettlementService) MarkCleared(ctx context.Context, id, approverID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.MarkCleared(approverID); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.SaveWithLock(ctx, payment); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, payment)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// MarkBounced records a failed payment and reverses the credits it had
// applied to documents and the contact balance. Bouncing is allowed even
// after clearing.
func (s *SettlementService) MarkBounced(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	var (
		payment *settlement.Payment
		contact *partner.Contact
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Credits are live only while the payment sits in Pending or Cleared
		creditsApplied := payment.Status == settlement.PaymentStatusPending ||
			payment.Status == settlement.PaymentStatusCleared

		if err := payment.MarkBounced(); err != nil {
			return err
		}

		if creditsApplied {
			contact, err = repos.ContactRepo().FindByID(ctx, payment.ContactID)
			if err != nil {
				return err
			}
			if err := s.reverseAllocations(ctx, repos, payment); err != nil {
				return err
			}
			if err := s.adjustContactBalance(ctx, repos, contact, balanceDelta(payment.Direction, payment.Amount).Neg(), payment,
				fmt.Sprintf("bounce of %s", payment.PaymentNumber)); err != nil {
				return err
			}
		}

		return repos.PaymentRepo().SaveWithLock(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	if contact != nil {
		s.publishDomainEvents(ctx, payment, contact)
	} else {
		s.publishDomainEvents(ctx, payment)
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Cancel voids a pending payment, reversing its document credits and the
// contact balance delta.
func (s *SettlementService) Cancel(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	var (
		payment *settlement.Payment
		contact *partner.Contact
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := payment.Cancel(); err != nil {
			return err
		}

		contact, err = repos.ContactRepo().FindByID(ctx, payment.ContactID)
		if err != nil {
			return err
		}
		if err := s.reverseAllocations(ctx, repos, payment); err != nil {
			return err
		}
		if err := s.adjustContactBalance(ctx, repos, contact, balanceDelta(payment.Direction, payment.Amount).Neg(), payment,
			fmt.Sprintf("cancellation of %s", payment.PaymentNumber)); err != nil {
			return err
		}

		return repos.PaymentRepo().SaveWithLock(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, payment, contact)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// applyAllocations attributes the payment to each requested document and
// increments the document's paid amount. Documents are processed in sorted-id
// order so concurrent settlements lock them in a canonical sequence.
func (s *SettlementService) applyAllocations(ctx context.Context, repos TransactionalRepositories, payment *settlement.Payment, allocations []AllocationRequest) error {
	sorted := make([]AllocationRequest, len(allocations))
	copy(sorted, allocations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DocumentID.String() < sorted[j].DocumentID.String()
	})

	for _, alloc := range sorted {
		doc, err := repos.DocumentRepo().FindByID(ctx, alloc.DocumentID)
		if err != nil {
			return err
		}
		if err := payment.AddAllocation(doc.Kind, doc.ID, doc.DocumentNumber, alloc.Amount); err != nil {
			return err
		}
		if err := doc.ApplySettlement(alloc.Amount); err != nil {
			return err
		}
		if err := repos.DocumentRepo().SaveWithLock(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// reverseAllocations decrements each allocated document's paid amount by the
// allocation it carries, in sorted-id order.
func (s *SettlementService) reverseAllocations(ctx context.Context, repos TransactionalRepositories, payment *settlement.Payment) error {
	sorted := make([]settlement.Allocation, len(payment.Allocations))
	copy(sorted, payment.Allocations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DocumentID.String() < sorted[j].DocumentID.String()
	})

	for _, alloc := range sorted {
		doc, err := repos.DocumentRepo().FindByID(ctx, alloc.DocumentID)
		if err != nil {
			return err
		}
		if err := doc.ReverseSettlement(alloc.AllocatedAmount); err != nil {
			return err
		}
		if err := repos.DocumentRepo().SaveWithLock(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettlementService) adjustContactBalance(ctx context.Context, repos TransactionalRepositories, contact *partner.Contact, delta decimal.Decimal, payment *settlement.Payment, note string) error {
	entry, err := contact.AdjustBalance(delta, &payment.ID, note)
	if err != nil {
		return err
	}
	if err := repos.ContactRepo().SaveWithLock(ctx, contact); err != nil {
		return err
	}
	return repos.BalanceEntryRepo().Create(ctx, entry)
}

func (s *SettlementService) buildMethodDetails(method, bankName, accountNumber, checkNumber, cardReference string) (settlement.MethodDetails, error) {
	switch settlement.PaymentMethod(method) {
	case settlement.MethodCash:
		return settlement.NewCashDetails(), nil
	case settlement.MethodBankTransfer:
		return settlement.NewBankTransferDetails(bankName, accountNumber)
	case settlement.MethodCheck:
		return settlement.NewCheckDetails(checkNumber)
	case settlement.MethodCard:
		return settlement.NewCardDetails(cardReference)
	default:
		return settlement.MethodDetails{}, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}
}

// checkContactCapability verifies the contact's role matches the direction:
// receipts come from customers, payments go to vendors.
func checkContactCapability(contact *partner.Contact, direction settlement.PaymentDirection) error {
	switch direction {
	case settlement.DirectionReceipt:
		if !contact.ContactType.IsCustomerCapable() {
			return shared.ErrInvalidContactType
		}
	case settlement.DirectionPayment:
		if !contact.ContactType.IsVendorCapable() {
			return shared.ErrInvalidContactType
		}
	}
	return nil
}

// balanceDelta returns the signed contact-balance effect of a payment:
// receipts increase the running balance, payments decrease it.
func balanceDelta(direction settlement.PaymentDirection, amount decimal.Decimal) decimal.Decimal {
	if direction == settlement.DirectionReceipt {
		return amount
	}
	return amount.Neg()
}
