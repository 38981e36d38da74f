package settlement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/billing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/settlement"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentRepo is an in-memory PaymentRepository
type fakePaymentRepo struct {
	payments map[uuid.UUID]*settlement.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*settlement.Payment)}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*settlement.Payment, error) {
	p, ok := r.payments[id]
	if !ok || !p.Active {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) FindByIDIncludingInactive(_ context.Context, id uuid.UUID) (*settlement.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) FindByNumber(_ context.Context, number string) (*settlement.Payment, error) {
	for _, p := range r.payments {
		if p.PaymentNumber == number && p.Active {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) FindByContact(_ context.Context, contactID uuid.UUID, _ shared.Filter) ([]settlement.Payment, error) {
	var out []settlement.Payment
	for _, p := range r.payments {
		if p.ContactID == contactID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]settlement.Payment, error) {
	var out []settlement.Payment
	for _, p := range r.payments {
		if !p.Active {
			continue
		}
		for i := range p.Allocations {
			if p.Allocations[i].DocumentID == documentID {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByStatus(_ context.Context, status settlement.PaymentStatus, _ shared.Filter) ([]settlement.Payment, error) {
	var out []settlement.Payment
	for _, p := range r.payments {
		if p.Status == status && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindAll(_ context.Context, _ shared.Filter) ([]settlement.Payment, error) {
	var out []settlement.Payment
	for _, p := range r.payments {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, p *settlement.Payment) error {
	r.payments[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) SaveWithLock(_ context.Context, p *settlement.Payment) error {
	r.payments[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Active {
			n++
		}
	}
	return n, nil
}

// fakeDocumentRepo is an in-memory billing.DocumentRepository
type fakeDocumentRepo struct {
	docs map[uuid.UUID]*billing.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*billing.Document)}
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDocumentRepo) FindByIDAndKind(ctx context.Context, id uuid.UUID, kind billing.DocumentKind) (*billing.Document, error) {
	d, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Kind != kind {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

func (r *fakeDocumentRepo) FindByNumber(_ context.Context, number string) (*billing.Document, error) {
	for _, d := range r.docs {
		if d.DocumentNumber == number {
			return d, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindByKind(_ context.Context, kind billing.DocumentKind, _ shared.Filter) ([]billing.Document, error) {
	var out []billing.Document
	for _, d := range r.docs {
		if d.Kind == kind {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindByContact(_ context.Context, contactID uuid.UUID, _ shared.Filter) ([]billing.Document, error) {
	var out []billing.Document
	for _, d := range r.docs {
		if d.ContactID == contactID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindOutstanding(_ context.Context, kind billing.DocumentKind, _ shared.Filter) ([]billing.Document, error) {
	var out []billing.Document
	for _, d := range r.docs {
		if d.Kind == kind && d.Status != billing.DocumentStatusCancelled && d.BalanceAmount.IsPositive() {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindOverdue(_ context.Context, kind billing.DocumentKind, asOf time.Time, _ shared.Filter) ([]billing.Document, error) {
	var out []billing.Document
	for _, d := range r.docs {
		if d.Kind == kind && d.IsOverdue(asOf) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Save(_ context.Context, d *billing.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocumentRepo) SaveWithLock(_ context.Context, d *billing.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) CountByKind(_ context.Context, kind billing.DocumentKind, _ shared.Filter) (int64, error) {
	var n int64
	for _, d := range r.docs {
		if d.Kind == kind {
			n++
		}
	}
	return n, nil
}

// fakeContactRepo is an in-memory partner.ContactRepository
type fakeContactRepo struct {
	contacts map[uuid.UUID]*partner.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[uuid.UUID]*partner.Contact)}
}

func (r *fakeContactRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeContactRepo) FindByName(_ context.Context, _ string, _ shared.Filter) ([]partner.Contact, error) {
	return nil, nil
}

func (r *fakeContactRepo) FindByType(_ context.Context, _ partner.ContactType, _ shared.Filter) ([]partner.Contact, error) {
	return nil, nil
}

func (r *fakeContactRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Contact, error) {
	var out []partner.Contact
	for _, c := range r.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeContactRepo) Save(_ context.Context, c *partner.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *fakeContactRepo) SaveWithLock(_ context.Context, c *partner.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *fakeContactRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.contacts, id)
	return nil
}

func (r *fakeContactRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.contacts)), nil
}

// fakeBalanceEntryRepo is an in-memory append-only balance audit log
type fakeBalanceEntryRepo struct {
	entries []*partner.BalanceEntry
}

func (r *fakeBalanceEntryRepo) Create(_ context.Context, entry *partner.BalanceEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeBalanceEntryRepo) FindByContact(_ context.Context, contactID uuid.UUID, _ shared.Filter) ([]partner.BalanceEntry, error) {
	var out []partner.BalanceEntry
	for _, e := range r.entries {
		if e.ContactID == contactID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeBalanceEntryRepo) FindByPayment(_ context.Context, paymentID uuid.UUID) ([]partner.BalanceEntry, error) {
	var out []partner.BalanceEntry
	for _, e := range r.entries {
		if e.PaymentID != nil && *e.PaymentID == paymentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// fakeNumberGen issues sequential numbers per sequence
type fakeNumberGen struct {
	counters map[string]int
}

func (g *fakeNumberGen) NextNumber(_ context.Context, sequence string) (string, error) {
	if g.counters == nil {
		g.counters = make(map[string]int)
	}
	g.counters[sequence]++
	return fmt.Sprintf("%s%06d", sequence, g.counters[sequence]), nil
}

type settlementFixture struct {
	svc         *SettlementService
	paymentRepo *fakePaymentRepo
	docRepo     *fakeDocumentRepo
	contactRepo *fakeContactRepo
	entryRepo   *fakeBalanceEntryRepo
}

func setupSettlementService(t *testing.T) *settlementFixture {
	t.Helper()
	paymentRepo := newFakePaymentRepo()
	docRepo := newFakeDocumentRepo()
	contactRepo := newFakeContactRepo()
	entryRepo := &fakeBalanceEntryRepo{}
	scope := NewNoOpTransactionScope(paymentRepo, docRepo, contactRepo, entryRepo)
	svc := NewSettlementService(paymentRepo, scope, &fakeNumberGen{})

	return &settlementFixture{
		svc:         svc,
		paymentRepo: paymentRepo,
		docRepo:     docRepo,
		contactRepo: contactRepo,
		entryRepo:   entryRepo,
	}
}

func (f *settlementFixture) addContact(t *testing.T, contactType partner.ContactType) *partner.Contact {
	t.Helper()
	c, err := partner.NewContact("Acme Trading", contactType)
	require.NoError(t, err)
	f.contactRepo.contacts[c.ID] = c
	return c
}

func (f *settlementFixture) addApprovedDocument(t *testing.T, kind billing.DocumentKind, number string, contactID uuid.UUID, total int64) *billing.Document {
	t.Helper()
	now := time.Now()
	doc, err := billing.NewDocument(kind, number, contactID, now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	_, err = doc.AddLineItem(nil, "Services", decimal.NewFromInt(1), decimal.NewFromInt(total), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, doc.Approve(uuid.New()))
	f.docRepo.docs[doc.ID] = doc
	return doc
}

func TestSettlementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("receipt allocates across documents", func(t *testing.T) {
		f := setupSettlementService(t)
		customer := f.addContact(t, partner.ContactTypeCustomer)
		inv1 := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 600)
		inv2 := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000002", customer.ID, 400)

		resp, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "RECEIPT",
			ContactID:   customer.ID,
			Amount:      decimal.NewFromInt(1000),
			PaymentDate: time.Now(),
			Method:      "CASH",
			Allocations: []AllocationRequest{
				{DocumentID: inv1.ID, Amount: decimal.NewFromInt(600)},
				{DocumentID: inv2.ID, Amount: decimal.NewFromInt(300)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "PAY000001", resp.PaymentNumber)
		assert.True(t, resp.TotalAllocated.Equal(decimal.NewFromInt(900)))
		assert.True(t, resp.UnallocatedAmount.Equal(decimal.NewFromInt(100)))

		// Fully allocated invoice flips to Paid, the partial one stays open
		assert.Equal(t, billing.DocumentStatusPaid, inv1.Status)
		assert.True(t, inv1.BalanceAmount.IsZero())
		assert.Equal(t, billing.DocumentStatusApproved, inv2.Status)
		assert.True(t, inv2.BalanceAmount.Equal(decimal.NewFromInt(100)))

		// Receipt increases the contact running balance by the full amount
		assert.True(t, customer.Balance.Equal(decimal.NewFromInt(1000)))
		assert.Len(t, f.entryRepo.entries, 1)
	})

	t.Run("payment to vendor decreases balance", func(t *testing.T) {
		f := setupSettlementService(t)
		vendor := f.addContact(t, partner.ContactTypeVendor)
		bill := f.addApprovedDocument(t, billing.DocumentKindBill, "BIL000001", vendor.ID, 500)

		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "PAYMENT",
			ContactID:   vendor.ID,
			Amount:      decimal.NewFromInt(500),
			PaymentDate: time.Now(),
			Method:      "BANK_TRANSFER",
			BankName:    "First National",
			AccountNumber: "12345678",
			Allocations: []AllocationRequest{{DocumentID: bill.ID, Amount: decimal.NewFromInt(500)}},
		})
		require.NoError(t, err)

		assert.Equal(t, billing.DocumentStatusPaid, bill.Status)
		assert.True(t, vendor.Balance.Equal(decimal.NewFromInt(-500)))
	})

	t.Run("rejects direction the contact cannot serve", func(t *testing.T) {
		f := setupSettlementService(t)
		vendor := f.addContact(t, partner.ContactTypeVendor)

		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "RECEIPT",
			ContactID:   vendor.ID,
			Amount:      decimal.NewFromInt(100),
			PaymentDate: time.Now(),
			Method:      "CASH",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidContactType)
	})

	t.Run("rejects allocation to a missing document", func(t *testing.T) {
		f := setupSettlementService(t)
		customer := f.addContact(t, partner.ContactTypeCustomer)

		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "RECEIPT",
			ContactID:   customer.ID,
			Amount:      decimal.NewFromInt(100),
			PaymentDate: time.Now(),
			Method:      "CASH",
			Allocations: []AllocationRequest{{DocumentID: uuid.New(), Amount: decimal.NewFromInt(100)}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects over-allocation", func(t *testing.T) {
		f := setupSettlementService(t)
		customer := f.addContact(t, partner.ContactTypeCustomer)
		inv := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 900)

		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "RECEIPT",
			ContactID:   customer.ID,
			Amount:      decimal.NewFromInt(500),
			PaymentDate: time.Now(),
			Method:      "CASH",
			Allocations: []AllocationRequest{{DocumentID: inv.ID, Amount: decimal.NewFromInt(600)}},
		})
		assert.ErrorIs(t, err, shared.ErrOverAllocation)
	})

	t.Run("rejects bank transfer without bank details", func(t *testing.T) {
		f := setupSettlementService(t)
		customer := f.addContact(t, partner.ContactTypeCustomer)

		_, err := f.svc.Create(ctx, CreatePaymentRequest{
			Direction:   "RECEIPT",
			ContactID:   customer.ID,
			Amount:      decimal.NewFromInt(100),
			PaymentDate: time.Now(),
			Method:      "BANK_TRANSFER",
		})
		assert.Error(t, err)
	})
}

func TestSettlementService_Update(t *testing.T) {
	ctx := context.Background()
	f := setupSettlementService(t)
	customer := f.addContact(t, partner.ContactTypeCustomer)
	inv1 := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 600)
	inv2 := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000002", customer.ID, 400)

	created, err := f.svc.Create(ctx, CreatePaymentRequest{
		Direction:   "RECEIPT",
		ContactID:   customer.ID,
		Amount:      decimal.NewFromInt(600),
		PaymentDate: time.Now(),
		Method:      "CASH",
		Allocations: []AllocationRequest{{DocumentID: inv1.ID, Amount: decimal.NewFromInt(600)}},
	})
	require.NoError(t, err)
	require.Equal(t, billing.DocumentStatusPaid, inv1.Status)

	// Move the money to the other invoice and halve the amount
	newAmount := decimal.NewFromInt(300)
	updated, err := f.svc.Update(ctx, created.ID, UpdatePaymentRequest{
		Amount:      &newAmount,
		Allocations: []AllocationRequest{{DocumentID: inv2.ID, Amount: decimal.NewFromInt(300)}},
	})
	require.NoError(t, err)

	// The old target is fully reversed, not double-counted
	assert.True(t, inv1.PaidAmount.IsZero())
	assert.Equal(t, billing.DocumentStatusApproved, inv1.Status)
	assert.True(t, inv2.PaidAmount.Equal(decimal.NewFromInt(300)))

	assert.True(t, updated.Amount.Equal(newAmount))
	require.Len(t, updated.Allocations, 1)
	assert.Equal(t, inv2.ID, updated.Allocations[0].DocumentID)

	// Contact balance reflects only the new amount
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(300)))
}

func TestSettlementService_Delete_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := setupSettlementService(t)
	customer := f.addContact(t, partner.ContactTypeCustomer)
	inv := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 800)

	created, err := f.svc.Create(ctx, CreatePaymentRequest{
		Direction:   "RECEIPT",
		ContactID:   customer.ID,
		Amount:      decimal.NewFromInt(800),
		PaymentDate: time.Now(),
		Method:      "CASH",
		Allocations: []AllocationRequest{{DocumentID: inv.ID, Amount: decimal.NewFromInt(800)}},
	})
	require.NoError(t, err)
	require.Equal(t, billing.DocumentStatusPaid, inv.Status)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	// Create followed by delete restores the original state
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, inv.BalanceAmount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, billing.DocumentStatusApproved, inv.Status)
	assert.True(t, customer.Balance.IsZero())

	// The payment survives as an inactive record
	p, err := f.paymentRepo.FindByIDIncludingInactive(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, p.Active)
	_, err = f.svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSettlementService_ClearedIsLocked(t *testing.T) {
	ctx := context.Background()
	f := setupSettlementService(t)
	customer := f.addContact(t, partner.ContactTypeCustomer)
	inv := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 500)

	created, err := f.svc.Create(ctx, CreatePaymentRequest{
		Direction:   "RECEIPT",
		ContactID:   customer.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Now(),
		Method:      "CASH",
		Allocations: []AllocationRequest{{DocumentID: inv.ID, Amount: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)

	approver := uuid.New()
	cleared, err := f.svc.MarkCleared(ctx, created.ID, approver)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusCleared, cleared.Status)
	assert.Equal(t, approver, *cleared.ClearedBy)
	assert.NotNil(t, cleared.ClearedAt)

	_, err = f.svc.Update(ctx, created.ID, UpdatePaymentRequest{})
	assert.ErrorIs(t, err, shared.ErrPaymentLocked)

	err = f.svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrPaymentLocked)

	// Document credits are untouched by the failed attempts
	assert.Equal(t, billing.DocumentStatusPaid, inv.Status)
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(500)))
}

func TestSettlementService_MarkBounced(t *testing.T) {
	ctx := context.Background()
	f := setupSettlementService(t)
	customer := f.addContact(t, partner.ContactTypeCustomer)
	inv := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 500)

	created, err := f.svc.Create(ctx, CreatePaymentRequest{
		Direction:   "RECEIPT",
		ContactID:   customer.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Now(),
		Method:      "CHECK",
		CheckNumber: "CHK-1042",
		Allocations: []AllocationRequest{{DocumentID: inv.ID, Amount: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)

	// A cleared check can still bounce
	_, err = f.svc.MarkCleared(ctx, created.ID, uuid.New())
	require.NoError(t, err)

	bounced, err := f.svc.MarkBounced(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusBounced, bounced.Status)

	// Credits are reversed; the status falls back by re-derivation
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Equal(t, billing.DocumentStatusApproved, inv.Status)
	assert.True(t, customer.Balance.IsZero())

	// Deleting the bounced payment must not reverse a second time
	require.NoError(t, f.svc.Delete(ctx, created.ID))
	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, customer.Balance.IsZero())
}

func TestSettlementService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := setupSettlementService(t)
	customer := f.addContact(t, partner.ContactTypeCustomer)
	inv := f.addApprovedDocument(t, billing.DocumentKindInvoice, "INV000001", customer.ID, 300)

	created, err := f.svc.Create(ctx, CreatePaymentRequest{
		Direction:   "RECEIPT",
		ContactID:   customer.ID,
		Amount:      decimal.NewFromInt(300),
		PaymentDate: time.Now(),
		Method:      "CASH",
		Allocations: []AllocationRequest{{DocumentID: inv.ID, Amount: decimal.NewFromInt(300)}},
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.PaymentStatusCancelled, cancelled.Status)

	assert.True(t, inv.PaidAmount.IsZero())
	assert.True(t, customer.Balance.IsZero())

	// Cancelled is terminal
	_, err = f.svc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}
