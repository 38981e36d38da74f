package trade

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/inventory"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSalesRepo is an in-memory trade.SalesOrderRepository
type fakeSalesRepo struct {
	orders map[uuid.UUID]*trade.SalesOrder
}

func newFakeSalesRepo() *fakeSalesRepo {
	return &fakeSalesRepo{orders: make(map[uuid.UUID]*trade.SalesOrder)}
}

func (r *fakeSalesRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *fakeSalesRepo) FindByNumber(_ context.Context, number string) (*trade.SalesOrder, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSalesRepo) FindByContact(_ context.Context, contactID uuid.UUID, _ shared.Filter) ([]trade.SalesOrder, error) {
	var out []trade.SalesOrder
	for _, o := range r.orders {
		if o.ContactID == contactID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) FindByStatus(_ context.Context, status trade.SalesOrderStatus, _ shared.Filter) ([]trade.SalesOrder, error) {
	var out []trade.SalesOrder
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.SalesOrder, error) {
	var out []trade.SalesOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeSalesRepo) Save(_ context.Context, o *trade.SalesOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeSalesRepo) SaveWithLock(_ context.Context, o *trade.SalesOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeSalesRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeSalesRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

// fakePurchaseRepo is an in-memory trade.PurchaseOrderRepository
type fakePurchaseRepo struct {
	orders map[uuid.UUID]*trade.PurchaseOrder
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{orders: make(map[uuid.UUID]*trade.PurchaseOrder)}
}

func (r *fakePurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (r *fakePurchaseRepo) FindByNumber(_ context.Context, number string) (*trade.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseRepo) FindByContact(_ context.Context, contactID uuid.UUID, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var out []trade.PurchaseOrder
	for _, o := range r.orders {
		if o.ContactID == contactID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) FindByStatus(_ context.Context, status trade.PurchaseOrderStatus, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var out []trade.PurchaseOrder
	for _, o := range r.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var out []trade.PurchaseOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakePurchaseRepo) Save(_ context.Context, o *trade.PurchaseOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakePurchaseRepo) SaveWithLock(_ context.Context, o *trade.PurchaseOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakePurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakePurchaseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

// fakeStockRepo is an in-memory inventory.StockRecordRepository
type fakeStockRepo struct {
	records map[uuid.UUID]*inventory.StockRecord
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[uuid.UUID]*inventory.StockRecord)}
}

func (r *fakeStockRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStockRepo) FindByProductID(_ context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	rec, ok := r.records[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rec, nil
}

func (r *fakeStockRepo) FindByProductIDs(_ context.Context, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	for _, id := range productIDs {
		if rec, ok := r.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeStockRepo) FindBelowReorderLevel(_ context.Context, _ shared.Filter) ([]inventory.StockRecord, error) {
	return nil, nil
}

func (r *fakeStockRepo) GetOrCreate(_ context.Context, productID uuid.UUID) (*inventory.StockRecord, error) {
	if rec, ok := r.records[productID]; ok {
		return rec, nil
	}
	rec, err := inventory.NewStockRecord(productID)
	if err != nil {
		return nil, err
	}
	r.records[productID] = rec
	return rec, nil
}

func (r *fakeStockRepo) Save(_ context.Context, record *inventory.StockRecord) error {
	r.records[record.ProductID] = record
	return nil
}

func (r *fakeStockRepo) SaveWithLock(_ context.Context, record *inventory.StockRecord) error {
	r.records[record.ProductID] = record
	return nil
}

func (r *fakeStockRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *fakeStockRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.records)), nil
}

// fakeStockTxRepo is an in-memory movement log
type fakeStockTxRepo struct {
	txs []*inventory.StockTransaction
}

func (r *fakeStockTxRepo) FindByID(_ context.Context, _ uuid.UUID) (*inventory.StockTransaction, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeStockTxRepo) FindByStockRecord(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockTransaction, error) {
	return nil, nil
}

func (r *fakeStockTxRepo) FindByProduct(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.StockTransaction, error) {
	return nil, nil
}

func (r *fakeStockTxRepo) FindByDocument(_ context.Context, documentType string, documentID uuid.UUID) ([]inventory.StockTransaction, error) {
	var out []inventory.StockTransaction
	for _, tx := range r.txs {
		if tx.DocumentRef.DocumentType == documentType && tx.DocumentRef.DocumentID != nil && *tx.DocumentRef.DocumentID == documentID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeStockTxRepo) FindByDateRange(_ context.Context, _, _ time.Time, _ shared.Filter) ([]inventory.StockTransaction, error) {
	return nil, nil
}

func (r *fakeStockTxRepo) Create(_ context.Context, tx *inventory.StockTransaction) error {
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeStockTxRepo) CreateBatch(_ context.Context, txs []*inventory.StockTransaction) error {
	r.txs = append(r.txs, txs...)
	return nil
}

func (r *fakeStockTxRepo) CountByProduct(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(r.txs)), nil
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

type orderFixture struct {
	salesSvc    *SalesOrderService
	purchaseSvc *PurchaseOrderService
	salesRepo   *fakeSalesRepo
	purchRepo   *fakePurchaseRepo
	stockRepo   *fakeStockRepo
	stockTxRepo *fakeStockTxRepo
}

func setupOrderServices() *orderFixture {
	salesRepo := newFakeSalesRepo()
	purchRepo := newFakePurchaseRepo()
	stockRepo := newFakeStockRepo()
	stockTxRepo := &fakeStockTxRepo{}
	scope := NewNoOpTransactionScope(salesRepo, purchRepo, stockRepo, stockTxRepo)
	gen := &fakeNumberGen{}

	return &orderFixture{
		salesSvc:    NewSalesOrderService(salesRepo, scope, gen),
		purchaseSvc: NewPurchaseOrderService(purchRepo, scope, gen),
		salesRepo:   salesRepo,
		purchRepo:   purchRepo,
		stockRepo:   stockRepo,
		stockTxRepo: stockTxRepo,
	}
}

// seedStock creates a stock record with the given on-hand quantity at cost 10
func (f *orderFixture) seedStock(t *testing.T, productID uuid.UUID, quantity int64) *inventory.StockRecord {
	t.Helper()
	record, err := inventory.NewStockRecord(productID)
	require.NoError(t, err)
	require.NoError(t, record.ApplyMovement(inventory.TransactionTypeOpening, decimal.NewFromInt(quantity), valueobject.NewMoneyUSDFromFloat(10)))
	record.ClearDomainEvents()
	f.stockRepo.records[productID] = record
	return record
}

func TestSalesOrderService_Create(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()

	resp, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Description: "Widget", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SO000001", resp.OrderNumber)
	assert.Equal(t, trade.SalesOrderStatusDraft, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestSalesOrderService_ConfirmReservesStock(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()
	record := f.seedStock(t, productID, 20)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Widget", Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	resp, err := f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	assert.Equal(t, trade.SalesOrderStatusConfirmed, resp.Status)
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(8)))
	assert.True(t, record.AvailableStock().Equal(decimal.NewFromInt(12)))
}

func TestSalesOrderService_ConfirmFailureReservesNothing(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	plenty := uuid.New()
	scarce := uuid.New()
	plentyRecord := f.seedStock(t, plenty, 100)
	f.seedStock(t, scarce, 2)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: plenty, Description: "Common", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			{ProductID: scarce, Description: "Rare", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientAvailableStock)

	// A failed confirmation leaves nothing reserved from the attempt
	assert.True(t, plentyRecord.ReservedStock.IsZero())
	assert.Equal(t, trade.SalesOrderStatusDraft, f.salesRepo.orders[created.ID].Status)
}

func TestSalesOrderService_Delivery(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()
	record := f.seedStock(t, productID, 20)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)
	itemID := created.Items[0].ID

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	// Partial delivery releases the reservation and consumes stock
	resp, err := f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{
		TargetStatus: "PARTIALLY_DELIVERED",
		Deliveries:   []QuantityLine{{ItemID: itemID, Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)

	assert.Equal(t, trade.SalesOrderStatusPartiallyDelivered, resp.Status)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(16)))
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(6)))
	assert.True(t, resp.Items[0].DeliveredQuantity.Equal(decimal.NewFromInt(4)))

	// The movement log references the order
	txs, err := f.stockTxRepo.FindByDocument(context.Background(), SalesOrderDocumentType, created.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, inventory.TransactionTypeSale, txs[0].TransactionType)
	assert.Equal(t, resp.OrderNumber, txs[0].DocumentRef.DocumentNumber)

	// Delivering the rest completes the order
	resp, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{
		TargetStatus: "DELIVERED",
		Deliveries:   []QuantityLine{{ItemID: itemID, Quantity: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)

	assert.Equal(t, trade.SalesOrderStatusDelivered, resp.Status)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, record.ReservedStock.IsZero())
}

func TestSalesOrderService_DeliveredRequiresFullDelivery(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()
	f.seedStock(t, productID, 20)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{
		TargetStatus: "DELIVERED",
		Deliveries:   []QuantityLine{{ItemID: created.Items[0].ID, Quantity: decimal.NewFromInt(3)}},
	})
	assert.Error(t, err)
}

func TestSalesOrderService_CancelReleasesUndelivered(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()
	record := f.seedStock(t, productID, 20)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Widget", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)
	itemID := created.Items[0].ID

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)
	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{
		TargetStatus: "PARTIALLY_DELIVERED",
		Deliveries:   []QuantityLine{{ItemID: itemID, Quantity: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)

	resp, err := f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CANCELLED"})
	require.NoError(t, err)

	// Only the undelivered 6 units were still reserved, all released now
	assert.Equal(t, trade.SalesOrderStatusCancelled, resp.Status)
	assert.True(t, record.ReservedStock.IsZero())
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(16)))
}

func TestSalesOrderService_IdempotentTransition(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()
	record := f.seedStock(t, productID, 20)

	created, err := f.salesSvc.Create(ctx, CreateSalesOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Widget", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)

	_, err = f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	// Re-confirming is a no-op, not a double reservation
	resp, err := f.salesSvc.Transition(ctx, created.ID, TransitionSalesOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, trade.SalesOrderStatusConfirmed, resp.Status)
	assert.True(t, record.ReservedStock.Equal(decimal.NewFromInt(5)))
}

func TestPurchaseOrderService_ReceiptsAddStock(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()

	created, err := f.purchaseSvc.Create(ctx, CreatePurchaseOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Raw material", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PO000001", created.OrderNumber)
	itemID := created.Items[0].ID

	_, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	resp, err := f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{
		TargetStatus: "PARTIALLY_RECEIVED",
		Receipts:     []QuantityLine{{ItemID: itemID, Quantity: decimal.NewFromInt(40)}},
	})
	require.NoError(t, err)

	assert.Equal(t, trade.PurchaseOrderStatusPartiallyReceived, resp.Status)
	assert.Equal(t, 40, resp.CompletionPercentage)
	assert.Equal(t, trade.ReceivingStatusPartial, resp.ReceivingStatus)

	// The receipt created the stock record at the purchase price
	record := f.stockRepo.records[productID]
	require.NotNil(t, record)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(40)))
	assert.True(t, record.AverageCost.Equal(decimal.NewFromInt(8)))

	// Receiving the rest completes the order
	resp, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{
		TargetStatus: "RECEIVED",
		Receipts:     []QuantityLine{{ItemID: itemID, Quantity: decimal.NewFromInt(60)}},
	})
	require.NoError(t, err)

	assert.Equal(t, trade.PurchaseOrderStatusReceived, resp.Status)
	assert.Equal(t, trade.ReceivingStatusCompleted, resp.ReceivingStatus)
	assert.True(t, record.CurrentStock.Equal(decimal.NewFromInt(100)))

	txs, err := f.stockTxRepo.FindByDocument(ctx, PurchaseOrderDocumentType, created.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestPurchaseOrderService_ReceivedRequiresFullReceipt(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()

	created, err := f.purchaseSvc.Create(ctx, CreatePurchaseOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Raw material", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	_, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	_, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{
		TargetStatus: "RECEIVED",
		Receipts:     []QuantityLine{{ItemID: created.Items[0].ID, Quantity: decimal.NewFromInt(10)}},
	})
	assert.Error(t, err)
}

func TestPurchaseOrderService_OverReceiptRejected(t *testing.T) {
	ctx := context.Background()
	f := setupOrderServices()
	productID := uuid.New()

	created, err := f.purchaseSvc.Create(ctx, CreatePurchaseOrderRequest{
		ContactID: uuid.New(),
		Items: []OrderItemRequest{
			{ProductID: productID, Description: "Raw material", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	_, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{TargetStatus: "CONFIRMED"})
	require.NoError(t, err)

	_, err = f.purchaseSvc.Transition(ctx, created.ID, TransitionPurchaseOrderRequest{
		TargetStatus: "PARTIALLY_RECEIVED",
		Receipts:     []QuantityLine{{ItemID: created.Items[0].ID, Quantity: decimal.NewFromInt(11)}},
	})
	assert.Error(t, err)
}
