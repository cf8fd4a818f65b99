package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// memStore is a single in-memory database shared by all fake repositories.
// One mutex serializes transactions; the fake transactor snapshots the whole
// store and restores it on error, so rollback semantics match the real thing.
type memStore struct {
	mu sync.Mutex

	customers   map[uuid.UUID]entity.Customer
	products    map[uuid.UUID]entity.Product
	warehouses  map[uuid.UUID]entity.Warehouse
	levels      map[levelKey]int
	adjustments []entity.StockAdjustment
	invoices    map[uuid.UUID]entity.Invoice
	payments    []entity.Payment
	quotations  map[uuid.UUID]entity.Quotation
}

type levelKey struct {
	product   uuid.UUID
	warehouse uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		customers:  make(map[uuid.UUID]entity.Customer),
		products:   make(map[uuid.UUID]entity.Product),
		warehouses: make(map[uuid.UUID]entity.Warehouse),
		levels:     make(map[levelKey]int),
		invoices:   make(map[uuid.UUID]entity.Invoice),
		quotations: make(map[uuid.UUID]entity.Quotation),
	}
}

// txMarker flags a context as already holding the store lock.
type txMarker struct{}

func (st *memStore) enter(ctx context.Context) func() {
	if ctx.Value(txMarker{}) != nil {
		return func() {}
	}
	st.mu.Lock()
	return st.mu.Unlock
}

type storeSnapshot struct {
	customers   map[uuid.UUID]entity.Customer
	products    map[uuid.UUID]entity.Product
	warehouses  map[uuid.UUID]entity.Warehouse
	levels      map[levelKey]int
	adjustments []entity.StockAdjustment
	invoices    map[uuid.UUID]entity.Invoice
	payments    []entity.Payment
	quotations  map[uuid.UUID]entity.Quotation
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return inv
}

func cloneQuotation(q entity.Quotation) entity.Quotation {
	q.Items = append([]entity.QuotationItem(nil), q.Items...)
	return q
}

func (st *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		customers:   make(map[uuid.UUID]entity.Customer, len(st.customers)),
		products:    make(map[uuid.UUID]entity.Product, len(st.products)),
		warehouses:  make(map[uuid.UUID]entity.Warehouse, len(st.warehouses)),
		levels:      make(map[levelKey]int, len(st.levels)),
		adjustments: append([]entity.StockAdjustment(nil), st.adjustments...),
		payments:    append([]entity.Payment(nil), st.payments...),
		invoices:    make(map[uuid.UUID]entity.Invoice, len(st.invoices)),
		quotations:  make(map[uuid.UUID]entity.Quotation, len(st.quotations)),
	}
	for id, c := range st.customers {
		snap.customers[id] = c
	}
	for id, p := range st.products {
		snap.products[id] = p
	}
	for id, w := range st.warehouses {
		snap.warehouses[id] = w
	}
	for k, q := range st.levels {
		snap.levels[k] = q
	}
	for id, inv := range st.invoices {
		snap.invoices[id] = cloneInvoice(inv)
	}
	for id, q := range st.quotations {
		snap.quotations[id] = cloneQuotation(q)
	}
	return snap
}

func (st *memStore) restore(snap storeSnapshot) {
	st.customers = snap.customers
	st.products = snap.products
	st.warehouses = snap.warehouses
	st.levels = snap.levels
	st.adjustments = snap.adjustments
	st.invoices = snap.invoices
	st.payments = snap.payments
	st.quotations = snap.quotations
}

// fakeTransactor serializes transactions on the store mutex and rolls the
// whole store back when the function returns an error.
type fakeTransactor struct{ st *memStore }

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	t.st.mu.Lock()
	defer t.st.mu.Unlock()
	snap := t.st.snapshot()
	err := fn(context.WithValue(ctx, txMarker{}, true))
	if err != nil {
		t.st.restore(snap)
	}
	return err
}

type fakeCustomerRepo struct{ st *memStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	defer r.st.enter(ctx)()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.st.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	defer r.st.enter(ctx)()
	c, ok := r.st.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	defer r.st.enter(ctx)()
	r.st.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.st.enter(ctx)()
	delete(r.st.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	defer r.st.enter(ctx)()
	out := make([]entity.Customer, 0, len(r.st.customers))
	for _, c := range r.st.customers {
		if params != nil && params.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) IncreaseBalanceWithinLimit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	defer r.st.enter(ctx)()
	c, ok := r.st.customers[id]
	if !ok {
		return false, nil
	}
	next := c.OutstandingBalance.Add(amount)
	if !c.CreditLimit.IsZero() && next.GreaterThan(c.CreditLimit) {
		return false, nil
	}
	c.OutstandingBalance = next
	r.st.customers[id] = c
	return true, nil
}

func (r *fakeCustomerRepo) DecreaseBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	defer r.st.enter(ctx)()
	c, ok := r.st.customers[id]
	if !ok {
		return nil
	}
	c.OutstandingBalance = c.OutstandingBalance.Sub(amount)
	r.st.customers[id] = c
	return nil
}

type fakeProductRepo struct{ st *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	defer r.st.enter(ctx)()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.st.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	defer r.st.enter(ctx)()
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	defer r.st.enter(ctx)()
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	defer r.st.enter(ctx)()
	for _, p := range r.st.products {
		if p.SKU != nil && *p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	defer r.st.enter(ctx)()
	r.st.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	defer r.st.enter(ctx)()
	out := make([]entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	defer r.st.enter(ctx)()
	var out []entity.Product
	for _, p := range r.st.products {
		if !p.IsActive {
			continue
		}
		total := 0
		for k, q := range r.st.levels {
			if k.product == p.ID {
				total += q
			}
		}
		if total <= p.MinStockLevel {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct{ st *memStore }

func (r *fakeWarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	defer r.st.enter(ctx)()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.st.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	defer r.st.enter(ctx)()
	w, ok := r.st.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *fakeWarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	defer r.st.enter(ctx)()
	for _, w := range r.st.warehouses {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) List(ctx context.Context) ([]entity.Warehouse, error) {
	defer r.st.enter(ctx)()
	out := make([]entity.Warehouse, 0, len(r.st.warehouses))
	for _, w := range r.st.warehouses {
		out = append(out, w)
	}
	return out, nil
}

type fakeStockRepo struct{ st *memStore }

func (r *fakeStockRepo) ApplyAdjustment(ctx context.Context, adj *entity.StockAdjustment) (bool, error) {
	defer r.st.enter(ctx)()
	key := levelKey{product: adj.ProductID, warehouse: adj.WarehouseID}
	next := r.st.levels[key] + adj.Quantity
	if next < 0 {
		return false, nil
	}
	r.st.levels[key] = next
	if adj.ID == uuid.Nil {
		adj.ID = uuid.New()
	}
	if adj.CreatedAt.IsZero() {
		adj.CreatedAt = time.Now()
	}
	adj.BalanceAfter = next
	r.st.adjustments = append(r.st.adjustments, *adj)
	return true, nil
}

func (r *fakeStockRepo) CurrentStock(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error) {
	defer r.st.enter(ctx)()
	total := 0
	for k, q := range r.st.levels {
		if k.product != productID {
			continue
		}
		if warehouseID != nil && k.warehouse != *warehouseID {
			continue
		}
		total += q
	}
	return total, nil
}

func (r *fakeStockRepo) History(ctx context.Context, productID uuid.UUID, offset, limit int) ([]entity.StockAdjustment, int64, error) {
	defer r.st.enter(ctx)()
	var all []entity.StockAdjustment
	for i := len(r.st.adjustments) - 1; i >= 0; i-- {
		if r.st.adjustments[i].ProductID == productID {
			all = append(all, r.st.adjustments[i])
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeStockRepo) SumAdjustments(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error) {
	defer r.st.enter(ctx)()
	sum := 0
	for _, adj := range r.st.adjustments {
		if adj.ProductID != productID {
			continue
		}
		if warehouseID != nil && adj.WarehouseID != *warehouseID {
			continue
		}
		sum += adj.Quantity
	}
	return sum, nil
}

func (r *fakeStockRepo) Levels(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error) {
	defer r.st.enter(ctx)()
	var out []entity.StockLevel
	for k, q := range r.st.levels {
		if k.product == productID {
			out = append(out, entity.StockLevel{
				ProductID:   k.product,
				WarehouseID: k.warehouse,
				Quantity:    q,
			})
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct{ st *memStore }

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	defer r.st.enter(ctx)()
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	for i := range inv.Items {
		if inv.Items[i].ID == uuid.Nil {
			inv.Items[i].ID = uuid.New()
		}
		inv.Items[i].InvoiceID = inv.ID
	}
	r.st.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	defer r.st.enter(ctx)()
	inv, ok := r.st.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Items = nil
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	defer r.st.enter(ctx)()
	inv, ok := r.st.invoices[id]
	if !ok {
		return nil, nil
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	defer r.st.enter(ctx)()
	for _, inv := range r.st.invoices {
		if inv.InvoiceNo == invoiceNo {
			inv = cloneInvoice(inv)
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	defer r.st.enter(ctx)()
	var out []entity.Invoice
	for _, inv := range r.st.invoices {
		if params != nil && params.Status != nil && inv.Status != *params.Status {
			continue
		}
		if params != nil && params.CustomerID != nil {
			if inv.CustomerID == nil || *inv.CustomerID != *params.CustomerID {
				continue
			}
		}
		out = append(out, cloneInvoice(inv))
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListAllByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	defer r.st.enter(ctx)()
	var out []entity.Invoice
	for _, inv := range r.st.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	defer r.st.enter(ctx)()
	var n int64
	for _, inv := range r.st.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	defer r.st.enter(ctx)()
	var out []entity.Invoice
	for _, inv := range r.st.invoices {
		if inv.CreatedAt.Before(start) || inv.CreatedAt.After(end) {
			continue
		}
		out = append(out, cloneInvoice(inv))
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	defer r.st.enter(ctx)()
	inv, ok := r.st.invoices[id]
	if !ok {
		return false, nil
	}
	paid := inv.AmountPaid.Add(amount)
	if paid.GreaterThan(inv.Total) {
		return false, nil
	}
	inv.AmountPaid = paid
	inv.BalanceDue = inv.Total.Sub(paid)
	switch {
	case paid.GreaterThanOrEqual(inv.Total):
		inv.Status = enum.InvoiceStatusPaid
	case paid.IsPositive():
		inv.Status = enum.InvoiceStatusPartial
	default:
		inv.Status = enum.InvoiceStatusUnpaid
	}
	r.st.invoices[id] = inv
	return true, nil
}

func (r *fakeInvoiceRepo) SumTotalsByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	defer r.st.enter(ctx)()
	sum := decimal.Zero
	for _, inv := range r.st.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			sum = sum.Add(inv.Total)
		}
	}
	return sum, nil
}

type fakePaymentRepo struct{ st *memStore }

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	defer r.st.enter(ctx)()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.st.payments = append(r.st.payments, *p)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	defer r.st.enter(ctx)()
	for _, p := range r.st.payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	defer r.st.enter(ctx)()
	out := append([]entity.Payment(nil), r.st.payments...)
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	defer r.st.enter(ctx)()
	var out []entity.Payment
	for _, p := range r.st.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	defer r.st.enter(ctx)()
	var out []entity.Payment
	for _, p := range r.st.payments {
		if p.CustomerID != nil && *p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumAmountsByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	defer r.st.enter(ctx)()
	sum := decimal.Zero
	for _, p := range r.st.payments {
		if p.CustomerID != nil && *p.CustomerID == customerID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

type fakeQuotationRepo struct{ st *memStore }

func (r *fakeQuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	defer r.st.enter(ctx)()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	for i := range q.Items {
		if q.Items[i].ID == uuid.Nil {
			q.Items[i].ID = uuid.New()
		}
		q.Items[i].QuotationID = q.ID
	}
	r.st.quotations[q.ID] = cloneQuotation(*q)
	return nil
}

func (r *fakeQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	defer r.st.enter(ctx)()
	q, ok := r.st.quotations[id]
	if !ok {
		return nil, nil
	}
	q.Items = nil
	return &q, nil
}

func (r *fakeQuotationRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	defer r.st.enter(ctx)()
	q, ok := r.st.quotations[id]
	if !ok {
		return nil, nil
	}
	q = cloneQuotation(q)
	return &q, nil
}

func (r *fakeQuotationRepo) List(ctx context.Context, params *repository.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	defer r.st.enter(ctx)()
	var out []entity.Quotation
	for _, q := range r.st.quotations {
		if params != nil && params.Status != nil && q.Status != *params.Status {
			continue
		}
		out = append(out, cloneQuotation(q))
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuotationRepo) MarkConverted(ctx context.Context, id uuid.UUID) (bool, error) {
	defer r.st.enter(ctx)()
	q, ok := r.st.quotations[id]
	if !ok || q.Status != enum.QuotationStatusOpen {
		return false, nil
	}
	q.Status = enum.QuotationStatusConverted
	r.st.quotations[id] = q
	return true, nil
}

func (r *fakeQuotationRepo) SetConvertedInvoice(ctx context.Context, id, invoiceID uuid.UUID) error {
	defer r.st.enter(ctx)()
	q, ok := r.st.quotations[id]
	if !ok {
		return nil
	}
	q.ConvertedInvoiceID = &invoiceID
	r.st.quotations[id] = q
	return nil
}

// testEnv wires every service against one shared in-memory store, seeded with
// the default Main warehouse and a seller in Maharashtra (state code 27).
type testEnv struct {
	st        *memStore
	warehouse uuid.UUID

	customerRepo *fakeCustomerRepo
	stockRepo    *fakeStockRepo
	invoiceRepo  *fakeInvoiceRepo
	quoteRepo    *fakeQuotationRepo

	customers  *CustomerService
	stock      *StockService
	invoices   *InvoiceService
	payments   *PaymentService
	quotations *QuotationService
	reports    *ReportService
}

const testSellerState = "27"

func newTestEnv() *testEnv {
	st := newMemStore()
	customerRepo := &fakeCustomerRepo{st: st}
	productRepo := &fakeProductRepo{st: st}
	warehouseRepo := &fakeWarehouseRepo{st: st}
	stockRepo := &fakeStockRepo{st: st}
	invoiceRepo := &fakeInvoiceRepo{st: st}
	paymentRepo := &fakePaymentRepo{st: st}
	quoteRepo := &fakeQuotationRepo{st: st}
	txr := &fakeTransactor{st: st}

	main := &entity.Warehouse{Name: "Main", Type: enum.WarehouseTypeMain, IsActive: true}
	_ = warehouseRepo.Create(context.Background(), main)

	return &testEnv{
		st:           st,
		warehouse:    main.ID,
		customerRepo: customerRepo,
		stockRepo:    stockRepo,
		invoiceRepo:  invoiceRepo,
		quoteRepo:    quoteRepo,
		customers:    NewCustomerService(customerRepo, invoiceRepo, paymentRepo),
		stock:        NewStockService(stockRepo, productRepo, warehouseRepo),
		invoices:     NewInvoiceService(invoiceRepo, customerRepo, productRepo, stockRepo, warehouseRepo, txr, testSellerState),
		payments:     NewPaymentService(paymentRepo, invoiceRepo, customerRepo, txr),
		quotations:   NewQuotationService(quoteRepo, invoiceRepo, customerRepo, productRepo, stockRepo, warehouseRepo, txr, testSellerState),
		reports:      NewReportService(invoiceRepo, productRepo),
	}
}

func (e *testEnv) seedCustomer(t *testing.T, c entity.Customer) *entity.Customer {
	t.Helper()
	if c.State == "" {
		c.State = "Maharashtra"
	}
	if c.StateCode == "" {
		c.StateCode = testSellerState
	}
	if err := e.customerRepo.Create(context.Background(), &c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &c
}

func (e *testEnv) seedProduct(t *testing.T, name, price, taxRate string, stock int) *entity.Product {
	t.Helper()
	p := entity.Product{
		Name:     name,
		UOM:      "PCS",
		Price:    dec(price),
		TaxRate:  dec(taxRate),
		IsActive: true,
	}
	if err := (&fakeProductRepo{st: e.st}).Create(context.Background(), &p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if stock > 0 {
		ok, err := e.stockRepo.ApplyAdjustment(context.Background(), &entity.StockAdjustment{
			ProductID:   p.ID,
			WarehouseID: e.warehouse,
			Quantity:    stock,
			Type:        enum.AdjustmentTypeIn,
			Reason:      enum.AdjustmentReasonPurchase,
		})
		if err != nil || !ok {
			t.Fatalf("seed stock: ok=%v err=%v", ok, err)
		}
	}
	return &p
}

func (e *testEnv) currentStock(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	n, err := e.stockRepo.CurrentStock(context.Background(), productID, nil)
	if err != nil {
		t.Fatalf("current stock: %v", err)
	}
	return n
}

func (e *testEnv) customerBalance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	c, err := e.customerRepo.GetByID(context.Background(), id)
	if err != nil || c == nil {
		t.Fatalf("customer %s: err=%v", id, err)
	}
	return c.OutstandingBalance
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
