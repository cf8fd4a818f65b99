package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/pkg/apperror"
)

func openQuotation(t *testing.T, env *testEnv, customer *entity.Customer, product *entity.Product, qty int) *entity.Quotation {
	t.Helper()
	input := &CreateQuotationInput{
		CustomerName: "Walk-in",
		Items:        []QuotationItemInput{{ProductID: product.ID, Quantity: qty}},
	}
	if customer != nil {
		input.CustomerID = &customer.ID
	}
	q, err := env.quotations.CreateQuotation(context.Background(), input)
	if err != nil {
		t.Fatalf("create quotation: %v", err)
	}
	return q
}

func TestCreateQuotation_HasNoSideEffects(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{Name: "Prospect", Phone: "9876500020"})
	product := env.seedProduct(t, "Ply Sheet", "250.00", "0.18", 40)

	q := openQuotation(t, env, customer, product, 10)

	if q.Status != enum.QuotationStatusOpen {
		t.Errorf("status = %s, want OPEN", q.Status)
	}
	if got := q.Total.StringFixed(2); got != "2950.00" {
		t.Errorf("total = %s, want 2950.00", got)
	}
	// Quoting reserves nothing.
	if got := env.currentStock(t, product.ID); got != 40 {
		t.Errorf("stock = %d, want 40 untouched", got)
	}
	if b := env.customerBalance(t, customer.ID); !b.IsZero() {
		t.Errorf("balance = %s, want 0 untouched", b)
	}
}

func TestConvert_BillsSnapshotsNotCurrentPrices(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{Name: "Quoted Co", Phone: "9876500021"})
	product := env.seedProduct(t, "Plank", "100.00", "0.18", 50)
	q := openQuotation(t, env, customer, product, 10)

	// The catalog price changes after quoting; conversion must ignore it.
	p := env.st.products[product.ID]
	p.Price = dec("999.00")
	env.st.products[product.ID] = p

	inv, err := env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !inv.Subtotal.Equal(q.Subtotal) || !inv.Total.Equal(q.Total) {
		t.Errorf("invoice totals %s/%s differ from quotation %s/%s",
			inv.Subtotal, inv.Total, q.Subtotal, q.Total)
	}
	if len(inv.Items) != 1 || inv.Items[0].UnitPrice.StringFixed(2) != "100.00" {
		t.Errorf("line price = %s, want quoted 100.00", inv.Items[0].UnitPrice)
	}
	if got := env.currentStock(t, product.ID); got != 40 {
		t.Errorf("stock = %d, want 40 after conversion", got)
	}
	if b := env.customerBalance(t, customer.ID); !b.Equal(q.Total) {
		t.Errorf("balance = %s, want %s", b, q.Total)
	}

	stored, _ := env.quoteRepo.GetByID(context.Background(), q.ID)
	if stored.Status != enum.QuotationStatusConverted {
		t.Errorf("quotation status = %s, want CONVERTED", stored.Status)
	}
	if stored.ConvertedInvoiceID == nil || *stored.ConvertedInvoiceID != inv.ID {
		t.Error("quotation should reference the produced invoice")
	}
}

func TestConvert_SecondAttemptFailsWithNoEffect(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Beam", "500.00", "0.18", 20)
	q := openQuotation(t, env, nil, product, 4)

	if _, err := env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID}); err != nil {
		t.Fatalf("first convert: %v", err)
	}
	_, err := env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
	if !apperror.IsKind(err, apperror.KindAlreadyConverted) {
		t.Fatalf("second convert: err = %v, want ALREADY_CONVERTED", err)
	}

	if n := len(env.st.invoices); n != 1 {
		t.Errorf("invoices = %d, want exactly 1", n)
	}
	if got := env.currentStock(t, product.ID); got != 16 {
		t.Errorf("stock = %d, want 16 (deducted once)", got)
	}
}

func TestConvert_ConcurrentAttemptsProduceOneInvoice(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Rafter", "500.00", "0.18", 20)
	q := openQuotation(t, env, nil, product, 4)

	const workers = 4
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !apperror.IsKind(err, apperror.KindAlreadyConverted) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}
	if n := len(env.st.invoices); n != 1 {
		t.Errorf("invoices = %d, want 1", n)
	}
	if got := env.currentStock(t, product.ID); got != 16 {
		t.Errorf("stock = %d, want 16", got)
	}
}

func TestConvert_ExpiredQuotationRejected(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Old Offer", "100.00", "0", 10)
	past := time.Now().Add(-24 * time.Hour)

	q, err := env.quotations.CreateQuotation(context.Background(), &CreateQuotationInput{
		CustomerName: "Walk-in",
		ValidUntil:   &past,
		Items:        []QuotationItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create quotation: %v", err)
	}

	_, err = env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
	if !apperror.IsKind(err, apperror.KindBadRequest) {
		t.Fatalf("err = %v, want BAD_REQUEST for expired quotation", err)
	}

	stored, _ := env.quoteRepo.GetByID(context.Background(), q.ID)
	if stored.Status != enum.QuotationStatusOpen {
		t.Errorf("status = %s, want OPEN (expiry does not consume the quotation)", stored.Status)
	}
}

func TestConvert_InsufficientStockLeavesQuotationOpen(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Thin Stock", "100.00", "0", 2)
	q := openQuotation(t, env, nil, product, 5)

	_, err := env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
	if !apperror.IsKind(err, apperror.KindInsufficientStock) {
		t.Fatalf("err = %v, want INSUFFICIENT_STOCK", err)
	}

	// The status flip happens first inside the transaction; the stock failure
	// must roll it back too.
	stored, _ := env.quoteRepo.GetByID(context.Background(), q.ID)
	if stored.Status != enum.QuotationStatusOpen {
		t.Errorf("status = %s, want OPEN after rollback", stored.Status)
	}
	if got := env.currentStock(t, product.ID); got != 2 {
		t.Errorf("stock = %d, want 2", got)
	}
	if n := len(env.st.invoices); n != 0 {
		t.Errorf("invoices = %d, want 0", n)
	}
}

func TestConvert_CreditLimitFailureRollsEverythingBack(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{
		Name: "Maxed Out", Phone: "9876500022",
		CreditLimit:        dec("100.00"),
		OutstandingBalance: dec("100.00"),
	})
	product := env.seedProduct(t, "Tile", "50.00", "0", 10)
	q := openQuotation(t, env, customer, product, 1)

	_, err := env.quotations.Convert(context.Background(), &ConvertInput{QuotationID: q.ID})
	if !apperror.IsKind(err, apperror.KindCreditLimitExceeded) {
		t.Fatalf("err = %v, want CREDIT_LIMIT_EXCEEDED", err)
	}

	stored, _ := env.quoteRepo.GetByID(context.Background(), q.ID)
	if stored.Status != enum.QuotationStatusOpen {
		t.Errorf("status = %s, want OPEN after rollback", stored.Status)
	}
	if got := env.currentStock(t, product.ID); got != 10 {
		t.Errorf("stock = %d, want 10 after rollback", got)
	}
	if b := env.customerBalance(t, customer.ID).StringFixed(2); b != "100.00" {
		t.Errorf("balance = %s, want 100.00", b)
	}
}
