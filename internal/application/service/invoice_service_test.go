package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/pkg/apperror"
)

func TestCreateInvoice_IntraStateSplitsTax(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{Name: "Sharma Traders", Phone: "9876500001"})
	product := env.seedProduct(t, "Copper Wire", "100.00", "0.18", 50)

	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if got := inv.Subtotal.StringFixed(2); got != "1000.00" {
		t.Errorf("subtotal = %s, want 1000.00", got)
	}
	if got := inv.Tax.StringFixed(2); got != "180.00" {
		t.Errorf("tax = %s, want 180.00", got)
	}
	if inv.CGST.StringFixed(2) != "90.00" || inv.SGST.StringFixed(2) != "90.00" {
		t.Errorf("CGST/SGST = %s/%s, want 90.00/90.00", inv.CGST.StringFixed(2), inv.SGST.StringFixed(2))
	}
	if !inv.IGST.IsZero() {
		t.Errorf("IGST = %s, want 0 for intra-state supply", inv.IGST)
	}
	if got := inv.Total.StringFixed(2); got != "1180.00" {
		t.Errorf("total = %s, want 1180.00", got)
	}
	if inv.Status != enum.InvoiceStatusUnpaid {
		t.Errorf("status = %s, want UNPAID", inv.Status)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(inv.Items))
	}

	if got := env.currentStock(t, product.ID); got != 40 {
		t.Errorf("stock after sale = %d, want 40", got)
	}
	if got := env.customerBalance(t, customer.ID).StringFixed(2); got != "1180.00" {
		t.Errorf("outstanding balance = %s, want 1180.00", got)
	}
}

func TestCreateInvoice_InterStateUsesIGST(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{
		Name: "Bangalore Metals", Phone: "9876500002",
		State: "Karnataka", StateCode: "29",
	})
	product := env.seedProduct(t, "Steel Rod", "200.00", "0.18", 20)

	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if inv.PlaceOfSupply != "29" {
		t.Errorf("place of supply = %s, want customer state 29", inv.PlaceOfSupply)
	}
	if got := inv.IGST.StringFixed(2); got != "180.00" {
		t.Errorf("IGST = %s, want 180.00", got)
	}
	if !inv.CGST.IsZero() || !inv.SGST.IsZero() {
		t.Errorf("CGST/SGST = %s/%s, want zero for inter-state supply", inv.CGST, inv.SGST)
	}
}

func TestCreateInvoice_CreditLimitRejectsWholeInvoice(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{
		Name: "Tight Credit", Phone: "9876500003",
		CreditLimit:        dec("500.00"),
		OutstandingBalance: dec("300.00"),
	})
	product := env.seedProduct(t, "Widget", "300.00", "0", 50)

	_, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if !apperror.IsKind(err, apperror.KindCreditLimitExceeded) {
		t.Fatalf("err = %v, want CREDIT_LIMIT_EXCEEDED", err)
	}

	// The whole transaction rolls back: no invoice, no stock movement, no
	// balance change.
	if got := env.currentStock(t, product.ID); got != 50 {
		t.Errorf("stock = %d, want 50 after rollback", got)
	}
	if got := env.customerBalance(t, customer.ID).StringFixed(2); got != "300.00" {
		t.Errorf("balance = %s, want 300.00 after rollback", got)
	}
	if n := len(env.st.invoices); n != 0 {
		t.Errorf("invoices stored = %d, want 0", n)
	}
	sum, _ := env.stockRepo.SumAdjustments(context.Background(), product.ID, nil)
	if sum != 50 {
		t.Errorf("ledger sum = %d, want 50 (seed only)", sum)
	}
}

func TestCreateInvoice_ZeroLimitMeansUnlimited(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{Name: "No Limit", Phone: "9876500004"})
	product := env.seedProduct(t, "Pipe", "100000.00", "0.18", 10)

	_, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice with zero credit limit: %v", err)
	}
}

func TestCreateInvoice_WalkInSkipsCreditAndBalance(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Cement Bag", "400.00", "0.28", 30)

	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerName: "Walk-in",
		Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if !inv.WalkIn() {
		t.Error("expected a walk-in invoice")
	}
	if inv.InvoiceType != enum.InvoiceTypeB2C {
		t.Errorf("invoice type = %s, want B2C", inv.InvoiceType)
	}
	if inv.PlaceOfSupply != testSellerState {
		t.Errorf("place of supply = %s, want seller state %s", inv.PlaceOfSupply, testSellerState)
	}
	if got := env.currentStock(t, product.ID); got != 28 {
		t.Errorf("stock = %d, want 28", got)
	}
}

func TestCreateInvoice_B2BDetectedFromGSTNumber(t *testing.T) {
	env := newTestEnv()
	gstin := "27AAPFU0939F1ZV"
	customer := env.seedCustomer(t, entity.Customer{
		Name: "Registered Co", Phone: "9876500005", GSTNumber: &gstin,
	})
	product := env.seedProduct(t, "Bolt", "10.00", "0.18", 100)

	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.InvoiceType != enum.InvoiceTypeB2B {
		t.Errorf("invoice type = %s, want B2B", inv.InvoiceType)
	}
	if inv.GSTIN == nil || *inv.GSTIN != gstin {
		t.Errorf("GSTIN snapshot = %v, want %s", inv.GSTIN, gstin)
	}
}

func TestCreateInvoice_InsufficientStockRejected(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Scarce Item", "50.00", "0.05", 50)

	_, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerName: "Walk-in",
		Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 60}},
	})
	if !apperror.IsKind(err, apperror.KindInsufficientStock) {
		t.Fatalf("err = %v, want INSUFFICIENT_STOCK", err)
	}
	if got := env.currentStock(t, product.ID); got != 50 {
		t.Errorf("stock = %d, want 50 untouched", got)
	}
	if n := len(env.st.invoices); n != 0 {
		t.Errorf("invoices stored = %d, want 0", n)
	}
}

func TestCreateInvoice_InactiveProductRejected(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Retired SKU", "10.00", "0", 5)
	p := env.st.products[product.ID]
	p.IsActive = false
	env.st.products[product.ID] = p

	_, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerName: "Walk-in",
		Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if !apperror.IsKind(err, apperror.KindBadRequest) {
		t.Fatalf("err = %v, want BAD_REQUEST for inactive product", err)
	}
}

func TestCreateInvoice_ValidationErrors(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Thing", "10.00", "0", 5)

	cases := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{"no items", CreateInvoiceInput{CustomerName: "X"}},
		{"zero quantity", CreateInvoiceInput{
			CustomerName: "X",
			Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 0}},
		}},
		{"bad place of supply", CreateInvoiceInput{
			CustomerName:  "X",
			PlaceOfSupply: "99",
			Items:         []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.invoices.CreateInvoice(context.Background(), &tc.input)
			if !apperror.IsKind(err, apperror.KindBadRequest) {
				t.Fatalf("err = %v, want BAD_REQUEST", err)
			}
		})
	}
}

func TestCreateInvoice_ConcurrentSalesNeverOverdraw(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Hot Item", "10.00", "0", 10)

	const workers = 8
	const perSale = 3

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
				CustomerName: "Walk-in",
				Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: perSale}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !apperror.IsKind(err, apperror.KindInsufficientStock) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 3 {
		t.Errorf("succeeded = %d, want 3 sales of %d from stock 10", succeeded, perSale)
	}

	stock := env.currentStock(t, product.ID)
	if stock != 10-succeeded*perSale {
		t.Errorf("stock = %d, want %d", stock, 10-succeeded*perSale)
	}
	sum, _ := env.stockRepo.SumAdjustments(context.Background(), product.ID, nil)
	if sum != stock {
		t.Errorf("ledger sum %d disagrees with maintained level %d", sum, stock)
	}
}

func TestCreateInvoice_ConcurrentCreditNeverExceedsLimit(t *testing.T) {
	env := newTestEnv()
	customer := env.seedCustomer(t, entity.Customer{
		Name: "Capped", Phone: "9876500006",
		CreditLimit: dec("250.00"),
	})
	product := env.seedProduct(t, "Unit", "100.00", "0", 100)

	const workers = 6
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
				CustomerID: &customer.ID,
				Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !apperror.IsKind(err, apperror.KindCreditLimitExceeded) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 {
		t.Errorf("succeeded = %d, want 2 invoices of 100.00 under limit 250.00", succeeded)
	}
	balance := env.customerBalance(t, customer.ID)
	if balance.GreaterThan(dec("250.00")) {
		t.Errorf("balance %s exceeds credit limit", balance.StringFixed(2))
	}
}

func TestGetInvoice_NotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.invoices.GetInvoice(context.Background(), uuid.New())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
