package service

import (
	"context"
	"testing"
	"time"

	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
)

func TestGetSalesSummary_AggregatesPeriod(t *testing.T) {
	env := newTestEnv()
	product := env.seedProduct(t, "Panel", "500.00", "0.18", 100)

	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerName: "Walk-in",
		Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if _, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("500.00"),
		Mode:      enum.PaymentModeCash,
	}); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	summary, err := env.reports.GetSalesSummary(context.Background(), from, to)
	if err != nil {
		t.Fatalf("GetSalesSummary: %v", err)
	}

	if summary.InvoiceCount != 1 {
		t.Errorf("count = %d, want 1", summary.InvoiceCount)
	}
	if summary.Subtotal.StringFixed(2) != "1000.00" {
		t.Errorf("subtotal = %s, want 1000.00", summary.Subtotal)
	}
	if summary.Total.StringFixed(2) != "1180.00" {
		t.Errorf("total = %s, want 1180.00", summary.Total)
	}
	if summary.Collected.StringFixed(2) != "500.00" {
		t.Errorf("collected = %s, want 500.00", summary.Collected)
	}
	if summary.Outstanding.StringFixed(2) != "680.00" {
		t.Errorf("outstanding = %s, want 680.00", summary.Outstanding)
	}

	// Outside the window the summary is empty.
	empty, err := env.reports.GetSalesSummary(context.Background(),
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("GetSalesSummary (empty): %v", err)
	}
	if empty.InvoiceCount != 0 || !empty.Total.IsZero() {
		t.Errorf("empty window: count=%d total=%s", empty.InvoiceCount, empty.Total)
	}
}

func TestGetGSTSummary_SplitsB2BAndB2C(t *testing.T) {
	env := newTestEnv()
	gstin := "27AAPFU0939F1ZV"
	registered := env.seedCustomer(t, entity.Customer{
		Name: "Registered", Phone: "9876500040", GSTNumber: &gstin,
	})
	product := env.seedProduct(t, "Tube", "100.00", "0.18", 100)

	if _, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &registered.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 10}},
	}); err != nil {
		t.Fatalf("B2B invoice: %v", err)
	}
	if _, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerName: "Walk-in",
		Items:        []InvoiceItemInput{{ProductID: product.ID, Quantity: 5}},
	}); err != nil {
		t.Fatalf("B2C invoice: %v", err)
	}

	summary, err := env.reports.GetGSTSummary(context.Background(),
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetGSTSummary: %v", err)
	}

	if summary.B2B.InvoiceCount != 1 || summary.B2C.InvoiceCount != 1 {
		t.Fatalf("bucket counts = %d/%d, want 1/1", summary.B2B.InvoiceCount, summary.B2C.InvoiceCount)
	}
	if summary.B2B.Taxable.StringFixed(2) != "1000.00" {
		t.Errorf("B2B taxable = %s, want 1000.00", summary.B2B.Taxable)
	}
	if summary.B2B.CGST.StringFixed(2) != "90.00" || summary.B2B.SGST.StringFixed(2) != "90.00" {
		t.Errorf("B2B CGST/SGST = %s/%s, want 90.00/90.00", summary.B2B.CGST, summary.B2B.SGST)
	}
	if summary.B2C.Taxable.StringFixed(2) != "500.00" {
		t.Errorf("B2C taxable = %s, want 500.00", summary.B2C.Taxable)
	}
}

func TestGetLowStock_UsesThresholds(t *testing.T) {
	env := newTestEnv()
	low := env.seedProduct(t, "Dwindling", "10.00", "0", 3)
	p := env.st.products[low.ID]
	p.MinStockLevel = 5
	env.st.products[low.ID] = p

	fine := env.seedProduct(t, "Plentiful", "10.00", "0", 50)
	pf := env.st.products[fine.ID]
	pf.MinStockLevel = 5
	env.st.products[fine.ID] = pf

	products, err := env.reports.GetLowStock(context.Background())
	if err != nil {
		t.Fatalf("GetLowStock: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("low stock = %d products, want only %q", len(products), "Dwindling")
	}
}
