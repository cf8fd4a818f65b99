package service

import (
	"context"
	"sync"
	"testing"

	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/pkg/apperror"
)

// invoiceFor creates a registered-customer invoice worth 1000.00 and returns
// both sides of the receivable.
func invoiceFor(t *testing.T, env *testEnv) (*entity.Customer, *entity.Invoice) {
	t.Helper()
	customer := env.seedCustomer(t, entity.Customer{Name: "Patel & Sons", Phone: "9876500010"})
	product := env.seedProduct(t, "Cable Drum", "1000.00", "0", 100)
	inv, err := env.invoices.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: &customer.ID,
		Items:      []InvoiceItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return customer, inv
}

func TestRecordPayment_PartialThenSettled(t *testing.T) {
	env := newTestEnv()
	customer, inv := invoiceFor(t, env)

	p1, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("400.00"),
		Mode:      enum.PaymentModeUPI,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if p1.CustomerID == nil || *p1.CustomerID != customer.ID {
		t.Error("payment should carry the invoice's customer")
	}

	got, _ := env.invoiceRepo.GetByID(context.Background(), inv.ID)
	if got.Status != enum.InvoiceStatusPartial {
		t.Errorf("status = %s, want PARTIAL", got.Status)
	}
	if got.AmountPaid.StringFixed(2) != "400.00" || got.BalanceDue.StringFixed(2) != "600.00" {
		t.Errorf("paid/due = %s/%s, want 400.00/600.00", got.AmountPaid.StringFixed(2), got.BalanceDue.StringFixed(2))
	}
	if b := env.customerBalance(t, customer.ID).StringFixed(2); b != "600.00" {
		t.Errorf("customer balance = %s, want 600.00", b)
	}

	if _, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("600.00"),
		Mode:      enum.PaymentModeCash,
	}); err != nil {
		t.Fatalf("final payment: %v", err)
	}

	got, _ = env.invoiceRepo.GetByID(context.Background(), inv.ID)
	if got.Status != enum.InvoiceStatusPaid {
		t.Errorf("status = %s, want PAID", got.Status)
	}
	if !got.BalanceDue.IsZero() {
		t.Errorf("balance due = %s, want 0", got.BalanceDue)
	}
	if b := env.customerBalance(t, customer.ID); !b.IsZero() {
		t.Errorf("customer balance = %s, want 0", b.StringFixed(2))
	}
}

func TestRecordPayment_OverpaymentRejectedWithoutTrace(t *testing.T) {
	env := newTestEnv()
	customer, inv := invoiceFor(t, env)

	_, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("1200.00"),
		Mode:      enum.PaymentModeBank,
	})
	if !apperror.IsKind(err, apperror.KindInvalidAmount) {
		t.Fatalf("err = %v, want INVALID_AMOUNT", err)
	}

	got, _ := env.invoiceRepo.GetByID(context.Background(), inv.ID)
	if got.Status != enum.InvoiceStatusUnpaid || !got.AmountPaid.IsZero() {
		t.Errorf("invoice changed by rejected payment: status=%s paid=%s", got.Status, got.AmountPaid)
	}
	if n := len(env.st.payments); n != 0 {
		t.Errorf("payments stored = %d, want 0", n)
	}
	if b := env.customerBalance(t, customer.ID).StringFixed(2); b != "1000.00" {
		t.Errorf("customer balance = %s, want 1000.00", b)
	}
}

func TestRecordPayment_PaidInvoiceRejected(t *testing.T) {
	env := newTestEnv()
	_, inv := invoiceFor(t, env)

	if _, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("1000.00"),
		Mode:      enum.PaymentModeCash,
	}); err != nil {
		t.Fatalf("settling payment: %v", err)
	}

	_, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("1.00"),
		Mode:      enum.PaymentModeCash,
	})
	if !apperror.IsKind(err, apperror.KindInvalidAmount) {
		t.Fatalf("err = %v, want INVALID_AMOUNT for a settled invoice", err)
	}
}

func TestRecordPayment_RejectsNonPositiveAndBadMode(t *testing.T) {
	env := newTestEnv()
	_, inv := invoiceFor(t, env)

	_, err := env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("0"),
		Mode:      enum.PaymentModeCash,
	})
	if !apperror.IsKind(err, apperror.KindInvalidAmount) {
		t.Fatalf("zero amount: err = %v, want INVALID_AMOUNT", err)
	}

	_, err = env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
		InvoiceID: inv.ID,
		Amount:    dec("100.00"),
		Mode:      enum.PaymentMode("BARTER"),
	})
	if !apperror.IsKind(err, apperror.KindBadRequest) {
		t.Fatalf("bad mode: err = %v, want BAD_REQUEST", err)
	}
}

func TestRecordPayment_ConcurrentPaymentsNeverOverpay(t *testing.T) {
	env := newTestEnv()
	customer, inv := invoiceFor(t, env)

	const workers = 5
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.payments.RecordPayment(context.Background(), &RecordPaymentInput{
				InvoiceID: inv.ID,
				Amount:    dec("400.00"),
				Mode:      enum.PaymentModeUPI,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !apperror.IsKind(err, apperror.KindInvalidAmount) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 {
		t.Errorf("succeeded = %d, want 2 payments of 400.00 against total 1000.00", succeeded)
	}

	got, _ := env.invoiceRepo.GetByID(context.Background(), inv.ID)
	if got.AmountPaid.GreaterThan(got.Total) {
		t.Errorf("amount paid %s exceeds total %s", got.AmountPaid, got.Total)
	}
	if b := env.customerBalance(t, customer.ID).StringFixed(2); b != "200.00" {
		t.Errorf("customer balance = %s, want 200.00", b)
	}
}
