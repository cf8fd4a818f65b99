package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/gst"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related operations, including the ledger
// view that joins a customer's invoices and payments.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateCustomerInput represents the input for creating a customer
type CreateCustomerInput struct {
	Name        string
	Email       *string
	Phone       string
	GSTNumber   *string
	Address     *string
	State       string
	StateCode   string
	CreditLimit decimal.Decimal
	Notes       *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.StateCode != "" && !gst.ValidStateCode(input.StateCode) {
		return nil, apperror.NewBadRequestError("Invalid state code: " + input.StateCode)
	}
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
	}

	customer := &entity.Customer{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		GSTNumber:   input.GSTNumber,
		Address:     input.Address,
		CreditLimit: input.CreditLimit,
		Notes:       input.Notes,
	}
	if input.State != "" {
		customer.State = input.State
	}
	if input.StateCode != "" {
		customer.StateCode = input.StateCode
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the input for updating a customer
type UpdateCustomerInput struct {
	ID          uuid.UUID
	Name        *string
	Email       *string
	Phone       *string
	GSTNumber   *string
	Address     *string
	State       *string
	StateCode   *string
	CreditLimit *decimal.Decimal
	Notes       *string
}

// UpdateCustomer updates customer master data. The outstanding balance is
// never writable here; only the invoice and payment flows move it.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.GSTNumber != nil {
		customer.GSTNumber = input.GSTNumber
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.State != nil {
		customer.State = *input.State
	}
	if input.StateCode != nil {
		if !gst.ValidStateCode(*input.StateCode) {
			return nil, apperror.NewBadRequestError("Invalid state code: " + *input.StateCode)
		}
		customer.StateCode = *input.StateCode
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			return nil, apperror.NewBadRequestError("Credit limit cannot be negative")
		}
		// Lowering the limit below the current balance is allowed: existing
		// debt stands, only new invoices are blocked.
		customer.CreditLimit = *input.CreditLimit
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if !customer.OutstandingBalance.IsZero() {
		return apperror.NewConflictError("Customer has an outstanding balance and cannot be deleted")
	}
	count, err := s.invoiceRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Customer has invoices and cannot be deleted")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	filterParams := &repository.CustomerFilterParams{
		Pagination: params,
		Search:     search,
	}

	customers, total, err := s.customerRepo.List(ctx, filterParams)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// LedgerEntry is one row in the unified customer ledger: an invoice (debit)
// or a payment (credit) with the running balance after the event.
type LedgerEntry struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"` // INVOICE or PAYMENT
	Reference   string          `json:"reference"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	InvoiceID   *uuid.UUID      `json:"invoice_id,omitempty"`
	PaymentID   *uuid.UUID      `json:"payment_id,omitempty"`
	PaymentMode string          `json:"payment_mode,omitempty"`
}

// CustomerLedger is the full ledger view with the reconciliation summary.
type CustomerLedger struct {
	Customer      *entity.Customer `json:"customer"`
	Entries       []LedgerEntry    `json:"entries"`
	TotalInvoiced decimal.Decimal  `json:"total_invoiced"`
	TotalPaid     decimal.Decimal  `json:"total_paid"`
	Balance       decimal.Decimal  `json:"balance"`
	Reconciled    bool             `json:"reconciled"`
}

// GetLedger builds the customer ledger: every invoice and payment merged into
// one chronological statement with a running balance. The summary recomputes
// the balance from the documents and compares it to the stored
// OutstandingBalance; Reconciled is false when the two disagree.
func (s *CustomerService) GetLedger(ctx context.Context, customerID uuid.UUID) (*CustomerLedger, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	invoices, err := s.invoiceRepo.ListAllByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	type event struct {
		at    int64
		entry LedgerEntry
	}
	events := make([]event, 0, len(invoices)+len(payments))

	totalInvoiced := decimal.Zero
	for i := range invoices {
		inv := invoices[i]
		totalInvoiced = totalInvoiced.Add(inv.Total)
		id := inv.ID
		events = append(events, event{
			at: inv.CreatedAt.UnixNano(),
			entry: LedgerEntry{
				Date:      inv.CreatedAt.Format("2006-01-02 15:04:05"),
				Type:      "INVOICE",
				Reference: inv.InvoiceNo,
				Debit:     inv.Total,
				Credit:    decimal.Zero,
				InvoiceID: &id,
			},
		})
	}

	totalPaid := decimal.Zero
	for i := range payments {
		p := payments[i]
		totalPaid = totalPaid.Add(p.Amount)
		id := p.ID
		invoiceID := p.InvoiceID
		events = append(events, event{
			at: p.PaidAt.UnixNano(),
			entry: LedgerEntry{
				Date:        p.PaidAt.Format("2006-01-02 15:04:05"),
				Type:        "PAYMENT",
				Reference:   p.ID.String(),
				Debit:       decimal.Zero,
				Credit:      p.Amount,
				InvoiceID:   &invoiceID,
				PaymentID:   &id,
				PaymentMode: p.Mode.String(),
			},
		})
	}

	// Merge chronologically to compute the running balance, then flip so
	// the statement reads newest first.
	sort.Slice(events, func(i, j int) bool { return events[i].at < events[j].at })

	running := decimal.Zero
	entries := make([]LedgerEntry, 0, len(events))
	for _, ev := range events {
		running = running.Add(ev.entry.Debit).Sub(ev.entry.Credit)
		ev.entry.Balance = running
		entries = append(entries, ev.entry)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	derived := totalInvoiced.Sub(totalPaid)
	return &CustomerLedger{
		Customer:      customer,
		Entries:       entries,
		TotalInvoiced: totalInvoiced,
		TotalPaid:     totalPaid,
		Balance:       derived,
		Reconciled:    derived.Equal(customer.OutstandingBalance),
	}, nil
}
