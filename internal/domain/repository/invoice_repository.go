package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice data operations.
type InvoiceRepository interface {
	// Create persists the invoice together with its line items.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListAllByCustomer returns every invoice of a customer, newest first,
	// without pagination (ledger view and reconciliation).
	ListAllByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	// ListByDateRange returns every invoice created in [start, end], oldest
	// first (reporting).
	ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)

	// ApplyPayment atomically adds amount to amount_paid, recomputing
	// balance_due and status in the same statement, guarded by
	// amount_paid + amount <= total. Returns false when the guard rejected
	// the payment (overpayment), with no write performed.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)

	// SumTotalsByCustomer returns the sum of invoice totals for a customer
	// (reconciliation oracle).
	SumTotalsByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
