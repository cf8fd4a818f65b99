package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only; there is no Update or Delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	// ListByCustomer returns every payment applied to a customer's invoices,
	// newest first (ledger view).
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)

	// SumAmountsByCustomer returns the sum of payment amounts applied to a
	// customer's invoices (reconciliation oracle).
	SumAmountsByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}
