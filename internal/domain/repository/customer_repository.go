package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer data operations.
//
// The balance mutators are the heart of the credit manager: both are single
// atomic statements against the stored value, never a read-modify-write of a
// previously loaded copy.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)

	// IncreaseBalanceWithinLimit atomically adds amount to the outstanding
	// balance, but only when the customer has no credit limit or the new
	// balance stays within it. Returns false when the guard rejected the
	// increment (credit limit exceeded), with no write performed.
	IncreaseBalanceWithinLimit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)

	// DecreaseBalance atomically subtracts amount from the outstanding balance.
	DecreaseBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// CustomerFilterParams contains filtering parameters for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}
