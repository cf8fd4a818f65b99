package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase data operations
type PurchaseRepository interface {
	// Create persists the purchase together with its line items.
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
}
