package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	Name          string
	SKU           *string
	HSNCode       *string
	Description   *string
	Category      *string
	UOM           string
	Price         decimal.Decimal
	TaxRate       decimal.Decimal
	MinStockLevel int
	MaxStockLevel *int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}
	if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, apperror.NewBadRequestError("Tax rate must be a fraction between 0 and 1")
	}

	if input.SKU != nil {
		existing, err := s.productRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("SKU already exists")
		}
	}

	product := &entity.Product{
		Name:          input.Name,
		SKU:           input.SKU,
		HSNCode:       input.HSNCode,
		Description:   input.Description,
		Category:      input.Category,
		Price:         input.Price,
		TaxRate:       input.TaxRate,
		MinStockLevel: input.MinStockLevel,
		MaxStockLevel: input.MaxStockLevel,
		IsActive:      true,
	}
	if input.UOM != "" {
		product.UOM = input.UOM
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ProductWithStock pairs a product with its live stock position.
type ProductWithStock struct {
	Product      *entity.Product     `json:"product"`
	CurrentStock int                 `json:"current_stock"`
	Levels       []entity.StockLevel `json:"levels"`
}

// GetProduct retrieves a product together with its current stock, derived
// from the stock ledger rather than stored on the product row.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductWithStock, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	current, err := s.stockRepo.CurrentStock(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	levels, err := s.stockRepo.Levels(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProductWithStock{
		Product:      product,
		CurrentStock: current,
		Levels:       levels,
	}, nil
}

// UpdateProductInput represents the input for updating a product
type UpdateProductInput struct {
	ID            uuid.UUID
	Name          *string
	HSNCode       *string
	Description   *string
	Category      *string
	UOM           *string
	Price         *decimal.Decimal
	TaxRate       *decimal.Decimal
	MinStockLevel *int
	MaxStockLevel *int
	IsActive      *bool
}

// UpdateProduct updates product master data. Price and tax rate changes only
// affect future documents; existing invoices keep their snapshots.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.HSNCode != nil {
		product.HSNCode = input.HSNCode
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.UOM != nil {
		product.UOM = *input.UOM
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, apperror.NewBadRequestError("Tax rate must be a fraction between 0 and 1")
		}
		product.TaxRate = *input.TaxRate
	}
	if input.MinStockLevel != nil {
		product.MinStockLevel = *input.MinStockLevel
	}
	if input.MaxStockLevel != nil {
		product.MaxStockLevel = input.MaxStockLevel
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their minimum stock level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
