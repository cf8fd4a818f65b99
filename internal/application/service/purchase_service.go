package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/nischayn/vyapari-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PurchaseService records inbound goods receipts. Each purchase line writes
// an IN adjustment to the stock ledger in the same transaction, so received
// goods and stock history always agree.
type PurchaseService struct {
	purchaseRepo  repository.PurchaseRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	txr           repository.Transactor
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	txr repository.Transactor,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		txr:           txr,
	}
}

// PurchaseItemInput represents one received line
type PurchaseItemInput struct {
	ProductID   uuid.UUID
	Quantity    int
	UnitCost    decimal.Decimal
	BatchNumber *string
}

// CreatePurchaseInput represents the input for recording a purchase
type CreatePurchaseInput struct {
	SupplierID  uuid.UUID
	WarehouseID *uuid.UUID
	Date        *time.Time
	Items       []PurchaseItemInput
}

// CreatePurchase records a goods receipt and books the stock in
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase must have at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitCost.IsNegative() {
			return nil, apperror.NewBadRequestError("Item unit cost cannot be negative")
		}
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}
	for _, item := range input.Items {
		if _, ok := productsByID[item.ProductID]; !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	warehouseID, err := s.resolveWarehouse(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	total := decimal.Zero
	purchase := &entity.Purchase{
		PurchaseNo:  utils.GeneratePurchaseNo(),
		SupplierID:  input.SupplierID,
		WarehouseID: warehouseID,
		Date:        date,
	}
	for _, item := range input.Items {
		lineTotal := item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			BatchNumber: item.BatchNumber,
		})
	}
	purchase.Total = total.Round(2)

	err = s.txr.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		for _, item := range input.Items {
			adj := &entity.StockAdjustment{
				ProductID:         item.ProductID,
				WarehouseID:       warehouseID,
				Quantity:          item.Quantity,
				Type:              enum.AdjustmentTypeIn,
				Reason:            enum.AdjustmentReasonPurchase,
				ReferenceDocument: purchase.PurchaseNo,
				BatchNumber:       item.BatchNumber,
			}
			ok, err := s.stockRepo.ApplyAdjustment(ctx, adj)
			if err != nil {
				return err
			}
			if !ok {
				// IN movements cannot fail the guard; treat as internal.
				return apperror.ErrInternalServer
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetWithItems(ctx, purchase.ID)
}

// GetPurchase retrieves a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases, newest first
func (s *PurchaseService) ListPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// CreateSupplierInput represents the input for creating a supplier
type CreateSupplierInput struct {
	Name      string
	Email     *string
	Phone     *string
	GSTNumber *string
	Address   *string
}

// CreateSupplier creates a new supplier
func (s *PurchaseService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		GSTNumber: input.GSTNumber,
		Address:   input.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListSuppliers lists suppliers with optional search
func (s *PurchaseService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

func (s *PurchaseService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (uuid.UUID, error) {
	if warehouseID != nil {
		warehouse, err := s.warehouseRepo.GetByID(ctx, *warehouseID)
		if err != nil {
			return uuid.Nil, err
		}
		if warehouse == nil {
			return uuid.Nil, apperror.NewNotFoundError("Warehouse")
		}
		return warehouse.ID, nil
	}

	warehouse, err := s.warehouseRepo.GetByName(ctx, "Main")
	if err != nil {
		return uuid.Nil, err
	}
	if warehouse == nil {
		return uuid.Nil, apperror.NewNotFoundError("Default warehouse")
	}
	return warehouse.ID, nil
}
