package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/logger"
)

// StockService owns manual stock movements and the ledger views. Sales and
// purchases write their own adjustments through the same repository, so every
// movement in the system lands in one ledger.
type StockService struct {
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockService creates a new stock service
func NewStockService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockService {
	return &StockService{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// AdjustStockInput represents one manual stock movement
type AdjustStockInput struct {
	ProductID         uuid.UUID
	WarehouseID       *uuid.UUID
	Quantity          int // always positive; Type decides the sign
	Type              enum.AdjustmentType
	Reason            enum.AdjustmentReason
	ReferenceDocument string
	BatchNumber       *string
}

// AdjustStock applies a manual IN or OUT movement. An OUT that would drive
// the warehouse level negative is rejected whole; there are no partial
// adjustments.
func (s *StockService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.StockAdjustment, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Invalid adjustment type")
	}
	if !input.Reason.Valid() {
		return nil, apperror.NewBadRequestError("Invalid adjustment reason")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	warehouseID, err := s.resolveWarehouse(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	signed := input.Quantity
	if input.Type == enum.AdjustmentTypeOut {
		signed = -input.Quantity
	}

	adj := &entity.StockAdjustment{
		ProductID:         input.ProductID,
		WarehouseID:       warehouseID,
		Quantity:          signed,
		Type:              input.Type,
		Reason:            input.Reason,
		ReferenceDocument: input.ReferenceDocument,
		BatchNumber:       input.BatchNumber,
	}

	ok, err := s.stockRepo.ApplyAdjustment(ctx, adj)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewInsufficientStockError(product.Name, input.Quantity)
	}

	logger.WithModule("stock", "AdjustStock").
		WithField("product_id", input.ProductID).
		WithField("quantity", signed).
		WithField("balance_after", adj.BalanceAfter).
		Info("stock adjusted")

	return adj, nil
}

// CurrentStock returns the maintained stock level for a product, optionally
// narrowed to one warehouse.
func (s *StockService) CurrentStock(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, apperror.NewNotFoundError("Product")
	}
	return s.stockRepo.CurrentStock(ctx, productID, warehouseID)
}

// StockHistoryPage is one page of a product's movement history.
type StockHistoryPage struct {
	Adjustments []entity.StockAdjustment `json:"adjustments"`
	Total       int64                    `json:"total"`
}

// History returns a product's adjustments, newest first.
func (s *StockService) History(ctx context.Context, productID uuid.UUID, offset, limit int) (*StockHistoryPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	adjustments, total, err := s.stockRepo.History(ctx, productID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &StockHistoryPage{Adjustments: adjustments, Total: total}, nil
}

// StockReconciliation compares the maintained level against a ledger replay.
type StockReconciliation struct {
	ProductID    uuid.UUID `json:"product_id"`
	CurrentStock int       `json:"current_stock"`
	LedgerSum    int       `json:"ledger_sum"`
	Reconciled   bool      `json:"reconciled"`
}

// Reconcile replays the adjustment ledger for a product and compares the
// signed sum against the maintained stock levels. The two must always agree;
// a mismatch means a write bypassed ApplyAdjustment.
func (s *StockService) Reconcile(ctx context.Context, productID uuid.UUID) (*StockReconciliation, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	current, err := s.stockRepo.CurrentStock(ctx, productID, nil)
	if err != nil {
		return nil, err
	}
	ledgerSum, err := s.stockRepo.SumAdjustments(ctx, productID, nil)
	if err != nil {
		return nil, err
	}

	rec := &StockReconciliation{
		ProductID:    productID,
		CurrentStock: current,
		LedgerSum:    ledgerSum,
		Reconciled:   current == ledgerSum,
	}
	if !rec.Reconciled {
		logger.WithModule("stock", "Reconcile").
			WithField("product_id", productID).
			WithField("current_stock", current).
			WithField("ledger_sum", ledgerSum).
			Warn("stock ledger out of sync with maintained level")
	}
	return rec, nil
}

func (s *StockService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (uuid.UUID, error) {
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
