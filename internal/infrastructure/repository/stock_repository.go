package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

// ApplyAdjustment atomically applies one signed stock movement: the guarded
// aggregate update and the immutable ledger append happen as one unit.
// The decrement guard is a single conditional update:
// UPDATE stock_levels SET quantity = quantity + delta
//
//	WHERE product_id = ? AND warehouse_id = ? AND quantity + delta >= 0
//
// so two concurrent OUTs can never jointly overdraw a warehouse.
func (r *stockRepository) ApplyAdjustment(ctx context.Context, adj *entity.StockAdjustment) (bool, error) {
	ok := false
	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.StockLevel{}).
			Where("product_id = ? AND warehouse_id = ? AND quantity + ? >= 0",
				adj.ProductID, adj.WarehouseID, adj.Quantity).
			Update("quantity", gorm.Expr("quantity + ?", adj.Quantity))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// Either no stock row exists yet, or the guard refused an OUT.
			var existing entity.StockLevel
			err := tx.First(&existing, "product_id = ? AND warehouse_id = ?",
				adj.ProductID, adj.WarehouseID).Error
			if err == nil {
				// Row exists, so the guard rejected the decrement.
				return gorm.ErrInvalidTransaction
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if adj.Quantity < 0 {
				return gorm.ErrInvalidTransaction
			}
			level := entity.StockLevel{
				ProductID:   adj.ProductID,
				WarehouseID: adj.WarehouseID,
				Quantity:    adj.Quantity,
			}
			if err := tx.Create(&level).Error; err != nil {
				return err
			}
		}

		var level entity.StockLevel
		if err := tx.First(&level, "product_id = ? AND warehouse_id = ?",
			adj.ProductID, adj.WarehouseID).Error; err != nil {
			return err
		}
		adj.BalanceAfter = level.Quantity

		if err := tx.Create(adj).Error; err != nil {
			return err
		}
		ok = true
		return nil
	})

	// Rolled back by the guard, not a database failure.
	if errors.Is(err, gorm.ErrInvalidTransaction) {
		return false, nil
	}
	return ok, err
}

func (r *stockRepository) CurrentStock(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error) {
	var total int64
	query := dbFrom(ctx, r.db).Model(&entity.StockLevel{}).
		Where("product_id = ?", productID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return int(total), err
}

func (r *stockRepository) History(ctx context.Context, productID uuid.UUID, offset, limit int) ([]entity.StockAdjustment, int64, error) {
	var adjustments []entity.StockAdjustment
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.StockAdjustment{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).
		Order("created_at DESC, id DESC").
		Find(&adjustments).Error

	return adjustments, total, err
}

// SumAdjustments replays the ledger: the signed sum of every adjustment for
// the product. The reconciliation check compares it against CurrentStock.
func (r *stockRepository) SumAdjustments(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error) {
	var total int64
	query := dbFrom(ctx, r.db).Model(&entity.StockAdjustment{}).
		Where("product_id = ?", productID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return int(total), err
}

func (r *stockRepository) Levels(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error) {
	var levels []entity.StockLevel
	err := dbFrom(ctx, r.db).
		Where("product_id = ?", productID).
		Find(&levels).Error
	return levels, err
}
