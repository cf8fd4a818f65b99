package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
)

// StockRepository owns the append-only stock ledger and its maintained
// per-warehouse aggregate.
type StockRepository interface {
	// ApplyAdjustment atomically applies one signed stock movement: the
	// guarded aggregate update and the immutable ledger append happen as one
	// unit. An OUT that would drive the (product, warehouse) level negative
	// returns ok=false with nothing written; two concurrent OUTs can never
	// jointly overdraw. On success the adjustment's BalanceAfter is filled in.
	ApplyAdjustment(ctx context.Context, adj *entity.StockAdjustment) (ok bool, err error)

	// CurrentStock returns the maintained stock level, summed across all
	// warehouses when warehouseID is nil.
	CurrentStock(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error)

	// History returns adjustments for a product in reverse-chronological
	// order, restartable via offset/limit.
	History(ctx context.Context, productID uuid.UUID, offset, limit int) ([]entity.StockAdjustment, int64, error)

	// SumAdjustments replays the ledger: the signed sum of all adjustments
	// for the product (optionally one warehouse). Used for reconciliation
	// against CurrentStock.
	SumAdjustments(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID) (int, error)

	// Levels returns the per-warehouse stock rows for a product.
	Levels(ctx context.Context, productID uuid.UUID) ([]entity.StockLevel, error)
}
