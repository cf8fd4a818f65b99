package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockLevel is the maintained per-product, per-warehouse stock aggregate.
// It exists so that "current stock" is a row lookup instead of a ledger scan;
// the append-only StockAdjustment log remains the source of truth and the two
// must reconcile at all times. Rows are only mutated through guarded
// quantity = quantity + delta updates that refuse to go negative.
type StockLevel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse" json:"product_id"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse" json:"warehouse_id"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new stock level row
func (s *StockLevel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLevel model
func (StockLevel) TableName() string {
	return "stock_levels"
}

// StockAdjustment is one immutable, signed inventory movement. Corrections are
// made with a compensating adjustment, never by editing or deleting a row.
type StockAdjustment struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	ProductID         uuid.UUID             `gorm:"type:uuid;not null;index:idx_adjustments_product" json:"product_id"`
	WarehouseID       uuid.UUID             `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Quantity          int                   `gorm:"not null" json:"quantity"` // signed: positive IN, negative OUT
	Type              enum.AdjustmentType   `gorm:"size:5;not null" json:"type"`
	Reason            enum.AdjustmentReason `gorm:"size:20;not null" json:"reason"`
	ReferenceDocument string                `gorm:"size:255" json:"reference_document"`
	BatchNumber       *string               `gorm:"size:100" json:"batch_number,omitempty"`
	BalanceAfter      int                   `gorm:"not null" json:"balance_after"` // audit snapshot for that warehouse
	CreatedAt         time.Time             `gorm:"index:idx_adjustments_product" json:"created_at"`

	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Warehouse Warehouse `gorm:"foreignKey:WarehouseID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock adjustment
func (a *StockAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockAdjustment model
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}
