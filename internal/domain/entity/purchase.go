package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is an inbound goods receipt. Creating one writes an IN stock
// adjustment per line with reason PURCHASE in the same transaction.
type Purchase struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseNo  string          `gorm:"size:100;uniqueIndex;not null" json:"purchase_no"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Supplier  Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Warehouse Warehouse      `gorm:"foreignKey:WarehouseID" json:"-"`
	Items     []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one received line of a purchase.
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	BatchNumber *string         `gorm:"size:100" json:"batch_number,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
