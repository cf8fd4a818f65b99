package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item. Stock is never stored on the product:
// it is derived from the stock ledger (see StockLevel / StockAdjustment).
// MinStockLevel and MaxStockLevel are alerting thresholds, not enforced limits.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	SKU           *string         `gorm:"size:100;uniqueIndex" json:"sku,omitempty"`
	HSNCode       *string         `gorm:"size:20;column:hsn_code" json:"hsn_code,omitempty"`
	Description   *string         `gorm:"type:text" json:"description,omitempty"`
	Category      *string         `gorm:"size:100" json:"category,omitempty"`
	UOM           string          `gorm:"size:20;not null;default:PCS" json:"uom"`
	Price         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0" json:"tax_rate"` // fraction, e.g. 0.18
	MinStockLevel int             `gorm:"not null;default:0" json:"min_stock_level"`
	MaxStockLevel *int            `json:"max_stock_level,omitempty"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
