package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a settled sale record. Line items and the monetary totals are
// immutable after creation; AmountPaid, BalanceDue and Status are the only
// mutable fields and are changed exclusively by the payment flow through a
// single conditional update. A nil CustomerID marks a walk-in sale, which
// never touches a customer balance.
type Invoice struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo  string     `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	// Snapshot of customer details at time of sale
	CustomerName    string  `gorm:"size:255" json:"customer_name"`
	CustomerEmail   *string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerAddress *string `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerMobile  *string `gorm:"size:20" json:"customer_mobile,omitempty"`
	GSTIN           *string `gorm:"size:20" json:"gstin,omitempty"`
	PlaceOfSupply   string  `gorm:"size:2;not null" json:"place_of_supply"`

	InvoiceType enum.InvoiceType `gorm:"size:10;not null;default:B2C" json:"invoice_type"`

	Subtotal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"tax"`
	CGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"cgst"`
	SGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"sgst"`
	IGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"igst"`
	Total    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`

	AmountPaid decimal.Decimal    `gorm:"type:decimal(15,2);not null;default:0" json:"amount_paid"`
	BalanceDue decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"balance_due"`
	Status     enum.InvoiceStatus `gorm:"size:10;not null;default:UNPAID" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// WalkIn reports whether this invoice belongs to an unregistered customer.
func (i *Invoice) WalkIn() bool {
	return i.CustomerID == nil
}

// InvoiceItem is one line of an invoice with the product details snapshotted
// at time of sale, so later catalog changes never alter historical invoices.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	HSNCode     *string         `gorm:"size:20" json:"hsn_code,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"tax_amount"`
	CreatedAt   time.Time       `json:"created_at"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
