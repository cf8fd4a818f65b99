package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quotation is an invoice draft with a validity window. It converts to exactly
// one invoice, once: the OPEN -> CONVERTED flip is a conditional update that
// doubles as the idempotency guard against double conversion.
type Quotation struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	QuoteNo    string     `gorm:"size:100;uniqueIndex;not null" json:"quote_no"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	CustomerName    string  `gorm:"size:255" json:"customer_name"`
	CustomerEmail   *string `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerAddress *string `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerMobile  *string `gorm:"size:20" json:"customer_mobile,omitempty"`
	PlaceOfSupply   string  `gorm:"size:2;not null" json:"place_of_supply"`

	Subtotal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"tax"`
	CGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"cgst"`
	SGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"sgst"`
	IGST     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"igst"`
	Total    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`

	ValidUntil         time.Time            `gorm:"not null" json:"valid_until"`
	Status             enum.QuotationStatus `gorm:"size:10;not null;default:OPEN" json:"status"`
	ConvertedInvoiceID *uuid.UUID           `gorm:"type:uuid" json:"converted_invoice_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem is one line of a quotation, snapshotted like an invoice item.
type QuotationItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"quotation_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	HSNCode     *string         `gorm:"size:20" json:"hsn_code,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"tax_rate"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"tax_amount"`
	CreatedAt   time.Time       `json:"created_at"`

	Quotation Quotation `gorm:"foreignKey:QuotationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (qi *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
