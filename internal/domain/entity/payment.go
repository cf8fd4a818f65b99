package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one immutable receipt against an invoice. Corrections require a
// new payment or a documented reversal, never an edit.
type Payment struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CustomerID *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Amount     decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	Mode       enum.PaymentMode `gorm:"size:10;not null" json:"mode"`
	Reference  *string          `gorm:"size:255" json:"reference,omitempty"`
	Notes      *string          `gorm:"type:text" json:"notes,omitempty"`
	PaidAt     time.Time        `gorm:"not null" json:"paid_at"`
	CreatedAt  time.Time        `json:"created_at"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
