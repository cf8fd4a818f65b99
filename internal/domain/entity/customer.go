package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a registered customer with a running receivable balance.
//
// OutstandingBalance is owned by the invoice and payment flows and is only
// ever changed through atomic conditional updates; it must always equal the
// sum of the customer's invoice totals minus the payments applied to them.
// A CreditLimit of zero means unlimited.
type Customer struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name               string          `gorm:"size:255;not null" json:"name"`
	Email              *string         `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone              string          `gorm:"size:50;not null" json:"phone"`
	GSTNumber          *string         `gorm:"size:20;column:gst_number" json:"gst_number,omitempty"`
	Address            *string         `gorm:"type:text" json:"address,omitempty"`
	State              string          `gorm:"size:100;not null;default:Maharashtra" json:"state"`
	StateCode          string          `gorm:"size:2;not null;default:27" json:"state_code"`
	CreditLimit        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"credit_limit"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"outstanding_balance"`
	Notes              *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Unlimited reports whether the customer has no credit limit.
func (c *Customer) Unlimited() bool {
	return c.CreditLimit.IsZero()
}
