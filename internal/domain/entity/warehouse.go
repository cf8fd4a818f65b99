package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Warehouse is a physical or virtual stock location.
type Warehouse struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name      string             `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Address   *string            `gorm:"type:text" json:"address,omitempty"`
	Type      enum.WarehouseType `gorm:"size:20;not null;default:MAIN" json:"type"`
	IsActive  bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new warehouse
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}
