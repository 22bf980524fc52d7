package entity

import (
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a sellable item in one service's catalog. Prices are whole rupees.
type MenuItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Service   enum.Service   `gorm:"not null;index" json:"service"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     int64          `gorm:"not null;default:0" json:"price"`
	ShotPrice *int64         `json:"shot_price,omitempty"` // Bar only, price of a single shot
	Available bool           `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// HasShots reports whether the item can be sold by the shot
func (m *MenuItem) HasShots() bool {
	return m.ShotPrice != nil && *m.ShotPrice > 0
}
