package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a resort guest. A visit starts at CheckinTime and ends at CheckedOutAt.
type Customer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Phone        string         `gorm:"size:50;not null;index" json:"phone"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	RoomNo       *string        `gorm:"size:20" json:"room_no,omitempty"`
	CheckinTime  time.Time      `gorm:"not null" json:"checkin_time"`
	CheckedOutAt *time.Time     `json:"checked_out_at,omitempty"`
	// ClosingSince is set by the first checkout attempt that gets past
	// validation. No orders are taken for a closing visit.
	ClosingSince *time.Time `json:"closing_since,omitempty"`
	// CheckoutLeaseUntil is held by the checkout attempt in flight
	CheckoutLeaseUntil *time.Time `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders   []Order   `gorm:"foreignKey:CustomerID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
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

// CheckedOut reports whether the current visit has been closed
func (c *Customer) CheckedOut() bool {
	return c.CheckedOutAt != nil && !c.CheckedOutAt.Before(c.CheckinTime)
}

// Closing reports whether checkout has started for the current visit
func (c *Customer) Closing() bool {
	return !c.CheckedOut() && c.ClosingSince != nil && !c.ClosingSince.Before(c.CheckinTime)
}
