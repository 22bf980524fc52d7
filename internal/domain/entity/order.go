package entity

import (
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a priced, taxed order placed in one service for one guest.
// Once created only the PayLater settlement may change it.
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_orders_customer_ts" json:"customer_id"`
	Service       enum.Service       `gorm:"not null" json:"service"`
	Subtotal      int64              `gorm:"not null" json:"subtotal"`
	TaxPercent    float64            `gorm:"not null;default:0" json:"tax_percent"`
	TaxAmount     int64              `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount   int64              `gorm:"not null" json:"total_amount"`
	PaymentMethod enum.PaymentMethod `gorm:"not null;default:0" json:"payment_method"`
	TableNo       *string            `gorm:"size:20" json:"table_no,omitempty"`
	RoomNo        *string            `gorm:"size:20" json:"room_no,omitempty"`
	CreatedBy     uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	Timestamp     time.Time          `gorm:"not null;index:idx_orders_customer_ts" json:"timestamp"`
	SettledAt     *time.Time         `json:"settled_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Pending reports whether the order is an unsettled PayLater balance
func (o *Order) Pending() bool {
	return o.PaymentMethod.IsDeferred() && o.SettledAt == nil
}

// ItemCount returns the number of units across all lines
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// OrderItem is one line of an order, priced at the time the order was built
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ItemID    string    `gorm:"size:255;not null" json:"item_id"` // encoded cart key
	Name      string    `gorm:"size:255;not null" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	LineTotal int64     `gorm:"not null" json:"line_total"`
	Position  int       `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
