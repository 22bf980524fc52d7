package entity

import (
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is the bill issued at checkout for one invoice class.
// Invoices are append-only.
type Invoice struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	BillNo       string        `gorm:"size:50;uniqueIndex;not null" json:"bill_no"`
	InvoiceClass string        `gorm:"size:50;not null" json:"invoice_class"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	GrandTotal   int64         `gorm:"not null" json:"grand_total"`
	TotalTax     int64         `gorm:"not null;default:0" json:"total_tax"`
	IssuedAt     time.Time     `gorm:"not null;index" json:"issued_at"`
	Lines        []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines"`
}

// ServiceTotal is the aggregate of one service's orders on an invoice
type ServiceTotal struct {
	Amount int64 `json:"amount"`
	Tax    int64 `json:"tax"`
}

// Subtotal is the pre-tax part of the amount
func (t ServiceTotal) Subtotal() int64 {
	return t.Amount - t.Tax
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

// ServiceTotals returns the per-service aggregates keyed by service
func (i *Invoice) ServiceTotals() map[enum.Service]ServiceTotal {
	totals := make(map[enum.Service]ServiceTotal, len(i.Lines))
	for _, l := range i.Lines {
		totals[l.Service] = ServiceTotal{Amount: l.Amount, Tax: l.Tax}
	}
	return totals
}

// InvoiceLine persists one entry of an invoice's service totals
type InvoiceLine struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceID uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	Service   enum.Service `gorm:"not null" json:"service"`
	Amount    int64        `gorm:"not null" json:"amount"`
	Tax       int64        `gorm:"not null;default:0" json:"tax"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
