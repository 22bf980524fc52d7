// Package event defines the messages the billing engine emits to other systems.
package event

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
)

// TypeInvoiceIssued names the event published once per invoice after checkout
const TypeInvoiceIssued = "invoice.issued"

// InvoiceIssued is the payload published when checkout issues an invoice
type InvoiceIssued struct {
	Type         string                         `json:"type"`
	InvoiceID    string                         `json:"invoice_id"`
	BillNo       string                         `json:"bill_no"`
	InvoiceClass string                         `json:"invoice_class"`
	CustomerID   string                         `json:"customer_id"`
	GrandTotal   int64                          `json:"grand_total"`
	TotalTax     int64                          `json:"total_tax"`
	Services     map[string]entity.ServiceTotal `json:"services"`
	IssuedAt     time.Time                      `json:"issued_at"`
}

func NewInvoiceIssued(inv *entity.Invoice) InvoiceIssued {
	services := make(map[string]entity.ServiceTotal, len(inv.Lines))
	for s, total := range inv.ServiceTotals() {
		services[s.String()] = total
	}
	return InvoiceIssued{
		Type:         TypeInvoiceIssued,
		InvoiceID:    inv.ID.String(),
		BillNo:       inv.BillNo,
		InvoiceClass: inv.InvoiceClass,
		CustomerID:   inv.CustomerID.String(),
		GrandTotal:   inv.GrandTotal,
		TotalTax:     inv.TotalTax,
		Services:     services,
		IssuedAt:     inv.IssuedAt,
	}
}

// Publisher delivers invoice events to a broker
type Publisher interface {
	PublishInvoiceIssued(ctx context.Context, evt InvoiceIssued) error
	Close() error
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) PublishInvoiceIssued(context.Context, InvoiceIssued) error { return nil }

func (NoopPublisher) Close() error { return nil }
