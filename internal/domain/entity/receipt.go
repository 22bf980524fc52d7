package entity

import (
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
)

// ResortHeader holds the business header printed at the top of every bill.
type ResortHeader struct {
	Name         string   `json:"name"`
	AddressLines []string `json:"address_lines,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	GSTIN        string   `json:"gstin,omitempty"`
}

// KitchenTicketItem is a single line on a kitchen order ticket.
type KitchenTicketItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// KitchenTicket is a value object printed for the kitchen or bar when an order is placed.
// It is composed from an order at print time and never stored.
type KitchenTicket struct {
	Service   enum.Service        `json:"service"`
	TableNo   string              `json:"table_no,omitempty"`
	RoomNo    string              `json:"room_no,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Items     []KitchenTicketItem `json:"items"`
}

// NewKitchenTicket builds the ticket for an order
func NewKitchenTicket(o *Order) KitchenTicket {
	t := KitchenTicket{
		Service:   o.Service,
		Timestamp: o.Timestamp,
		Items:     make([]KitchenTicketItem, 0, len(o.Items)),
	}
	if o.TableNo != nil {
		t.TableNo = *o.TableNo
	}
	if o.RoomNo != nil {
		t.RoomNo = *o.RoomNo
	}
	for _, it := range o.Items {
		t.Items = append(t.Items, KitchenTicketItem{Name: it.Name, Quantity: it.Quantity})
	}
	return t
}
