// Package memory is an in-process implementation of every repository, used
// for local runs without postgres and by service tests.
package memory

import (
	"sync"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
)

// Store holds all records behind one lock. Records are copied on the way in
// and out so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	customers   map[uuid.UUID]entity.Customer
	orders      map[uuid.UUID]entity.Order
	orderSeq    []uuid.UUID
	invoices    map[uuid.UUID]entity.Invoice
	billNos     map[string]uuid.UUID
	sequences   map[string]int64
	menu        map[uuid.UUID]entity.MenuItem
	taxRates    map[enum.Service]entity.TaxRate
	users       map[uuid.UUID]entity.User
	idempotency map[string]entity.IdempotencyKey
}

func NewStore() *Store {
	return &Store{
		customers:   make(map[uuid.UUID]entity.Customer),
		orders:      make(map[uuid.UUID]entity.Order),
		invoices:    make(map[uuid.UUID]entity.Invoice),
		billNos:     make(map[string]uuid.UUID),
		sequences:   make(map[string]int64),
		menu:        make(map[uuid.UUID]entity.MenuItem),
		taxRates:    make(map[enum.Service]entity.TaxRate),
		users:       make(map[uuid.UUID]entity.User),
		idempotency: make(map[string]entity.IdempotencyKey),
	}
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}

func copyInvoice(i entity.Invoice) entity.Invoice {
	i.Lines = append([]entity.InvoiceLine(nil), i.Lines...)
	return i
}
