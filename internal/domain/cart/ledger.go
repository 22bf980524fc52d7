// Package cart holds the per-device cart ledger and the catalog it prices against.
package cart

import (
	"math"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

// MaxQuantity caps the quantity of a single cart line
const MaxQuantity = 999

// Entry is a priced cart line produced by Ledger.Snapshot
type Entry struct {
	Key        ItemKey `json:"key"`
	BaseItemID string  `json:"base_item_id"`
	Variant    string  `json:"variant,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  int64   `json:"unit_price"`
}

// LineTotal is UnitPrice times Quantity. Use CheckedLineTotal for
// entries that were not produced by a Ledger.
func (e Entry) LineTotal() int64 {
	return e.UnitPrice * int64(e.Quantity)
}

// CheckedLineTotal is LineTotal with the quantity and price validated and
// the multiplication guarded against int64 overflow.
func (e Entry) CheckedLineTotal() (int64, error) {
	if e.Quantity <= 0 || e.Quantity > MaxQuantity {
		return 0, apperror.NewInvalidArgument("quantity of %q must be between 1 and %d", e.Name, MaxQuantity)
	}
	if e.UnitPrice < 0 {
		return 0, apperror.NewInvalidArgument("price of %q must not be negative", e.Name)
	}
	if e.UnitPrice > math.MaxInt64/int64(e.Quantity) {
		return 0, apperror.NewInvalidArgument("line total of %q is out of range", e.Name)
	}
	return e.LineTotal(), nil
}

// Subtotal sums the checked line totals of entries
func Subtotal(entries []Entry) (int64, error) {
	var subtotal int64
	for _, e := range entries {
		line, err := e.CheckedLineTotal()
		if err != nil {
			return 0, err
		}
		if subtotal > math.MaxInt64-line {
			return 0, apperror.NewInvalidArgument("cart subtotal is out of range")
		}
		subtotal += line
	}
	return subtotal, nil
}

// Ledger maps item keys to positive quantities, keeping insertion order.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	keys []ItemKey
	qty  map[ItemKey]int
}

func NewLedger() *Ledger {
	return &Ledger{qty: make(map[ItemKey]int)}
}

// Add increments key by one. The key must resolve in catalog.
func (l *Ledger) Add(key ItemKey, catalog Catalog) error {
	if _, ok := catalog.Resolve(key); !ok {
		return apperror.NewInvalidArgument("item %q is not on the menu", key.String())
	}
	if l.qty[key] >= MaxQuantity {
		return apperror.NewInvalidArgument("quantity of %q must not exceed %d", key.String(), MaxQuantity)
	}
	l.set(key, l.qty[key]+1)
	return nil
}

// Remove decrements key by one, deleting it when nothing is left.
func (l *Ledger) Remove(key ItemKey) {
	l.set(key, l.qty[key]-1)
}

// SetQuantity replaces the quantity of key; qty <= 0 removes it.
func (l *Ledger) SetQuantity(key ItemKey, qty int) error {
	if qty > MaxQuantity {
		return apperror.NewInvalidArgument("quantity of %q must not exceed %d", key.String(), MaxQuantity)
	}
	l.set(key, qty)
	return nil
}

func (l *Ledger) Quantity(key ItemKey) int {
	return l.qty[key]
}

// Len returns the number of distinct keys
func (l *Ledger) Len() int {
	return len(l.keys)
}

func (l *Ledger) set(key ItemKey, qty int) {
	_, present := l.qty[key]
	if qty <= 0 {
		if present {
			delete(l.qty, key)
			for i, k := range l.keys {
				if k == key {
					l.keys = append(l.keys[:i], l.keys[i+1:]...)
					break
				}
			}
		}
		return
	}
	if !present {
		l.keys = append(l.keys, key)
	}
	l.qty[key] = qty
}

// Snapshot prices every line against catalog in insertion order.
// Lines whose item or variant no longer resolves are skipped.
func (l *Ledger) Snapshot(catalog Catalog) []Entry {
	entries := make([]Entry, 0, len(l.keys))
	for _, k := range l.keys {
		r, ok := catalog.Resolve(k)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Key:        k,
			BaseItemID: k.BaseItemID,
			Variant:    k.Variant,
			Name:       r.Name,
			Quantity:   l.qty[k],
			UnitPrice:  r.UnitPrice,
		})
	}
	return entries
}

// Total is the subtotal of the current snapshot
func (l *Ledger) Total(catalog Catalog) (int64, error) {
	return Subtotal(l.Snapshot(catalog))
}
