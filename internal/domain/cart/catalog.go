package cart

import (
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
)

// Variants understood by MenuCatalog
const (
	VariantShot   = "Shot"
	VariantBottle = "Bottle"
)

// Resolved is the current catalog view of a key
type Resolved struct {
	Name      string
	UnitPrice int64
}

// Catalog resolves cart keys to the current name and price. A key that does
// not resolve is stale and is dropped from snapshots.
type Catalog interface {
	Resolve(key ItemKey) (Resolved, bool)
}

// MenuCatalog is a Catalog over one service's menu items
type MenuCatalog struct {
	items map[string]entity.MenuItem
}

// NewMenuCatalog indexes items by id. Unavailable items are kept but never resolve.
func NewMenuCatalog(items []entity.MenuItem) *MenuCatalog {
	idx := make(map[string]entity.MenuItem, len(items))
	for _, it := range items {
		idx[it.ID.String()] = it
	}
	return &MenuCatalog{items: idx}
}

func (c *MenuCatalog) Resolve(key ItemKey) (Resolved, bool) {
	item, ok := c.items[key.BaseItemID]
	if !ok || !item.Available {
		return Resolved{}, false
	}

	switch key.Variant {
	case "":
		return Resolved{Name: item.Name, UnitPrice: item.Price}, true
	case VariantBottle:
		return Resolved{Name: item.Name + " (" + VariantBottle + ")", UnitPrice: item.Price}, true
	case VariantShot:
		if !item.HasShots() {
			return Resolved{}, false
		}
		return Resolved{Name: item.Name + " (" + VariantShot + ")", UnitPrice: *item.ShotPrice}, true
	default:
		return Resolved{}, false
	}
}
