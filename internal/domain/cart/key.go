package cart

import (
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

const (
	keySeparator = ':'
	keyEscape    = '\\'
)

// ItemKey identifies a cart line: a catalog item plus an optional variant
// such as "Shot" or "Bottle".
type ItemKey struct {
	BaseItemID string `json:"base_item_id"`
	Variant    string `json:"variant,omitempty"`
}

// String returns the encoded form of the key
func (k ItemKey) String() string {
	return EncodeItemKey(k)
}

// EncodeItemKey renders k as "base" or "base:variant". Separators and escape
// characters inside either component are escaped with a backslash.
func EncodeItemKey(k ItemKey) string {
	if k.Variant == "" {
		return escapeComponent(k.BaseItemID)
	}
	return escapeComponent(k.BaseItemID) + string(keySeparator) + escapeComponent(k.Variant)
}

// ParseItemKey is the inverse of EncodeItemKey
func ParseItemKey(s string) (ItemKey, error) {
	var (
		parts   []string
		current strings.Builder
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			if r != keySeparator && r != keyEscape {
				return ItemKey{}, apperror.NewInvalidArgument("item key %q: invalid escape sequence", s)
			}
			current.WriteRune(r)
			escaped = false
		case r == keyEscape:
			escaped = true
		case r == keySeparator:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		return ItemKey{}, apperror.NewInvalidArgument("item key %q: dangling escape", s)
	}
	parts = append(parts, current.String())

	switch {
	case len(parts) > 2:
		return ItemKey{}, apperror.NewInvalidArgument("item key %q: too many separators", s)
	case parts[0] == "":
		return ItemKey{}, apperror.NewInvalidArgument("item key %q: empty item id", s)
	case len(parts) == 2 && parts[1] == "":
		return ItemKey{}, apperror.NewInvalidArgument("item key %q: empty variant", s)
	}

	key := ItemKey{BaseItemID: parts[0]}
	if len(parts) == 2 {
		key.Variant = parts[1]
	}
	return key, nil
}

func escapeComponent(s string) string {
	if !strings.ContainsAny(s, `:\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		if r == keySeparator || r == keyEscape {
			b.WriteRune(keyEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
