package service

import (
	"strings"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/cart"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/tax"
	"github.com/google/uuid"
)

// BuildOrderInput carries everything needed to price one order.
// Entries is a ledger snapshot, already resolved against the catalog.
type BuildOrderInput struct {
	CustomerID    uuid.UUID
	Service       enum.Service
	Entries       []cart.Entry
	TaxPercent    float64
	PaymentMethod enum.PaymentMethod
	TableNo       string
	RoomNo        string
	CreatedBy     uuid.UUID
	Now           time.Time
}

// BuildOrder turns a cart snapshot into an unsaved Order. It has no side effects.
func BuildOrder(input BuildOrderInput) (*entity.Order, error) {
	if !input.Service.Valid() {
		return nil, apperror.NewInvalidArgument("unknown service %d", int(input.Service))
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperror.NewInvalidArgument("unknown payment method %d", int(input.PaymentMethod))
	}
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewInvalidArgument("customer is required")
	}
	if len(input.Entries) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	tableNo := strings.TrimSpace(input.TableNo)
	roomNo := strings.TrimSpace(input.RoomNo)
	if input.Service.RequiresRoom() && roomNo == "" {
		return nil, apperror.NewMissingLocationError(input.Service.Label() + " orders need a room number")
	}
	if input.Service.RequiresTableOrRoom() && tableNo == "" && roomNo == "" {
		return nil, apperror.NewMissingLocationError(input.Service.Label() + " orders need a table or room number")
	}

	subtotal, err := cart.Subtotal(input.Entries)
	if err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(input.Entries))
	for i, e := range input.Entries {
		items = append(items, entity.OrderItem{
			ItemID:    cart.EncodeItemKey(e.Key),
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal(),
			Position:  i,
		})
	}

	breakdown, err := tax.Calculate(subtotal, input.TaxPercent)
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &entity.Order{
		CustomerID:    input.CustomerID,
		Service:       input.Service,
		Subtotal:      breakdown.Subtotal,
		TaxPercent:    breakdown.TaxPercent,
		TaxAmount:     breakdown.TaxAmount,
		TotalAmount:   breakdown.Total,
		PaymentMethod: input.PaymentMethod,
		TableNo:       optional(tableNo),
		RoomNo:        optional(roomNo),
		CreatedBy:     input.CreatedBy,
		Timestamp:     now,
		Items:         items,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
