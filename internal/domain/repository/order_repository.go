package repository

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order with its items in one write
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// ListByCustomer returns the customer's orders placed at or after since, oldest first
	ListByCustomer(ctx context.Context, customerID uuid.UUID, since time.Time) ([]entity.Order, error)
	// Settle moves a PayLater order to method. It fails with a conflict if the
	// order is no longer an unsettled PayLater order.
	Settle(ctx context.Context, id uuid.UUID, method enum.PaymentMethod, at time.Time) error
}
