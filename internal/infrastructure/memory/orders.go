package memory

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/google/uuid"
)

type orderRepository struct{ s *Store }

// Orders returns the store's order repository
func (s *Store) Orders() repository.OrderRepository { return &orderRepository{s} }

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.orders[order.ID]; exists {
		return apperror.NewConflictError("order already exists")
	}
	r.s.orders[order.ID] = copyOrder(*order)
	r.s.orderSeq = append(r.s.orderSeq, order.ID)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, since time.Time) ([]entity.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []entity.Order
	for _, id := range r.s.orderSeq {
		o := r.s.orders[id]
		if o.CustomerID != customerID || o.Timestamp.Before(since) {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *orderRepository) Settle(ctx context.Context, id uuid.UUID, method enum.PaymentMethod, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return apperror.NewNotFoundError("Order")
	}
	if !o.Pending() {
		return apperror.NewConflictError("order is not awaiting payment")
	}
	o.PaymentMethod = method
	o.SettledAt = &at
	o.UpdatedAt = at
	r.s.orders[id] = o
	return nil
}
