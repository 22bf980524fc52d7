package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
)

type customerRepository struct{ s *Store }

// Customers returns the store's customer repository
func (s *Store) Customers() repository.CustomerRepository { return &customerRepository{s} }

func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return apperror.NewNotFoundError("Customer")
	}
	c.UpdatedAt = time.Now()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) BeginCheckout(ctx context.Context, id uuid.UUID, now, leaseUntil time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok || c.CheckedOut() {
		return false, nil
	}
	if c.CheckoutLeaseUntil != nil && c.CheckoutLeaseUntil.After(now) {
		return false, nil
	}
	if !c.Closing() {
		c.ClosingSince = &now
	}
	c.CheckoutLeaseUntil = &leaseUntil
	r.s.customers[id] = c
	return true, nil
}

func (r *customerRepository) EndCheckout(ctx context.Context, id uuid.UUID, reopen bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return apperror.NewNotFoundError("Customer")
	}
	c.CheckoutLeaseUntil = nil
	if reopen {
		c.ClosingSince = nil
	}
	r.s.customers[id] = c
	return nil
}

func (r *customerRepository) MarkCheckedOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return apperror.NewNotFoundError("Customer")
	}
	c.CheckedOutAt = &at
	c.CheckoutLeaseUntil = nil
	r.s.customers[id] = c
	return nil
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	search = strings.ToLower(strings.TrimSpace(search))

	r.s.mu.RLock()
	var matched []entity.Customer
	for _, c := range r.s.customers {
		if search == "" || matchesCustomer(c, search) {
			matched = append(matched, c)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CheckinTime.After(matched[j].CheckinTime) })

	params.Validate()
	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesCustomer(c entity.Customer, search string) bool {
	if strings.Contains(strings.ToLower(c.Name), search) || strings.Contains(c.Phone, search) {
		return true
	}
	return c.RoomNo != nil && strings.Contains(strings.ToLower(*c.RoomNo), search)
}
