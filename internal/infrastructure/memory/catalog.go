package memory

import (
	"context"
	"sort"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/google/uuid"
)

type menuRepository struct{ s *Store }

// Menu returns the store's menu repository
func (s *Store) Menu() repository.MenuRepository { return &menuRepository{s} }

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.menu[item.ID] = *item
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.menu[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.menu[item.ID]; !ok {
		return apperror.NewNotFoundError("Menu item")
	}
	item.UpdatedAt = time.Now()
	r.s.menu[item.ID] = *item
	return nil
}

func (r *menuRepository) ListByService(ctx context.Context, service enum.Service) ([]entity.MenuItem, error) {
	r.s.mu.RLock()
	var items []entity.MenuItem
	for _, it := range r.s.menu {
		if it.Service == service {
			items = append(items, it)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

type taxRateRepository struct{ s *Store }

// TaxRates returns the store's tax rate repository
func (s *Store) TaxRates() repository.TaxRateRepository { return &taxRateRepository{s} }

func (r *taxRateRepository) GetTaxPercent(ctx context.Context, service enum.Service) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.taxRates[service].Percent, nil
}

func (r *taxRateRepository) List(ctx context.Context) ([]entity.TaxRate, error) {
	r.s.mu.RLock()
	rates := make([]entity.TaxRate, 0, len(r.s.taxRates))
	for _, rate := range r.s.taxRates {
		rates = append(rates, rate)
	}
	r.s.mu.RUnlock()

	sort.Slice(rates, func(i, j int) bool { return rates[i].Service < rates[j].Service })
	return rates, nil
}

func (r *taxRateRepository) Upsert(ctx context.Context, rate *entity.TaxRate) error {
	rate.UpdatedAt = time.Now()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.taxRates[rate.Service] = *rate
	return nil
}
