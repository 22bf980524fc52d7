package service

import (
	"context"
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/google/uuid"
)

// CatalogService manages menu items and per-service tax rates
type CatalogService struct {
	menuRepo    repository.MenuRepository
	taxRateRepo repository.TaxRateRepository
}

func NewCatalogService(menuRepo repository.MenuRepository, taxRateRepo repository.TaxRateRepository) *CatalogService {
	return &CatalogService{menuRepo: menuRepo, taxRateRepo: taxRateRepo}
}

// ListMenu returns a service's items; unavailable items only when asked for
func (s *CatalogService) ListMenu(ctx context.Context, service enum.Service, includeUnavailable bool) ([]entity.MenuItem, error) {
	if !service.Valid() {
		return nil, apperror.NewInvalidArgument("unknown service %d", int(service))
	}
	items, err := s.menuRepo.ListByService(ctx, service)
	if err != nil {
		return nil, err
	}
	if includeUnavailable {
		return items, nil
	}
	out := items[:0]
	for _, it := range items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out, nil
}

type MenuItemInput struct {
	Service   enum.Service
	Name      string
	Price     int64
	ShotPrice *int64
	Available *bool
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	if err := validateMenuItem(input); err != nil {
		return nil, err
	}
	item := &entity.MenuItem{
		Service:   input.Service,
		Name:      strings.TrimSpace(input.Name),
		Price:     input.Price,
		ShotPrice: input.ShotPrice,
		Available: input.Available == nil || *input.Available,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem replaces name, prices and availability. Orders already
// placed keep the prices they were built with.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	input.Service = item.Service
	if err := validateMenuItem(input); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Price = input.Price
	item.ShotPrice = input.ShotPrice
	if input.Available != nil {
		item.Available = *input.Available
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) ListTaxRates(ctx context.Context) ([]entity.TaxRate, error) {
	return s.taxRateRepo.List(ctx)
}

// SetTaxRate changes the percent applied to orders placed from now on
func (s *CatalogService) SetTaxRate(ctx context.Context, service enum.Service, percent float64) (*entity.TaxRate, error) {
	if !service.Valid() {
		return nil, apperror.NewInvalidArgument("unknown service %d", int(service))
	}
	if percent < 0 || percent > 100 {
		return nil, apperror.NewInvalidArgument("tax percent must be between 0 and 100, got %v", percent)
	}
	rate := &entity.TaxRate{Service: service, Percent: percent}
	if err := s.taxRateRepo.Upsert(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func validateMenuItem(input *MenuItemInput) error {
	if !input.Service.Valid() {
		return apperror.NewInvalidArgument("unknown service %d", int(input.Service))
	}
	if strings.TrimSpace(input.Name) == "" {
		return apperror.NewInvalidArgument("name is required")
	}
	if input.Price < 0 {
		return apperror.NewInvalidArgument("price must not be negative")
	}
	if input.ShotPrice != nil {
		if input.Service != enum.ServiceBar {
			return apperror.NewInvalidArgument("only bar items have a shot price")
		}
		if *input.ShotPrice < 0 {
			return apperror.NewInvalidArgument("shot price must not be negative")
		}
	}
	return nil
}
