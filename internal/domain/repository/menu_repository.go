package repository

import (
	"context"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/google/uuid"
)

// MenuRepository defines the interface for menu item data operations
type MenuRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	// ListByService returns every item of the service, available or not, ordered by name
	ListByService(ctx context.Context, service enum.Service) ([]entity.MenuItem, error)
}

// TaxRateRepository defines the interface for per-service tax rates
type TaxRateRepository interface {
	// GetTaxPercent returns 0 for a service without a configured rate
	GetTaxPercent(ctx context.Context, service enum.Service) (float64, error)
	List(ctx context.Context) ([]entity.TaxRate, error)
	Upsert(ctx context.Context, rate *entity.TaxRate) error
}
