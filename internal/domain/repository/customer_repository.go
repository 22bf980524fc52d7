package repository

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// BeginCheckout claims the open visit for one checkout attempt until
	// leaseUntil and marks it closing. It reports false when the visit is
	// checked out or another attempt holds an unexpired lease.
	BeginCheckout(ctx context.Context, id uuid.UUID, now, leaseUntil time.Time) (bool, error)
	// EndCheckout drops the lease. reopen also clears the closing mark.
	EndCheckout(ctx context.Context, id uuid.UUID, reopen bool) error
	// MarkCheckedOut closes the current visit
	MarkCheckedOut(ctx context.Context, id uuid.UUID, at time.Time) error
	// List returns customers with page-based pagination, filtered by name, phone or room
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
