package repository

import (
	"context"
	"errors"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	domainRepo "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// BeginCheckout is one conditional UPDATE; at most one caller wins the lease.
func (r *customerRepository) BeginCheckout(ctx context.Context, id uuid.UUID, now, leaseUntil time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ? AND checked_out_at IS NULL", id).
		Where("checkout_lease_until IS NULL OR checkout_lease_until <= ?", now).
		Updates(map[string]interface{}{
			"closing_since":        gorm.Expr("CASE WHEN closing_since IS NULL OR closing_since < checkin_time THEN ? ELSE closing_since END", now),
			"checkout_lease_until": leaseUntil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *customerRepository) EndCheckout(ctx context.Context, id uuid.UUID, reopen bool) error {
	updates := map[string]interface{}{"checkout_lease_until": nil}
	if reopen {
		updates["closing_since"] = nil
	}
	return r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *customerRepository) MarkCheckedOut(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"checked_out_at":       at,
			"checkout_lease_until": nil,
		}).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Scopes(SearchScope(search, "name", "phone", "room_no"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("checkin_time DESC").
		Find(&customers).Error

	return customers, total, err
}
