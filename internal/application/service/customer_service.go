package service

import (
	"context"
	"strings"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles guest registration and visits
type CustomerService struct {
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, now: time.Now}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name   string
	Phone  string
	Email  *string
	RoomNo *string
}

// CreateCustomer registers a guest and checks them in
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperror.NewInvalidArgument("name and phone are required")
	}

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A guest with this phone number already exists")
	}

	customer := &entity.Customer{
		Name:        name,
		Phone:       phone,
		Email:       trimmed(input.Email),
		RoomNo:      trimmed(input.RoomNo),
		CheckinTime: s.now(),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a guest by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists guests, most recent check-in first
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// CheckIn starts a new visit for a returning guest. Orders placed before the
// new check-in time no longer count towards checkout.
func (s *CustomerService) CheckIn(ctx context.Context, id uuid.UUID, roomNo *string) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !customer.CheckedOut() {
		return nil, apperror.NewConflictError("Guest is already checked in")
	}

	customer.CheckinTime = s.now()
	customer.CheckedOutAt = nil
	customer.ClosingSince = nil
	customer.CheckoutLeaseUntil = nil
	if r := trimmed(roomNo); r != nil {
		customer.RoomNo = r
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
