package service

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/cart"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/tax"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	menuRepo     repository.MenuRepository
	taxRateRepo  repository.TaxRateRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	menuRepo repository.MenuRepository,
	taxRateRepo repository.TaxRateRepository,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		menuRepo:     menuRepo,
		taxRateRepo:  taxRateRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CartLine is one line of a cart posted by a device. ItemID is an encoded ItemKey.
type CartLine struct {
	ItemID   string
	Quantity int
}

// Quote is a cart priced against the current catalog without placing an order
type Quote struct {
	Service enum.Service  `json:"service"`
	Items   []cart.Entry  `json:"items"`
	Dropped []string      `json:"dropped,omitempty"`
	Tax     tax.Breakdown `json:"tax"`
}

type PlaceOrderInput struct {
	CustomerID    uuid.UUID
	Service       enum.Service
	Items         []CartLine
	PaymentMethod enum.PaymentMethod
	TableNo       string
	RoomNo        string
	CreatedBy     uuid.UUID
}

// Quote prices items for service. Keys that no longer resolve are reported in Dropped.
func (s *OrderService) Quote(ctx context.Context, service enum.Service, items []CartLine) (*Quote, error) {
	entries, dropped, err := s.snapshot(ctx, service, items)
	if err != nil {
		return nil, err
	}
	pct, err := s.taxRateRepo.GetTaxPercent(ctx, service)
	if err != nil {
		return nil, err
	}

	subtotal, err := cart.Subtotal(entries)
	if err != nil {
		return nil, err
	}
	breakdown, err := tax.Calculate(subtotal, pct)
	if err != nil {
		return nil, err
	}
	return &Quote{Service: service, Items: entries, Dropped: dropped, Tax: breakdown}, nil
}

// PlaceOrder prices the posted cart against the live catalog and stores the order.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if customer.CheckedOut() {
		return nil, apperror.NewConflictError("guest has checked out; check them in again to take orders")
	}
	if customer.Closing() {
		return nil, apperror.NewConflictError("checkout has started for this guest; finish it before taking orders")
	}

	entries, dropped, err := s.snapshot(ctx, input.Service, input.Items)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		s.logger.Info("dropped stale cart items",
			zap.String("customer_id", input.CustomerID.String()),
			zap.Strings("items", dropped),
		)
	}

	pct, err := s.taxRateRepo.GetTaxPercent(ctx, input.Service)
	if err != nil {
		return nil, err
	}

	roomNo := input.RoomNo
	if roomNo == "" && input.Service.RequiresRoom() && customer.RoomNo != nil {
		roomNo = *customer.RoomNo
	}

	order, err := BuildOrder(BuildOrderInput{
		CustomerID:    input.CustomerID,
		Service:       input.Service,
		Entries:       entries,
		TaxPercent:    pct,
		PaymentMethod: input.PaymentMethod,
		TableNo:       input.TableNo,
		RoomNo:        roomNo,
		CreatedBy:     input.CreatedBy,
		Now:           s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Stringer("service", order.Service),
		zap.Int64("total", order.TotalAmount),
		zap.Stringer("payment", order.PaymentMethod),
	)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListVisitOrders returns the orders of the guest's current visit, oldest first
func (s *OrderService) ListVisitOrders(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.orderRepo.ListByCustomer(ctx, customerID, customer.CheckinTime)
}

// Settle records payment of a PayLater order
func (s *OrderService) Settle(ctx context.Context, id uuid.UUID, method enum.PaymentMethod) (*entity.Order, error) {
	if !method.Valid() || method.IsDeferred() {
		return nil, apperror.NewInvalidArgument("settle with Cash, QR or Card, not %s", method)
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Pending() {
		return nil, apperror.NewConflictError("order is not awaiting payment")
	}
	if err := s.orderRepo.Settle(ctx, id, method, s.now()); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// KitchenTicket composes the KOT for a stored order
func (s *OrderService) KitchenTicket(ctx context.Context, id uuid.UUID) (entity.KitchenTicket, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return entity.KitchenTicket{}, err
	}
	return entity.NewKitchenTicket(order), nil
}

// snapshot folds the posted lines into a ledger and prices it against the
// service's catalog. Duplicate keys are merged.
func (s *OrderService) snapshot(ctx context.Context, service enum.Service, items []CartLine) ([]cart.Entry, []string, error) {
	if !service.Valid() {
		return nil, nil, apperror.NewInvalidArgument("unknown service %d", int(service))
	}

	ledger := cart.NewLedger()
	for _, line := range items {
		key, err := cart.ParseItemKey(line.ItemID)
		if err != nil {
			return nil, nil, err
		}
		if line.Quantity < 0 || line.Quantity > cart.MaxQuantity {
			return nil, nil, apperror.NewInvalidArgument("quantity of %q must be between 0 and %d", line.ItemID, cart.MaxQuantity)
		}
		if err := ledger.SetQuantity(key, ledger.Quantity(key)+line.Quantity); err != nil {
			return nil, nil, err
		}
	}
	if ledger.Len() == 0 {
		return nil, nil, apperror.ErrEmptyCart
	}

	menu, err := s.menuRepo.ListByService(ctx, service)
	if err != nil {
		return nil, nil, err
	}
	catalog := cart.NewMenuCatalog(menu)

	entries := ledger.Snapshot(catalog)
	var dropped []string
	if len(entries) < ledger.Len() {
		kept := make(map[cart.ItemKey]bool, len(entries))
		for _, e := range entries {
			kept[e.Key] = true
		}
		for _, line := range items {
			key, _ := cart.ParseItemKey(line.ItemID)
			if !kept[key] && ledger.Quantity(key) > 0 {
				dropped = append(dropped, line.ItemID)
				kept[key] = true
			}
		}
	}
	return entries, dropped, nil
}
