package service

import (
	"context"
	"fmt"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceClass groups services onto one bill with its own number prefix.
type InvoiceClass struct {
	Name     string
	Prefix   string
	Includes func(enum.Service) bool
}

// DefaultInvoiceClasses puts Bar on its own bill and every other service on
// the general bill. Classes are evaluated in order; the first match wins.
func DefaultInvoiceClasses(barPrefix, generalPrefix string) []InvoiceClass {
	return []InvoiceClass{
		{Name: "Bar", Prefix: barPrefix, Includes: func(s enum.Service) bool { return s == enum.ServiceBar }},
		{Name: "General", Prefix: generalPrefix, Includes: func(enum.Service) bool { return true }},
	}
}

// CheckoutResult is the terminal outcome of one checkout attempt
type CheckoutResult struct {
	State        enum.CheckoutState `json:"state"`
	CustomerID   uuid.UUID          `json:"customer_id"`
	Invoices     []entity.Invoice   `json:"invoices"`
	Orders       []entity.Order     `json:"orders"`
	PendingCount int                `json:"pending_count,omitempty"`
}

type CheckoutService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	invoiceRepo  repository.InvoiceRepository
	sequencer    *BillSequencer
	classes      []InvoiceClass
	publisher    event.Publisher
	logger       *zap.Logger
	now          func() time.Time
}

func NewCheckoutService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	sequencer *BillSequencer,
	classes []InvoiceClass,
	publisher event.Publisher,
	logger *zap.Logger,
) *CheckoutService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		invoiceRepo:  invoiceRepo,
		sequencer:    sequencer,
		classes:      classes,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// checkoutLease bounds how long a crashed attempt keeps other devices out
const checkoutLease = 2 * time.Minute

// Checkout closes the guest's current visit, issuing one invoice per
// non-empty invoice class. Outstanding PayLater orders block the checkout
// without allocating any bill number.
//
// Each attempt first claims a lease on the visit, so concurrent attempts get
// a Conflict. The claim also marks the visit closing, which stops new orders.
// A blocked or failed attempt reopens the visit unless a bill was already
// issued for it; in that case the visit stays closing and a retry reuses the
// issued bills.
func (s *CheckoutService) Checkout(ctx context.Context, customerID uuid.UUID) (*CheckoutResult, error) {
	result := &CheckoutResult{State: enum.CheckoutFetching, CustomerID: customerID}
	log := s.logger.With(zap.String("customer_id", customerID.String()))

	fail := func(err error) (*CheckoutResult, error) {
		log.Warn("checkout failed", zap.Stringer("at", result.State), zap.Error(err))
		result.State = enum.CheckoutFailed
		return result, err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return fail(err)
	}
	if customer == nil {
		return fail(apperror.NewNotFoundError("Customer"))
	}
	if customer.CheckedOut() {
		return fail(apperror.NewConflictError("guest has already checked out"))
	}

	now := s.now()
	claimed, err := s.customerRepo.BeginCheckout(ctx, customerID, now, now.Add(checkoutLease))
	if err != nil {
		return fail(err)
	}
	if !claimed {
		return fail(apperror.NewConflictError("checkout is already in progress for this guest"))
	}

	var issued map[string]entity.Invoice
	defer func() {
		if result.State == enum.CheckoutDone {
			return
		}
		reopen := len(issued) == 0
		if err := s.customerRepo.EndCheckout(context.WithoutCancel(ctx), customerID, reopen); err != nil {
			log.Error("failed to release checkout", zap.Error(err))
		}
	}()

	issued, err = s.existingInvoices(ctx, customer)
	if err != nil {
		return fail(err)
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, customerID, customer.CheckinTime)
	if err != nil {
		return fail(err)
	}
	result.Orders = orders

	result.State = enum.CheckoutValidating
	for i := range orders {
		if orders[i].Pending() {
			result.PendingCount++
		}
	}
	if result.PendingCount > 0 {
		result.State = enum.CheckoutBlocked
		log.Info("checkout blocked by pay-later orders", zap.Int("pending", result.PendingCount))
		return result, nil
	}

	result.State = enum.CheckoutAggregating
	groups := PartitionByClass(AggregateByService(orders), s.classes)

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	result.State = enum.CheckoutSequencing
	for _, g := range groups {
		if prev, ok := issued[g.Class.Name]; ok {
			if prev.GrandTotal != g.GrandTotal() {
				return fail(apperror.NewConflictError(fmt.Sprintf(
					"bill %s was already issued for this visit with a different total", prev.BillNo)))
			}
			result.Invoices = append(result.Invoices, prev)
			continue
		}

		billNo, err := s.sequencer.NextBillNumber(ctx, g.Class.Prefix)
		if err != nil {
			return fail(err)
		}
		invoice := g.Invoice(billNo, customerID, now)
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return fail(err)
		}
		issued[invoice.InvoiceClass] = *invoice
		log.Info("invoice issued",
			zap.String("bill_no", invoice.BillNo),
			zap.String("class", invoice.InvoiceClass),
			zap.Int64("grand_total", invoice.GrandTotal),
		)
		result.Invoices = append(result.Invoices, *invoice)
	}

	if err := s.customerRepo.MarkCheckedOut(ctx, customerID, now); err != nil {
		return fail(err)
	}
	result.State = enum.CheckoutDone

	for i := range result.Invoices {
		s.publish(ctx, &result.Invoices[i])
	}
	return result, nil
}

// existingInvoices returns invoices already issued during the current visit,
// keyed by class. They exist when an earlier attempt failed after sequencing.
func (s *CheckoutService) existingInvoices(ctx context.Context, customer *entity.Customer) (map[string]entity.Invoice, error) {
	all, err := s.invoiceRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]entity.Invoice)
	for _, inv := range all {
		if !inv.IssuedAt.Before(customer.CheckinTime) {
			out[inv.InvoiceClass] = inv
		}
	}
	return out, nil
}

func (s *CheckoutService) publish(ctx context.Context, invoice *entity.Invoice) {
	if err := s.publisher.PublishInvoiceIssued(ctx, event.NewInvoiceIssued(invoice)); err != nil {
		s.logger.Error("failed to publish invoice event",
			zap.String("bill_no", invoice.BillNo),
			zap.Error(err),
		)
	}
}

// AggregateByService sums TotalAmount and TaxAmount per service
func AggregateByService(orders []entity.Order) map[enum.Service]entity.ServiceTotal {
	totals := make(map[enum.Service]entity.ServiceTotal)
	for _, o := range orders {
		t := totals[o.Service]
		t.Amount += o.TotalAmount
		t.Tax += o.TaxAmount
		totals[o.Service] = t
	}
	return totals
}

// ClassTotals is the slice of the visit's service totals that lands on one bill
type ClassTotals struct {
	Class  InvoiceClass
	Totals map[enum.Service]entity.ServiceTotal
}

func (c ClassTotals) GrandTotal() int64 {
	var total int64
	for _, t := range c.Totals {
		total += t.Amount
	}
	return total
}

func (c ClassTotals) TotalTax() int64 {
	var total int64
	for _, t := range c.Totals {
		total += t.Tax
	}
	return total
}

// Invoice builds the unsaved invoice for this class. Lines follow service order.
func (c ClassTotals) Invoice(billNo string, customerID uuid.UUID, issuedAt time.Time) *entity.Invoice {
	inv := &entity.Invoice{
		BillNo:       billNo,
		InvoiceClass: c.Class.Name,
		CustomerID:   customerID,
		GrandTotal:   c.GrandTotal(),
		TotalTax:     c.TotalTax(),
		IssuedAt:     issuedAt,
	}
	for _, svc := range enum.AllServices() {
		if t, ok := c.Totals[svc]; ok {
			inv.Lines = append(inv.Lines, entity.InvoiceLine{Service: svc, Amount: t.Amount, Tax: t.Tax})
		}
	}
	return inv
}

// PartitionByClass assigns every service to the first class that includes it.
// Classes with no services are left out; the rest keep declaration order.
func PartitionByClass(totals map[enum.Service]entity.ServiceTotal, classes []InvoiceClass) []ClassTotals {
	buckets := make([]map[enum.Service]entity.ServiceTotal, len(classes))
	for _, svc := range enum.AllServices() {
		t, ok := totals[svc]
		if !ok {
			continue
		}
		for i, class := range classes {
			if class.Includes(svc) {
				if buckets[i] == nil {
					buckets[i] = make(map[enum.Service]entity.ServiceTotal)
				}
				buckets[i][svc] = t
				break
			}
		}
	}

	var out []ClassTotals
	for i, b := range buckets {
		if len(b) > 0 {
			out = append(out, ClassTotals{Class: classes[i], Totals: b})
		}
	}
	return out
}
