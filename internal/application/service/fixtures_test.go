package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/cart"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/memory"
)

var fixedNow = time.Date(2024, time.March, 9, 20, 15, 0, 0, time.UTC)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishInvoiceIssued(ctx context.Context, evt event.InvoiceIssued) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type MockSequences struct {
	mock.Mock
}

func (m *MockSequences) Allocate(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

type testEnv struct {
	store     *memory.Store
	orders    *OrderService
	checkout  *CheckoutService
	customers *CustomerService
	catalog   *CatalogService
	invoices  *InvoiceService
	publisher event.Publisher
	staffID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, event.NoopPublisher{})
}

func newTestEnvWith(t *testing.T, publisher event.Publisher) *testEnv {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, rate := range entity.DefaultTaxRates() {
		require.NoError(t, store.TaxRates().Upsert(ctx, &rate))
	}

	env := &testEnv{
		store:     store,
		orders:    NewOrderService(store.Orders(), store.Customers(), store.Menu(), store.TaxRates(), zap.NewNop()),
		customers: NewCustomerService(store.Customers()),
		catalog:   NewCatalogService(store.Menu(), store.TaxRates()),
		invoices: NewInvoiceService(store.Invoices(), store.Customers(), nil,
			entity.ResortHeader{Name: "Green Valley Resort"}, 48, zap.NewNop()),
		publisher: publisher,
		staffID:   uuid.New(),
	}
	env.checkout = NewCheckoutService(
		store.Customers(), store.Orders(), store.Invoices(),
		NewBillSequencer(store.BillSequences()),
		DefaultInvoiceClasses("B", "R"),
		publisher, zap.NewNop(),
	)

	clock := func() time.Time { return fixedNow }
	env.orders.now = clock
	env.customers.now = func() time.Time { return fixedNow.Add(-2 * time.Hour) }
	env.checkout.now = clock
	return env
}

func (e *testEnv) guest(t *testing.T, name, phone string) *entity.Customer {
	t.Helper()
	room := "204"
	c, err := e.customers.CreateCustomer(context.Background(), &CreateCustomerInput{Name: name, Phone: phone, RoomNo: &room})
	require.NoError(t, err)
	return c
}

func (e *testEnv) menuItem(t *testing.T, service enum.Service, name string, price int64) *entity.MenuItem {
	t.Helper()
	item, err := e.catalog.CreateMenuItem(context.Background(), &MenuItemInput{Service: service, Name: name, Price: price})
	require.NoError(t, err)
	return item
}

func (e *testEnv) place(t *testing.T, customerID uuid.UUID, service enum.Service, item *entity.MenuItem, qty int, method enum.PaymentMethod) *entity.Order {
	t.Helper()
	order, err := e.orders.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID:    customerID,
		Service:       service,
		Items:         []CartLine{{ItemID: cart.EncodeItemKey(cart.ItemKey{BaseItemID: item.ID.String()}), Quantity: qty}},
		PaymentMethod: method,
		TableNo:       "T1",
		CreatedBy:     e.staffID,
	})
	require.NoError(t, err)
	return order
}
