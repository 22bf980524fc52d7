package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendInvoice(toEmail, guestName, billNo, resortName, invoiceText string) error {
	return m.Called(toEmail, guestName, billNo, resortName, invoiceText).Error(0)
}

func checkedOutGuest(t *testing.T, env *testEnv, email *string) *CheckoutResult {
	t.Helper()
	ctx := context.Background()
	c, err := env.customers.CreateCustomer(ctx, &CreateCustomerInput{Name: "Nila", Phone: uuid.NewString()[:10], Email: email})
	require.NoError(t, err)
	cake := env.menuItem(t, enum.ServiceBakery, "Banana Cake", 180)
	env.place(t, c.ID, enum.ServiceBakery, cake, 1, enum.PaymentCash)

	result, err := env.checkout.Checkout(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, result.Invoices, 1)
	return result
}

func TestInvoiceService_TextAndLookup(t *testing.T) {
	env := newTestEnv(t)
	result := checkedOutGuest(t, env, nil)
	id := result.Invoices[0].ID

	inv, err := env.invoices.GetInvoice(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "R-1", inv.BillNo)

	text, err := env.invoices.InvoiceText(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, text, "Green Valley Resort")
	assert.Contains(t, text, "Guest: Nila")
	assert.Contains(t, text, "Rupees One Hundred Eighty Only")

	_, err = env.invoices.GetInvoice(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestInvoiceService_ListIsNewestFirstWithCursor(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.checkout.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Minute) }
		checkedOutGuest(t, env, nil)
	}

	page, err := env.invoices.ListInvoices(context.Background(), &pagination.CursorParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "R-3", page.Items[0].BillNo)
	assert.Equal(t, "R-2", page.Items[1].BillNo)
	require.True(t, page.Pagination.HasNext)

	next, err := env.invoices.ListInvoices(context.Background(), &pagination.CursorParams{Limit: 2, Cursor: *page.Pagination.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.Equal(t, "R-1", next.Items[0].BillNo)
	assert.False(t, next.Pagination.HasNext)

	_, err = env.invoices.ListInvoices(context.Background(), &pagination.CursorParams{Cursor: "%%%"})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestInvoiceService_EmailInvoice(t *testing.T) {
	env := newTestEnv(t)
	mailer := new(MockMailer)
	mailer.On("Configured").Return(true)
	mailer.On("SendInvoice", "nila@example.com", "Nila", "R-1", "Green Valley Resort",
		mock.MatchedBy(func(text string) bool { return strings.Contains(text, "TOTAL") })).Return(nil).Once()
	env.invoices = NewInvoiceService(env.store.Invoices(), env.store.Customers(), mailer,
		entity.ResortHeader{Name: "Green Valley Resort"}, 48, zap.NewNop())

	email := "nila@example.com"
	result := checkedOutGuest(t, env, &email)

	inv, err := env.invoices.EmailInvoice(context.Background(), result.Invoices[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "R-1", inv.BillNo)
	mailer.AssertExpectations(t)
}

func TestInvoiceService_EmailFailures(t *testing.T) {
	env := newTestEnv(t)
	mailer := new(MockMailer)
	mailer.On("Configured").Return(true)
	mailer.On("SendInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: 421 service not available"))
	env.invoices = NewInvoiceService(env.store.Invoices(), env.store.Customers(), mailer,
		entity.ResortHeader{Name: "Resort"}, 48, zap.NewNop())

	noEmail := checkedOutGuest(t, env, nil)
	_, err := env.invoices.EmailInvoice(context.Background(), noEmail.Invoices[0].ID)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	email := "guest@example.com"
	withEmail := checkedOutGuest(t, env, &email)
	_, err = env.invoices.EmailInvoice(context.Background(), withEmail.Invoices[0].ID)
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)

	unconfigured := NewInvoiceService(env.store.Invoices(), env.store.Customers(), nil, entity.ResortHeader{}, 48, nil)
	_, err = unconfigured.EmailInvoice(context.Background(), withEmail.Invoices[0].ID)
	assert.Equal(t, 503, apperror.GetAppError(err).Code)
}
