package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/cart"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/database"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/memory"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/handler"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/middleware"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/printer"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type checkoutBody struct {
	State        string           `json:"state"`
	Invoices     []entity.Invoice `json:"invoices"`
	PendingCount int              `json:"pending_count"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := memory.NewStore()
	admin := config.AdminConfig{Email: "manager@resort.in", Password: "manager-pass", Name: "Manager"}
	require.NoError(t, database.SeedDefaultData(ctx, database.SeedRepositories{
		Menu: store.Menu(), TaxRates: store.TaxRates(), Users: store.Users(),
	}, admin, zap.NewNop()))

	cfg := &config.Config{
		App:       config.AppConfig{Name: "resort-billing"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	jwtManager := utils.NewJWTManager("route-test-secret", time.Hour, 24*time.Hour)

	orders := service.NewOrderService(store.Orders(), store.Customers(), store.Menu(), store.TaxRates(), nil)
	invoices := service.NewInvoiceService(store.Invoices(), store.Customers(), nil,
		entity.ResortHeader{Name: "Green Valley Resort"}, 48, nil)
	checkout := service.NewCheckoutService(store.Customers(), store.Orders(), store.Invoices(),
		service.NewBillSequencer(store.BillSequences()), service.DefaultInvoiceClasses("B", "R"), nil, nil)

	h := &Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(store.Users(), jwtManager)),
		Customer: handler.NewCustomerHandler(service.NewCustomerService(store.Customers()), orders, checkout),
		Catalog:  handler.NewCatalogHandler(service.NewCatalogService(store.Menu(), store.TaxRates())),
		Order:    handler.NewOrderHandler(orders, 32),
		Invoice:  handler.NewInvoiceHandler(invoices),
		Printer: handler.NewPrinterHandler(
			service.NewPrinterService(printer.NewNullPrinter(), invoices, orders, "none", 32, nil)),
	}
	router := Setup(ctx, h, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: store.Idempotency(),
	})

	api := &apiClient{t: t, router: router}
	api.token = api.login("manager@resort.in", "manager-pass")
	return api
}

func (a *apiClient) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) decode(rec *httptest.ResponseRecorder, into any) envelope {
	a.t.Helper()
	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if into != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, into))
	}
	return env
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	saved := a.token
	a.token = ""
	defer func() { a.token = saved }()

	rec := a.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": password}, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	a.decode(rec, &out)
	require.NotEmpty(a.t, out.AccessToken)
	return out.AccessToken
}

func (a *apiClient) menuID(service, name string) string {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/api/v1/menu/"+service, nil, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var items []entity.MenuItem
	a.decode(rec, &items)
	for _, it := range items {
		if it.Name == name {
			return it.ID.String()
		}
	}
	a.t.Fatalf("menu item %q not found in %s", name, service)
	return ""
}

func idem(key string) map[string]string {
	return map[string]string{middleware.IdempotencyKeyHeader: key}
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "resort-billing")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI(t)
	api.token = ""
	rec := api.do(http.MethodGet, "/api/v1/invoices", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/customers",
		gin.H{"name": "Meera", "phone": "9845012345", "room_no": "101"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var guest entity.Customer
	api.decode(rec, &guest)

	beer := api.menuID("bar", "Draught Beer")
	soda := api.menuID("Juice", "Fresh Lime Soda")

	barOrder := gin.H{
		"customer_id":    guest.ID.String(),
		"service":        "Bar",
		"items":          []gin.H{{"item_id": beer, "quantity": 2}},
		"payment_method": "Cash",
		"table_no":       "T4",
	}

	rec = api.do(http.MethodPost, "/api/v1/orders", barOrder, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, "order placement needs an idempotency key")

	rec = api.do(http.MethodPost, "/api/v1/orders", barOrder, idem("order-1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed entity.Order
	api.decode(rec, &placed)
	assert.Equal(t, int64(600), placed.Subtotal)
	assert.Equal(t, int64(108), placed.TaxAmount)
	assert.Equal(t, int64(708), placed.TotalAmount)

	rec = api.do(http.MethodPost, "/api/v1/orders", barOrder, idem("order-1"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(middleware.IdempotencyReplayedHeader))
	var replayed entity.Order
	api.decode(rec, &replayed)
	assert.Equal(t, placed.ID, replayed.ID)

	barOrder["table_no"] = "T5"
	rec = api.do(http.MethodPost, "/api/v1/orders", barOrder, idem("order-1"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id":    guest.ID.String(),
		"service":        "Juice",
		"items":          []gin.H{{"item_id": soda, "quantity": 1}},
		"payment_method": "PayLater",
	}, idem("order-2"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var later entity.Order
	api.decode(rec, &later)

	checkoutPath := "/api/v1/customers/" + guest.ID.String() + "/checkout"
	rec = api.do(http.MethodPost, checkoutPath, nil, idem("checkout-1"))
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	var blocked checkoutBody
	api.decode(rec, &blocked)
	assert.Equal(t, "Blocked", blocked.State)
	assert.Equal(t, 1, blocked.PendingCount)
	assert.Empty(t, blocked.Invoices)

	rec = api.do(http.MethodPost, "/api/v1/orders/"+later.ID.String()+"/settle", gin.H{"payment_method": "QR"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, checkoutPath, nil, idem("checkout-1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var done checkoutBody
	api.decode(rec, &done)
	assert.Equal(t, "Done", done.State)
	require.Len(t, done.Invoices, 2)
	assert.Equal(t, "B-1", done.Invoices[0].BillNo)
	assert.Equal(t, int64(708), done.Invoices[0].GrandTotal)
	assert.Equal(t, "R-1", done.Invoices[1].BillNo)
	assert.Equal(t, int64(60), done.Invoices[1].GrandTotal)

	rec = api.do(http.MethodPost, checkoutPath, nil, idem("checkout-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(middleware.IdempotencyReplayedHeader))

	rec = api.do(http.MethodPost, checkoutPath, nil, idem("checkout-2"))
	assert.Equal(t, http.StatusConflict, rec.Code, "guest already checked out")

	rec = api.do(http.MethodGet, "/api/v1/invoices/"+done.Invoices[0].ID.String()+"/text", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "BAR BILL")
	assert.Contains(t, rec.Body.String(), "Bill No: B-1")

	rec = api.do(http.MethodGet, "/api/v1/invoices?limit=1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []entity.Invoice `json:"items"`
		Pagination struct {
			HasNext bool `json:"has_next"`
		} `json:"pagination"`
	}
	api.decode(rec, &page)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.Pagination.HasNext)

	rec = api.do(http.MethodPost, "/api/v1/invoices/"+done.Invoices[1].ID.String()+"/email", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestQuoteDoesNotPersist(t *testing.T) {
	api := newAPI(t)
	rum := api.menuID("Bar", "Old Monk")
	shot := cart.EncodeItemKey(cart.ItemKey{BaseItemID: rum, Variant: cart.VariantShot})

	rec := api.do(http.MethodPost, "/api/v1/carts/quote", gin.H{
		"service": "Bar",
		"items": []gin.H{
			{"item_id": shot, "quantity": 3},
			{"item_id": "gone-item", "quantity": 1},
		},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var quote struct {
		Items   []cart.Entry `json:"items"`
		Dropped []string     `json:"dropped"`
		Tax     struct {
			Subtotal  int64 `json:"subtotal"`
			TaxAmount int64 `json:"tax_amount"`
			Total     int64 `json:"total"`
		} `json:"tax"`
	}
	api.decode(rec, &quote)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "Old Monk (Shot)", quote.Items[0].Name)
	assert.Equal(t, int64(360), quote.Tax.Subtotal)
	assert.Equal(t, int64(65), quote.Tax.TaxAmount)
	assert.Equal(t, int64(425), quote.Tax.Total)
	assert.Equal(t, []string{"gone-item"}, quote.Dropped)
}

func TestKitchenTicketAndPrinter(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/customers", gin.H{"name": "Arun", "phone": "9000000001"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var guest entity.Customer
	api.decode(rec, &guest)

	meals := api.menuID("Restaurant", "Kerala Meals")
	order := gin.H{
		"customer_id":    guest.ID.String(),
		"service":        "Restaurant",
		"items":          []gin.H{{"item_id": meals, "quantity": 2}},
		"payment_method": "Card",
	}
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("kot-1"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "restaurant orders need a table or room")
	assert.Equal(t, "missing_location", api.decode(rec, nil).Kind)

	order["table_no"] = "T9"
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("kot-2"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed entity.Order
	api.decode(rec, &placed)

	rec = api.do(http.MethodGet, "/api/v1/orders/"+placed.ID.String()+"/kot", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "KOT - Restaurant")
	assert.Contains(t, rec.Body.String(), "Kerala Meals")

	rec = api.do(http.MethodPost, "/api/v1/printer/kot/"+placed.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var printed struct {
		Receipt string `json:"receipt"`
	}
	api.decode(rec, &printed)
	assert.Contains(t, printed.Receipt, "T9")

	rec = api.do(http.MethodGet, "/api/v1/printer/status", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/orders/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogAdministrationIsManagerOnly(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/staff", gin.H{
		"name": "Bar Counter", "email": "bar@resort.in", "password": "counter-pass", "role": "staff",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	managerToken := api.token
	api.token = api.login("bar@resort.in", "counter-pass")

	rec = api.do(http.MethodPut, "/api/v1/tax-rates/Bar", gin.H{"percent": 28}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/tax-rates", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	api.token = managerToken
	rec = api.do(http.MethodPut, "/api/v1/tax-rates/Bar", gin.H{"percent": 28}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rate entity.TaxRate
	api.decode(rec, &rate)
	assert.Equal(t, float64(28), rate.Percent)

	rec = api.do(http.MethodPut, "/api/v1/tax-rates/Casino", gin.H{"percent": 5}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/menu", gin.H{"service": "Spa", "name": "Foot Reflexology", "price": 1200}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item entity.MenuItem
	api.decode(rec, &item)

	rec = api.do(http.MethodPut, "/api/v1/menu/"+item.ID.String(),
		gin.H{"name": "Foot Reflexology", "price": 1400, "available": false}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	api.decode(rec, &item)
	assert.Equal(t, int64(1400), item.Price)
	assert.False(t, item.Available)
}

func TestOrderRequestsNeedExplicitServiceAndPayment(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/customers", gin.H{"name": "Divya", "phone": "9000000002", "room_no": "305"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var guest entity.Customer
	api.decode(rec, &guest)
	beer := api.menuID("Bar", "Draught Beer")

	order := gin.H{
		"customer_id":    guest.ID.String(),
		"items":          []gin.H{{"item_id": beer, "quantity": 1}},
		"payment_method": "PayLater",
	}
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("no-service"))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a missing service must not default to the first menu")

	order["service"] = "Bar"
	delete(order, "payment_method")
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("no-method"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	order["payment_method"] = "PayLater"
	order["items"] = []gin.H{{"item_id": beer, "quantity": 1000}}
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("too-many"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/carts/quote", gin.H{"items": []gin.H{{"item_id": beer, "quantity": 1}}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	order["items"] = []gin.H{{"item_id": beer, "quantity": 1}}
	rec = api.do(http.MethodPost, "/api/v1/orders", order, idem("tab"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tab entity.Order
	api.decode(rec, &tab)

	settlePath := "/api/v1/orders/" + tab.ID.String() + "/settle"
	rec = api.do(http.MethodPost, settlePath, gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "settling needs an explicit payment method")

	rec = api.do(http.MethodGet, "/api/v1/orders/"+tab.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stored entity.Order
	api.decode(rec, &stored)
	assert.Equal(t, enum.PaymentPayLater, stored.PaymentMethod)
	assert.True(t, stored.Pending())

	rec = api.do(http.MethodPost, settlePath, gin.H{"payment_method": "Cash"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/menu", gin.H{"name": "Nameless Service Item", "price": 100}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
