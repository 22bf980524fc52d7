package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	domainRepo "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/handler"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/middleware"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Catalog  *handler.CatalogHandler
	Order    *handler.OrderHandler
	Invoice  *handler.InvoiceHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes. Background work
// started by the middleware stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(newRateLimiter(ctx, deps.Cfg.RateLimit).Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

// newRateLimiter converts "Requests per Duration seconds" into a token bucket
func newRateLimiter(ctx context.Context, cfg config.RateLimitConfig) *middleware.UserRateLimiter {
	rlc := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlc.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlc.BurstSize = cfg.Requests
	}
	rlc.CleanupInterval = 5 * time.Minute
	rlc.EntryTTL = 10 * time.Minute
	return middleware.NewUserRateLimiter(ctx, rlc)
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Logger: deps.Logger}
	managerOnly := middleware.RequireRole(entity.RoleManager)

	rg.GET("/profile", h.Auth.Profile)
	rg.POST("/staff", managerOnly, h.Auth.CreateStaff)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", middleware.Idempotency(idem), h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("/:id/checkin", h.Customer.CheckIn)
		customers.POST("/:id/checkout", middleware.IdempotencyRequired(idem), h.Customer.Checkout)
		customers.GET("/:id/orders", h.Customer.Orders)
	}

	rg.GET("/menu/:service", h.Catalog.ListMenu)
	rg.POST("/menu", managerOnly, h.Catalog.CreateMenuItem)
	rg.PUT("/menu/:id", managerOnly, h.Catalog.UpdateMenuItem)

	rg.GET("/tax-rates", h.Catalog.ListTaxRates)
	rg.PUT("/tax-rates/:service", managerOnly, h.Catalog.SetTaxRate)

	rg.POST("/carts/quote", h.Order.Quote)

	orders := rg.Group("/orders")
	{
		orders.POST("", middleware.IdempotencyRequired(idem), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/settle", middleware.Idempotency(idem), h.Order.Settle)
		orders.GET("/:id/kot", h.Order.KitchenTicket)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/text", h.Invoice.Text)
		invoices.POST("/:id/email", h.Invoice.Email)
	}

	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/invoice/:id", h.Printer.PrintInvoice)
		printer.POST("/kot/:id", h.Printer.PrintKitchenTicket)
	}
}
