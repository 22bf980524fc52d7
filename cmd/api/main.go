package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
	domainRepo "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/cache"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/database"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/memory"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/messaging/kafka"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/handler"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/routes"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/email"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/logger"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/printer"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/utils"
)

// repositories is the storage backend chosen by APP_STORE
type repositories struct {
	users       domainRepo.UserRepository
	customers   domainRepo.CustomerRepository
	menu        domainRepo.MenuRepository
	taxRates    domainRepo.TaxRateRepository
	orders      domainRepo.OrderRepository
	invoices    domainRepo.InvoiceRepository
	sequences   domainRepo.BillSequenceRepository
	idempotency domainRepo.IdempotencyRepository
}

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := openStore(cfg, zlog)
	if err != nil {
		return err
	}

	if err := database.SeedDefaultData(ctx, database.SeedRepositories{
		Menu:     repos.menu,
		TaxRates: repos.taxRates,
		Users:    repos.users,
	}, cfg.Admin, zlog); err != nil {
		zlog.Warn("failed to seed default data", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Sequence.Backend == "redis" || cfg.Events.Driver == "redis" {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		zlog.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	}

	repos.sequences, err = sequenceBackend(cfg, rdb, repos.sequences)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, rdb, zlog)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zlog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer func() { _ = thermalPrinter.Close() }()

	header := entity.ResortHeader{
		Name:         cfg.Resort.Name,
		AddressLines: cfg.Resort.AddressLines,
		Phone:        cfg.Resort.Phone,
		GSTIN:        cfg.Resort.GSTIN,
	}
	width := cfg.Printer.CharWidth

	authService := service.NewAuthService(repos.users, jwtManager)
	customerService := service.NewCustomerService(repos.customers)
	catalogService := service.NewCatalogService(repos.menu, repos.taxRates)
	orderService := service.NewOrderService(repos.orders, repos.customers, repos.menu, repos.taxRates, zlog)
	checkoutService := service.NewCheckoutService(
		repos.customers,
		repos.orders,
		repos.invoices,
		service.NewBillSequencer(repos.sequences),
		service.DefaultInvoiceClasses(cfg.Billing.BarPrefix, cfg.Billing.GeneralPrefix),
		publisher,
		zlog,
	)
	invoiceService := service.NewInvoiceService(repos.invoices, repos.customers, emailService, header, width, zlog)
	printerService := service.NewPrinterService(thermalPrinter, invoiceService, orderService, cfg.Printer.Type, width, zlog)

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService, orderService, checkoutService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Order:    handler.NewOrderHandler(orderService, width),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.idempotency,
		Logger:          zlog,
	})

	go sweepIdempotencyKeys(ctx, repos.idempotency, time.Hour, zlog)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
			zap.String("store", cfg.App.Store),
			zap.String("sequence_backend", cfg.Sequence.Backend),
			zap.String("events_driver", cfg.Events.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects to postgres, or builds the in-memory store for demos and tests
func openStore(cfg *config.Config, zlog *zap.Logger) (*repositories, error) {
	switch cfg.App.Store {
	case "memory":
		zlog.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:       store.Users(),
			customers:   store.Customers(),
			menu:        store.Menu(),
			taxRates:    store.TaxRates(),
			orders:      store.Orders(),
			invoices:    store.Invoices(),
			sequences:   store.BillSequences(),
			idempotency: store.Idempotency(),
		}, nil
	case "postgres", "":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zlog)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db, zlog); err != nil {
			return nil, err
		}
		return &repositories{
			users:       repository.NewUserRepository(db),
			customers:   repository.NewCustomerRepository(db),
			menu:        repository.NewMenuRepository(db),
			taxRates:    repository.NewTaxRateRepository(db),
			orders:      repository.NewOrderRepository(db),
			invoices:    repository.NewInvoiceRepository(db),
			sequences:   repository.NewBillSequenceRepository(db),
			idempotency: repository.NewIdempotencyRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown APP_STORE %q (use postgres or memory)", cfg.App.Store)
	}
}

// sequenceBackend picks the bill counter store. stored is the counter of the
// store chosen by APP_STORE.
func sequenceBackend(cfg *config.Config, rdb *redis.Client, stored domainRepo.BillSequenceRepository) (domainRepo.BillSequenceRepository, error) {
	switch cfg.Sequence.Backend {
	case "redis":
		return cache.NewBillSequence(rdb), nil
	case "memory":
		if cfg.App.Store != "memory" {
			return nil, fmt.Errorf("SEQUENCE_BACKEND=memory needs APP_STORE=memory: in-memory counters restart at 1 and would reuse stored bill numbers")
		}
		return stored, nil
	case "postgres", "":
		return stored, nil
	default:
		return nil, fmt.Errorf("unknown SEQUENCE_BACKEND %q (use postgres, redis or memory)", cfg.Sequence.Backend)
	}
}

func newPublisher(cfg *config.Config, rdb *redis.Client, zlog *zap.Logger) (event.Publisher, error) {
	switch cfg.Events.Driver {
	case "redis":
		return cache.NewInvoicePublisher(rdb, cfg.Events.RedisChannel, zlog), nil
	case "kafka":
		producer, err := kafka.NewInvoiceProducer(cfg.Kafka, zlog)
		if err != nil {
			return nil, err
		}
		return producer, nil
	case "none", "":
		return event.NoopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown EVENTS_DRIVER %q (use none, redis or kafka)", cfg.Events.Driver)
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, every time.Duration, zlog *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := repo.DeleteExpired(ctx, now); err != nil {
				zlog.Warn("failed to delete expired idempotency keys", zap.Error(err))
			}
		}
	}
}
