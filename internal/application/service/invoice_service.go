package service

import (
	"context"
	"net/http"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/printer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceMailer delivers rendered invoices to guests
type InvoiceMailer interface {
	Configured() bool
	SendInvoice(toEmail, guestName, billNo, resortName, invoiceText string) error
}

// InvoiceService reads issued invoices and renders them for print and mail
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	mailer       InvoiceMailer
	header       entity.ResortHeader
	width        int
	logger       *zap.Logger
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	mailer InvoiceMailer,
	header entity.ResortHeader,
	width int,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
		header:       header,
		width:        width,
		logger:       logger,
	}
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices pages through invoices newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	params.Validate()
	if _, err := params.DecodeCursor(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	invoices, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewCursorPaginatedResult(invoices, params.Limit, func(inv entity.Invoice) (string, time.Time) {
		return inv.ID.String(), inv.IssuedAt
	}), nil
}

// Document loads an invoice with its guest and lays it out
func (s *InvoiceService) Document(ctx context.Context, id uuid.UUID) (*entity.Invoice, *printer.Document, error) {
	invoice, _, doc, err := s.load(ctx, id)
	return invoice, doc, err
}

func (s *InvoiceService) load(ctx context.Context, id uuid.UUID) (*entity.Invoice, *entity.Customer, *printer.Document, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := InvoiceDocument(invoice, customer, s.header, s.width)
	if err != nil {
		return nil, nil, nil, err
	}
	return invoice, customer, doc, nil
}

// InvoiceText returns the plain-text bill
func (s *InvoiceService) InvoiceText(ctx context.Context, id uuid.UUID) (string, error) {
	_, doc, err := s.Document(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// EmailInvoice sends the plain-text bill to the guest's email address
func (s *InvoiceService) EmailInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if s.mailer == nil || !s.mailer.Configured() {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, apperror.KindInternal, "Email is not configured")
	}
	invoice, customer, doc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.Email == nil || *customer.Email == "" {
		return nil, apperror.NewBadRequestError("Guest has no email address")
	}

	if err := s.mailer.SendInvoice(*customer.Email, customer.Name, invoice.BillNo, s.header.Name, doc.String()); err != nil {
		s.logger.Error("failed to email invoice", zap.String("bill_no", invoice.BillNo), zap.Error(err))
		return nil, apperror.NewAppError(http.StatusBadGateway, apperror.KindInternal, "Failed to send invoice email")
	}
	s.logger.Info("invoice emailed", zap.String("bill_no", invoice.BillNo))
	return invoice, nil
}
