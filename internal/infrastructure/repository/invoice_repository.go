package repository

import (
	"context"
	"errors"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	domainRepo "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *invoiceRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.Invoice, error) {
	return r.first(ctx, "bill_no = ?", billNo)
}

func (r *invoiceRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Preload("Lines").First(&invoice, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("issued_at ASC, bill_no ASC").
		Find(&invoices).Error
	return invoices, err
}

// List returns invoices using keyset pagination.
// Fetches limit+1 rows to detect if there are more results
func (r *invoiceRepository) List(ctx context.Context, params *pagination.CursorParams) ([]entity.Invoice, error) {
	params.Validate()
	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	var invoices []entity.Invoice
	err = r.db.WithContext(ctx).
		Preload("Lines").
		Scopes(KeysetScope(cursor, "issued_at", params.Limit)).
		Find(&invoices).Error
	return invoices, err
}
