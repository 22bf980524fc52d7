package repository

import (
	"context"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository stores issued invoices. There is no update or delete.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByBillNo(ctx context.Context, billNo string) (*entity.Invoice, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error)
	// List returns invoices newest first, fetching up to params.Limit+1 rows
	List(ctx context.Context, params *pagination.CursorParams) ([]entity.Invoice, error)
}
