package memory

import (
	"context"
	"sort"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
	"github.com/google/uuid"
)

type invoiceRepository struct{ s *Store }

// Invoices returns the store's invoice repository
func (s *Store) Invoices() repository.InvoiceRepository { return &invoiceRepository{s} }

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range invoice.Lines {
		if invoice.Lines[i].ID == uuid.Nil {
			invoice.Lines[i].ID = uuid.New()
		}
		invoice.Lines[i].InvoiceID = invoice.ID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.billNos[invoice.BillNo]; dup {
		return apperror.NewConflictError("bill number " + invoice.BillNo + " already issued")
	}
	r.s.invoices[invoice.ID] = copyInvoice(*invoice)
	r.s.billNos[invoice.BillNo] = invoice.ID
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv = copyInvoice(inv)
	return &inv, nil
}

func (r *invoiceRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	id, ok := r.s.billNos[billNo]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	all := r.sorted(func(inv entity.Invoice) bool { return inv.CustomerID == customerID })
	// oldest first
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.CursorParams) ([]entity.Invoice, error) {
	params.Validate()
	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	all := r.sorted(func(inv entity.Invoice) bool {
		if cursor == nil {
			return true
		}
		if inv.IssuedAt.Equal(cursor.At) {
			return inv.ID.String() < cursor.ID
		}
		return inv.IssuedAt.Before(cursor.At)
	})
	if len(all) > params.Limit+1 {
		all = all[:params.Limit+1]
	}
	return all, nil
}

// sorted returns matching invoices newest first by (IssuedAt, ID)
func (r *invoiceRepository) sorted(keep func(entity.Invoice) bool) []entity.Invoice {
	r.s.mu.RLock()
	out := make([]entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		if keep(inv) {
			out = append(out, copyInvoice(inv))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].IssuedAt.After(out[j].IssuedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}
