package service

import (
	"context"
	"fmt"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/printer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrinterService sends invoices and kitchen tickets to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	invoices    *InvoiceService
	orders      *OrderService
	printerType string
	width       int
	logger      *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	invoices *InvoiceService,
	orders *OrderService,
	printerType string,
	width int,
	logger *zap.Logger,
) *PrinterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		invoices:    invoices,
		orders:      orders,
		printerType: printerType,
		width:       width,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintInvoice prints an issued invoice. The text is returned either way so
// callers can show it when no printer is attached.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	invoice, doc, err := s.invoices.Document(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if err := s.printer.Print(ctx, doc.Bytes()); err != nil {
		s.logger.Error("printer error", zap.String("bill_no", invoice.BillNo), zap.Error(err))
		return doc.String(), fmt.Errorf("failed to print invoice: %w", err)
	}
	return doc.String(), nil
}

// PrintKitchenTicket prints the KOT of a stored order.
func (s *PrinterService) PrintKitchenTicket(ctx context.Context, orderID uuid.UUID) (string, error) {
	ticket, err := s.orders.KitchenTicket(ctx, orderID)
	if err != nil {
		return "", err
	}
	doc, err := KitchenTicketDocument(ticket, s.width)
	if err != nil {
		return "", err
	}
	if err := s.printer.Print(ctx, doc.Bytes()); err != nil {
		s.logger.Error("printer error", zap.String("order_id", orderID.String()), zap.Error(err))
		return doc.String(), fmt.Errorf("failed to print kitchen ticket: %w", err)
	}
	return doc.String(), nil
}
