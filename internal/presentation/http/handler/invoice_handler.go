package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
)

// InvoiceHandler serves issued invoices
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List returns invoices newest first, paged by ?cursor and ?limit
func (h *InvoiceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	params := &pagination.CursorParams{Cursor: c.Query("cursor"), Limit: limit}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, "Invoices retrieved successfully", result)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Text returns the printable invoice as plain text
func (h *InvoiceHandler) Text(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	text, err := h.invoiceService.InvoiceText(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Text(c, text)
}

// Email sends the invoice text to the guest's email address
func (h *InvoiceHandler) Email(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.EmailInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice emailed", gin.H{"bill_no": invoice.BillNo})
}
