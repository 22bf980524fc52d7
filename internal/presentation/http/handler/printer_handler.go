package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintInvoice prints an issued invoice.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	h.print(c, "Invoice sent to printer", h.printerService.PrintInvoice)
}

// PrintKitchenTicket prints an order's KOT.
func (h *PrinterHandler) PrintKitchenTicket(c *gin.Context) {
	h.print(c, "Kitchen ticket sent to printer", h.printerService.PrintKitchenTicket)
}

func (h *PrinterHandler) print(c *gin.Context, message string, printFn func(ctx context.Context, id uuid.UUID) (string, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	text, err := printFn(c.Request.Context(), id)
	if err != nil && text == "" {
		response.Error(c, err)
		return
	}
	if err != nil {
		// The document rendered but the device failed; return the text so the
		// desk can still show it.
		response.OK(c, "Printed with errors (printer may be disabled)", gin.H{
			"receipt": text,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, message, gin.H{"receipt": text})
}
