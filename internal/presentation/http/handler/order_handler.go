package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/request"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
)

// OrderHandler handles carts, orders and kitchen tickets
type OrderHandler struct {
	orderService *service.OrderService
	ticketWidth  int
}

// NewOrderHandler creates a new order handler. ticketWidth is the printer
// character width used for KOT text.
func NewOrderHandler(orderService *service.OrderService, ticketWidth int) *OrderHandler {
	return &OrderHandler{orderService: orderService, ticketWidth: ticketWidth}
}

func cartLines(items []request.CartLineRequest) []service.CartLine {
	lines := make([]service.CartLine, len(items))
	for i, item := range items {
		lines[i] = service.CartLine{ItemID: item.ItemID, Quantity: item.Quantity}
	}
	return lines
}

// Quote prices a cart against the live catalog without persisting it
func (h *OrderHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quote, err := h.orderService.Quote(c.Request.Context(), *req.Service, cartLines(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart priced", quote)
}

// Create places a cart as an order for a checked-in guest
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := service.PlaceOrderInput{
		CustomerID:    uuid.MustParse(req.CustomerID),
		Service:       *req.Service,
		Items:         cartLines(req.Items),
		PaymentMethod: *req.PaymentMethod,
		TableNo:       req.TableNo,
		RoomNo:        req.RoomNo,
	}
	if userID := GetUserID(c); userID != nil {
		input.CreatedBy = *userID
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed", order)
}

// Get handles getting an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Settle records payment for a pay-later order
func (h *OrderHandler) Settle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.SettleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.orderService.Settle(c.Request.Context(), id, *req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order settled", order)
}

// KitchenTicket returns the order's KOT as plain text
func (h *OrderHandler) KitchenTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.orderService.KitchenTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	text, err := service.RenderKitchenTicket(ticket, h.ticketWidth)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Text(c, text)
}
