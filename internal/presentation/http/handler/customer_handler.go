package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/request"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/pagination"
)

// CustomerHandler handles guest registration, visits and checkout
type CustomerHandler struct {
	customerService *service.CustomerService
	orderService    *service.OrderService
	checkoutService *service.CheckoutService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	customerService *service.CustomerService,
	orderService *service.OrderService,
	checkoutService *service.CheckoutService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// List handles listing guests with page-based pagination
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Customers retrieved successfully", result)
}

// Create registers a guest and checks them in
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		RoomNo: req.RoomNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer checked in", customer)
}

// Get handles getting a guest by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// CheckIn starts a new visit for a checked-out guest
func (h *CustomerHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	customer, err := h.customerService.CheckIn(c.Request.Context(), id, req.RoomNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer checked in", customer)
}

// Checkout issues the visit's invoices. Outstanding pay-later orders block
// it with a 409 that lists the visit's orders.
func (h *CustomerHandler) Checkout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.State == enum.CheckoutBlocked {
		response.Failure(c, http.StatusConflict,
			fmt.Sprintf("Checkout blocked: %d pay-later order(s) must be settled first", result.PendingCount),
			result)
		return
	}

	response.OK(c, "Checkout completed", result)
}

// Orders lists the orders of the guest's current visit
func (h *CustomerHandler) Orders(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	orders, err := h.orderService.ListVisitOrders(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}
