package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/application/service"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/request"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/presentation/http/dto/response"
)

// CatalogHandler handles menus and tax rates
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListMenu lists one service's menu. Managers may pass ?all=true to include
// unavailable items.
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	svc, ok := pathService(c, "service")
	if !ok {
		return
	}
	includeUnavailable := c.Query("all") == "true" && GetUserRole(c) == entity.RoleManager

	items, err := h.catalogService.ListMenu(c.Request.Context(), svc, includeUnavailable)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu retrieved successfully", items)
}

func menuItemInput(req *request.MenuItemRequest) *service.MenuItemInput {
	input := &service.MenuItemInput{
		Name:      req.Name,
		Price:     req.Price,
		ShotPrice: req.ShotPrice,
		Available: req.Available,
	}
	if req.Service != nil {
		input.Service = *req.Service
	}
	return input
}

// CreateMenuItem adds an item to a service's menu
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Service == nil {
		response.BadRequest(c, "Invalid request body: service is required")
		return
	}

	item, err := h.catalogService.CreateMenuItem(c.Request.Context(), menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created", item)
}

// UpdateMenuItem changes price, shot price or availability
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.catalogService.UpdateMenuItem(c.Request.Context(), id, menuItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated", item)
}

// ListTaxRates lists the tax percent of every service
func (h *CatalogHandler) ListTaxRates(c *gin.Context) {
	rates, err := h.catalogService.ListTaxRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rates retrieved successfully", rates)
}

// SetTaxRate sets one service's tax percent
func (h *CatalogHandler) SetTaxRate(c *gin.Context) {
	svc, ok := pathService(c, "service")
	if !ok {
		return
	}

	var req request.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rate, err := h.catalogService.SetTaxRate(c.Request.Context(), svc, *req.Percent)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rate updated", rate)
}
