package handlers

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/table"
	"adminsuite/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the inventory table.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.InventoryListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.service.List(c.Request.Context(), req.Category, req.ToQuery(
		table.Predicate{Field: inventory.FieldStockStatus.Key, Value: req.StockStatus},
	))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPage(page, dto.FromItem))
}
