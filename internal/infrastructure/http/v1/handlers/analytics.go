package handlers

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/analytics"
	"adminsuite/internal/infrastructure/http/v1/dto"
)

// AnalyticsHandler serves dashboard and analytics aggregates.
type AnalyticsHandler struct {
	*BaseHandler
	service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(base *BaseHandler, service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, service: service}
}

func (h *AnalyticsHandler) period(c *gin.Context) (analytics.Period, bool) {
	p, ok := analytics.ParsePeriod(c.Query("period"))
	if !ok {
		h.Error(c, apperror.NewInvalidInput("period", c.Query("period")).
			WithDetail("allowed", []analytics.Period{analytics.Period7d, analytics.Period30d, analytics.Period90d, analytics.Period1y}))
	}
	return p, ok
}

// Dashboard handles GET /analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	d, err := h.service.Dashboard(c.Request.Context(), period)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Users handles GET /analytics/users
func (h *AnalyticsHandler) Users(c *gin.Context) {
	period, ok := h.period(c)
	if !ok {
		return
	}

	report, err := h.service.UserAnalytics(c.Request.Context(), period, analytics.ParseGranularity(c.Query("groupBy")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Sales handles GET /analytics/sales
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	var req dto.SalesAnalyticsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	start, err := dto.ParseDate("startDate", req.StartDate, false)
	if err != nil {
		h.Error(c, err)
		return
	}
	end, err := dto.ParseDate("endDate", req.EndDate, true)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Either bound may be omitted; the service fills it.
	var r types.DateRange
	if start != nil {
		r.From = *start
	}
	if end != nil {
		r.To = *end
	}

	report, err := h.service.SalesAnalytics(c.Request.Context(), r, req.Channel)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Inventory handles GET /analytics/inventory
func (h *AnalyticsHandler) Inventory(c *gin.Context) {
	report, err := h.service.InventorySummary(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// RegisterRoutes registers analytics routes.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/users", h.Users)
	rg.GET("/sales", h.Sales)
	rg.GET("/inventory", h.Inventory)
}
