package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"adminsuite/internal/domain/reports"
	"adminsuite/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

func (h *ReportsHandler) request(c *gin.Context) (reports.ExportRequest, bool) {
	var req dto.ExportRequest
	if !h.BindQuery(c, &req) {
		return reports.ExportRequest{}, false
	}
	out, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return reports.ExportRequest{}, false
	}
	return out, true
}

// Export handles GET /reports/export. The body is sent as an attachment.
func (h *ReportsHandler) Export(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	res, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("X-Record-Count", strconv.Itoa(res.Count))
	h.Attachment(c, res.Filename, res.ContentType, res.Body)
}

// Preview handles GET /reports/export/summary
func (h *ReportsHandler) Preview(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	p, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Summary handles GET /reports/summary
func (h *ReportsHandler) Summary(c *gin.Context) {
	sum, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sum)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.GET("/export/summary", h.Preview)
	rg.GET("/summary", h.Summary)
}
