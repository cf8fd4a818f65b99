package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nischayn/vyapari-api/internal/application/service"
	"github.com/nischayn/vyapari-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// periodFromQuery reads from/to query parameters, defaulting to the last 30 days
func periodFromQuery(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if f := c.Query("from"); f != "" {
		t, err := time.Parse(time.RFC3339, f)
		if err != nil {
			response.BadRequest(c, "Invalid from date")
			return from, to, false
		}
		from = t
	}
	if tq := c.Query("to"); tq != "" {
		t, err := time.Parse(time.RFC3339, tq)
		if err != nil {
			response.BadRequest(c, "Invalid to date")
			return from, to, false
		}
		to = t
	}
	return from, to, true
}

// Sales handles the sales summary report
func (h *ReportHandler) Sales(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}

// GST handles the GST summary report
func (h *ReportHandler) GST(c *gin.Context) {
	from, to, ok := periodFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetGSTSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "GST summary retrieved successfully", summary)
}

// LowStock handles the low stock report
func (h *ReportHandler) LowStock(c *gin.Context) {
	products, err := h.reportService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}
