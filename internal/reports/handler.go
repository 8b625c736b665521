package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/food-donation-backend/internal/request"
)

type Handler struct {
	Service  request.Service
	Exporter Exporter
}

func NewHandler(svc request.Service, exporter Exporter) *Handler {
	return &Handler{Service: svc, Exporter: exporter}
}

// GET /requests/export?format=excel|csv|pdf
func (h *Handler) ExportRequests(c *gin.Context) {
	orgID := c.GetString("org_id")
	if orgID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "organisation context missing"})
		return
	}

	format := c.DefaultQuery("format", FormatExcel)

	requests, err := h.Service.ListRequests(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load requests: " + err.Error()})
		return
	}

	data, filename, contentType, err := h.Exporter.Export(format, requests)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// GET /requests/:id/summary
func (h *Handler) RequestSummary(c *gin.Context) {
	orgID := c.GetString("org_id")
	if orgID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "organisation context missing"})
		return
	}

	r, err := h.Service.GetRequest(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	data, filename, contentType, err := h.Exporter.RequestSummaryPDF(r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render summary: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
