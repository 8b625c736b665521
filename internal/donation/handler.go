package donation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ListByRequest - GET /requests/:id/donations
func (h *Handler) ListByRequest(c *gin.Context) {
	requestID := c.Param("id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	donations, err := h.Service.ListByRequest(c.Request.Context(), requestID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch donations: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, donations)
}
