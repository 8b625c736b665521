package notification

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

// RegisterDevice - POST /devices
func (h *Handler) RegisterDevice(c *gin.Context) {
	orgID := c.GetString("org_id")
	if orgID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "organisation context missing"})
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	dt := h.Service.RegisterDevice(orgID, req)
	c.JSON(http.StatusCreated, dt)
}

// UnregisterDevice - DELETE /devices/:token
func (h *Handler) UnregisterDevice(c *gin.Context) {
	orgID := c.GetString("org_id")
	if orgID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "organisation context missing"})
		return
	}

	token := c.Param("token")
	if !h.Service.UnregisterDevice(orgID, token) {
		c.JSON(http.StatusNotFound, gin.H{"error": "device token not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}
