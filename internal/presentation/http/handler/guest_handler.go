package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/minimahotel/pos-api/internal/application/service"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/response"
)

// GuestHandler handles guest directory HTTP requests
type GuestHandler struct {
	guestService *service.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// ListActive returns the guests currently available for room charging
func (h *GuestHandler) ListActive(c *gin.Context) {
	guests, err := h.guestService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active guests retrieved successfully", guests)
}
