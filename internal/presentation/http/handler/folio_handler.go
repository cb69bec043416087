package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/application/service"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/request"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/response"
)

// FolioHandler handles guest folio HTTP requests
type FolioHandler struct {
	folioService *service.FolioService
}

// NewFolioHandler creates a new folio handler
func NewFolioHandler(folioService *service.FolioService) *FolioHandler {
	return &FolioHandler{folioService: folioService}
}

// Get returns the guest's folio with charges grouped by status
func (h *FolioHandler) Get(c *gin.Context) {
	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	folio, err := h.folioService.Load(c.Request.Context(), guestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Folio retrieved successfully", folio)
}

// Toggle toggles one pending charge in the staff member's selection
func (h *FolioHandler) Toggle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	var req request.FolioToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		response.BadRequest(c, "Invalid transaction id")
		return
	}

	selected, err := h.folioService.Toggle(c.Request.Context(), *userID, guestID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Selection updated", gin.H{"selected": selected})
}

// ToggleAll selects every pending charge, or clears the selection when
// everything is already selected
func (h *FolioHandler) ToggleAll(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	selected, err := h.folioService.ToggleAll(c.Request.Context(), *userID, guestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Selection updated", gin.H{"selected": selected})
}

// PaySelected settles the selected pending charges
func (h *FolioHandler) PaySelected(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	guestID, err := uuid.Parse(c.Param("guestId"))
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	var req request.FolioPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	result, err := h.folioService.PaySelected(c.Request.Context(), *userID, guestID, method)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.FailedID != nil {
		// Partial success: some charges settled before one failed.
		response.Success(c, 207, "Some payments could not be processed", result)
		return
	}

	response.OK(c, "Payments processed successfully", result)
}
