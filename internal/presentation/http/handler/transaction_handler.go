package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/application/service"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/request"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/response"
	"github.com/minimahotel/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles checkout and transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Checkout settles the current cart immediately (walk-in sale)
func (h *TransactionHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	var cashAmount *decimal.Decimal
	if req.CashAmount != nil {
		amount, err := decimal.NewFromString(*req.CashAmount)
		if err != nil {
			response.BadRequest(c, "Invalid cash amount")
			return
		}
		cashAmount = &amount
	}

	receipt, err := h.transactionService.CheckoutWalkIn(c.Request.Context(), *userID, method, cashAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction completed successfully", receipt)
}

// CheckoutGuestTab charges the current cart to the selected guest's room
func (h *TransactionHandler) CheckoutGuestTab(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receipt, err := h.transactionService.CheckoutGuestTab(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Charged to room successfully", receipt)
}

// List handles listing transactions with filters
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.TransactionStatus(statusStr)
		if status.Valid() {
			params.Status = &status
		}
	}

	if guestIDStr := c.Query("guest_id"); guestIDStr != "" {
		if guestID, err := uuid.Parse(guestIDStr); err == nil {
			params.GuestID = &guestID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.transactionService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get returns one transaction by id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction id")
		return
	}

	transaction, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// GetByNumber returns one transaction by its transaction number
func (h *TransactionHandler) GetByNumber(c *gin.Context) {
	transaction, err := h.transactionService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// Settle settles a pending room-charge transaction
func (h *TransactionHandler) Settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction id")
		return
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	transaction, err := h.transactionService.Settle(c.Request.Context(), id, method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction settled successfully", transaction)
}

// Void voids a transaction. Managers void directly; other staff must
// supply the manager code.
func (h *TransactionHandler) Void(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction id")
		return
	}

	var req request.VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transaction, err := h.transactionService.Void(c.Request.Context(), id, service.VoidActor{
		Role:        GetUserRole(c),
		ManagerCode: req.ManagerCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction voided successfully", transaction)
}
