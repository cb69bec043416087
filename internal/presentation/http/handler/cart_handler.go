package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/application/service"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/request"
	"github.com/minimahotel/pos-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests. Each staff session
// operates on its own server-side cart.
type CartHandler struct {
	cartService     *service.CartService
	discountService *service.DiscountService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, discountService *service.DiscountService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		discountService: discountService,
	}
}

// View returns the current cart with totals
func (h *CartHandler) View(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Cart retrieved successfully", h.cartService.View(*userID))
}

// AddItem adds a product to the cart or increments its quantity
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.cartService.AddLine(c.Request.Context(), *userID, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", h.cartService.View(*userID))
}

// ChangeQuantity adjusts a cart line quantity by a delta
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.cartService.ChangeQuantity(*userID, productID, req.Delta); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", h.cartService.View(*userID))
}

// RemoveItem removes a cart line entirely
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	h.cartService.RemoveLine(*userID, productID)
	response.OK(c, "Item removed from cart", h.cartService.View(*userID))
}

// Clear empties the cart, including any applied discount
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.cartService.Clear(*userID)
	response.OK(c, "Cart cleared", h.cartService.View(*userID))
}

// SelectGuest attaches a checked-in guest to the cart for room charging
func (h *CartHandler) SelectGuest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SelectGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return
	}

	selection, err := h.cartService.SelectGuest(c.Request.Context(), *userID, guestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest selected", selection)
}

// ClearGuest detaches the selected guest, returning the cart to walk-in
// mode
func (h *CartHandler) ClearGuest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.cartService.ClearGuest(*userID)
	response.OK(c, "Guest cleared", h.cartService.View(*userID))
}

// ApplyDiscount applies a discount by code or by id
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Code == "" && req.DiscountID == "" {
		response.BadRequest(c, "A discount code or discount id is required")
		return
	}

	if req.Code != "" {
		discount, err := h.discountService.ApplyCode(c.Request.Context(), *userID, req.Code)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Discount applied: "+discount.Code, h.cartService.View(*userID))
		return
	}

	discountID, err := uuid.Parse(req.DiscountID)
	if err != nil {
		response.BadRequest(c, "Invalid discount id")
		return
	}

	discount, err := h.discountService.ApplySelection(c.Request.Context(), *userID, discountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied: "+discount.Code, h.cartService.View(*userID))
}

// RemoveDiscount removes the applied discount from the cart
func (h *CartHandler) RemoveDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.discountService.Remove(*userID)
	response.OK(c, "Discount removed", h.cartService.View(*userID))
}

// ListDiscounts returns the active discounts staff can offer
func (h *CartHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.discountService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discounts retrieved successfully", discounts)
}
