package request

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// ChangeQuantityRequest adjusts a cart line quantity by a delta.
// A negative delta decrements; reaching zero removes the line.
type ChangeQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Delta     int    `json:"delta" binding:"required"`
}

// SelectGuestRequest attaches a checked-in guest to the cart
type SelectGuestRequest struct {
	GuestID string `json:"guest_id" binding:"required,uuid"`
}

// ApplyDiscountRequest applies a discount to the cart, either by code
// or by discount id
type ApplyDiscountRequest struct {
	Code       string `json:"code"`
	DiscountID string `json:"discount_id"`
}
