package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/internal/domain/validation"
	"github.com/minimahotel/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed 10% sales tax. It is not configurable per
// transaction.
var TaxRate = decimal.NewFromFloat(0.10)

// CartLine is one product entry in a staff member's in-progress cart.
// Lines are unique per product; adding the same product again increments
// the quantity.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GuestSelection is the guest a cart will be charged to in guest-tab
// mode. Re-validated against active bookings at checkout time.
type GuestSelection struct {
	GuestID    uuid.UUID `json:"guest_id"`
	GuestName  string    `json:"guest_name"`
	BookingID  uuid.UUID `json:"booking_id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
}

// CartTotals holds the derived money amounts for a cart. Tax is rounded
// to two decimals; other fields keep full precision until persisted.
type CartTotals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	DiscountedSubtotal decimal.Decimal `json:"discounted_subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
}

// Rounded returns the totals with every amount at two decimal places,
// the form used for display and persistence.
func (t CartTotals) Rounded() CartTotals {
	return CartTotals{
		Subtotal:           t.Subtotal.Round(2),
		DiscountAmount:     t.DiscountAmount.Round(2),
		DiscountedSubtotal: t.DiscountedSubtotal.Round(2),
		Tax:                t.Tax.Round(2),
		Total:              t.Total.Round(2),
	}
}

// cart is the per-session aggregate. Each cart has exactly one writer
// (the owning staff session); the store lock only protects the map.
type cart struct {
	lines    []CartLine
	discount *entity.Discount
	guest    *GuestSelection
}

func (c *cart) findLine(productID uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// totals computes the cart totals per the pricing rules:
// subtotal -> discount -> 10% tax on the discounted subtotal.
func (c *cart) totals() CartTotals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	discountAmount := decimal.Zero
	if c.discount != nil {
		discountAmount = c.discount.AmountFor(subtotal)
	}

	discounted := subtotal.Sub(discountAmount)
	tax := discounted.Mul(TaxRate).Round(2)

	return CartTotals{
		Subtotal:           subtotal,
		DiscountAmount:     discountAmount,
		DiscountedSubtotal: discounted,
		Tax:                tax,
		Total:              discounted.Add(tax),
	}
}

// undiscountedTotals ignores any applied discount. Guest-tab charges
// always accrue at full price; discounts apply at final settlement only.
func (c *cart) undiscountedTotals() CartTotals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return CartTotals{
		Subtotal:           subtotal,
		DiscountedSubtotal: subtotal,
		Tax:                tax,
		Total:              subtotal.Add(tax),
	}
}

// CartView is the snapshot handed to handlers and to checkout
type CartView struct {
	Lines    []CartLine       `json:"lines"`
	Discount *entity.Discount `json:"discount,omitempty"`
	Guest    *GuestSelection  `json:"guest,omitempty"`
	Totals   CartTotals       `json:"totals"`
}

// CartService owns the in-memory carts, one per staff session
type CartService struct {
	mu          sync.Mutex
	carts       map[uuid.UUID]*cart
	productRepo repository.ProductRepository
	bookingRepo repository.BookingRepository
	maxQuantity int
}

// NewCartService creates a new cart service
func NewCartService(productRepo repository.ProductRepository, bookingRepo repository.BookingRepository, maxQuantity int) *CartService {
	if maxQuantity <= 0 {
		maxQuantity = validation.DefaultMaxQuantity
	}
	return &CartService{
		carts:       make(map[uuid.UUID]*cart),
		productRepo: productRepo,
		bookingRepo: bookingRepo,
		maxQuantity: maxQuantity,
	}
}

func (s *CartService) cartFor(staffID uuid.UUID) *cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[staffID]
	if !ok {
		c = &cart{}
		s.carts[staffID] = c
	}
	return c
}

// View returns a snapshot of the staff member's cart with display-ready
// totals
func (s *CartService) View(staffID uuid.UUID) *CartView {
	c := s.cartFor(staffID)
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return &CartView{
		Lines:    lines,
		Discount: c.discount,
		Guest:    c.guest,
		Totals:   c.totals().Rounded(),
	}
}

// AddLine adds one unit of a product to the cart. Unavailable products
// are rejected. Adding a product already in the cart increments its
// quantity; if the increment would exceed the maximum, the cart is left
// unchanged.
func (s *CartService) AddLine(ctx context.Context, staffID, productID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if res := validation.ProductAvailability(product); !res.OK {
		return resultError(res)
	}

	c := s.cartFor(staffID)
	if i := c.findLine(productID); i >= 0 {
		if res := validation.Quantity(c.lines[i].Quantity+1, s.maxQuantity); !res.OK {
			return resultError(res)
		}
		c.lines[i].Quantity++
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
	})
	return nil
}

// ChangeQuantity adjusts a line's quantity by delta. A resulting
// quantity of zero or less removes the line; that path bypasses the
// minimum-quantity rule by design of the rules themselves.
func (s *CartService) ChangeQuantity(staffID, productID uuid.UUID, delta int) error {
	c := s.cartFor(staffID)
	i := c.findLine(productID)
	if i < 0 {
		return apperror.NewNotFoundError("Cart item")
	}

	next := c.lines[i].Quantity + delta
	if next <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	if res := validation.Quantity(next, s.maxQuantity); !res.OK {
		return resultError(res)
	}
	c.lines[i].Quantity = next
	return nil
}

// RemoveLine removes a product from the cart unconditionally
func (s *CartService) RemoveLine(staffID, productID uuid.UUID) {
	c := s.cartFor(staffID)
	if i := c.findLine(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the cart and releases any applied discount
func (s *CartService) Clear(staffID uuid.UUID) {
	c := s.cartFor(staffID)
	c.lines = nil
	c.discount = nil
}

// SelectGuest attaches an active guest to the cart for guest-tab
// checkout. Selecting a guest removes any applied discount: discounts
// apply at settlement, not at charge-accrual time.
func (s *CartService) SelectGuest(ctx context.Context, staffID, guestID uuid.UUID) (*GuestSelection, error) {
	booking, err := s.bookingRepo.GetActiveByGuestID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Active booking for guest")
	}
	if res := validation.GuestAssignment(booking); !res.OK {
		return nil, resultError(res)
	}

	sel := &GuestSelection{
		GuestID:    booking.GuestID,
		GuestName:  booking.GuestName,
		BookingID:  booking.ID,
		RoomNumber: booking.RoomNumber,
		RoomType:   booking.RoomType,
	}

	c := s.cartFor(staffID)
	c.guest = sel
	c.discount = nil
	return sel, nil
}

// ClearGuest drops the cart's guest selection
func (s *CartService) ClearGuest(staffID uuid.UUID) {
	s.cartFor(staffID).guest = nil
}

// Totals recomputes the cart totals. Calling it repeatedly without
// mutating the cart yields identical values.
func (s *CartService) Totals(staffID uuid.UUID) CartTotals {
	return s.cartFor(staffID).totals()
}

// applyDiscount sets the cart's single active discount, replacing any
// prior one. Applicability has already been checked by the caller.
func (s *CartService) applyDiscount(staffID uuid.UUID, d *entity.Discount) {
	s.cartFor(staffID).discount = d
}

// RemoveDiscount releases the applied discount unconditionally
func (s *CartService) RemoveDiscount(staffID uuid.UUID) {
	s.cartFor(staffID).discount = nil
}

// resultError translates a failed validation result into an AppError
func resultError(res validation.Result) error {
	switch res.Kind {
	case validation.KindNotFound:
		return apperror.NewAppError(http.StatusNotFound, res.Message)
	case validation.KindUnauthorized:
		return apperror.ErrInvalidManagerCode
	default:
		return apperror.NewFieldError(res.Field, res.Message)
	}
}
