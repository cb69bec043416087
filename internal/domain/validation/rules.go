// Package validation holds the pure business-rule predicates for the POS
// core. Every rule returns a Result instead of an error: rule violations
// are expected outcomes the caller branches on, not exceptional states.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Default bounds. Callers normally pass the configured values; these are
// the fallbacks matching the shipped configuration.
const (
	DefaultMaxQuantity = 99
	MinRefundReasonLen = 10
	MaxRefundReasonLen = 500
)

var (
	DefaultMaxCartTotal    = decimal.NewFromInt(50000)
	DefaultMaxRefundAmount = decimal.NewFromInt(10000)

	discountCodeRe      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	transactionNumberRe = regexp.MustCompile(`^TX\d{14}\d{3}$`)
)

// Kind classifies why a rule failed.
type Kind string

const (
	KindInvalid      Kind = "invalid"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
)

// Result is the outcome of one rule: either OK, or a failure carrying a
// kind, the offending field and a human-readable message.
type Result struct {
	OK      bool
	Kind    Kind
	Field   string
	Message string
}

// Valid returns a passing result
func Valid() Result {
	return Result{OK: true}
}

// Invalid returns a failing result for a user-correctable violation
func Invalid(field, message string) Result {
	return Result{Kind: KindInvalid, Field: field, Message: message}
}

// NotFound returns a failing result for a stale or unknown reference
func NotFound(field, message string) Result {
	return Result{Kind: KindNotFound, Field: field, Message: message}
}

// Quantity checks a cart line quantity against [1, max]
func Quantity(q, max int) Result {
	if max <= 0 {
		max = DefaultMaxQuantity
	}
	if q < 1 {
		return Invalid("quantity", "Quantity must be at least 1")
	}
	if q > max {
		return Invalid("quantity", fmt.Sprintf("Maximum quantity is %d", max))
	}
	return Valid()
}

// CartTotal checks a grand total against (0, max]
func CartTotal(total, max decimal.Decimal) Result {
	if max.IsZero() {
		max = DefaultMaxCartTotal
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return Invalid("total", "Cart total must be greater than 0")
	}
	if total.GreaterThan(max) {
		return Invalid("total", fmt.Sprintf("Transaction total cannot exceed ₱%s", max.StringFixed(2)))
	}
	return Valid()
}

// DiscountCode checks the format of a user-entered discount code
func DiscountCode(code string) Result {
	code = strings.TrimSpace(code)
	if code == "" {
		return Invalid("discountCode", "Discount code is required")
	}
	if len(code) < 3 {
		return Invalid("discountCode", "Discount code must be at least 3 characters")
	}
	if !discountCodeRe.MatchString(code) {
		return Invalid("discountCode", "Discount code can only contain letters and numbers")
	}
	return Valid()
}

// DiscountApplicability checks a discount against the current subtotal
func DiscountApplicability(subtotal decimal.Decimal, d *entity.Discount) Result {
	if d.MinSubtotal != nil && subtotal.LessThan(*d.MinSubtotal) {
		return Invalid("discount", fmt.Sprintf("Minimum purchase of ₱%s required for this discount", d.MinSubtotal.StringFixed(2)))
	}
	if d.Kind == enum.DiscountKindPercentage &&
		(d.Value.LessThan(decimal.Zero) || d.Value.GreaterThan(decimal.NewFromInt(100))) {
		return Invalid("discount", "Percentage discount must be between 0% and 100%")
	}
	if d.Kind == enum.DiscountKindFixed && d.Value.LessThanOrEqual(decimal.Zero) {
		return Invalid("discount", "Fixed discount must be greater than 0")
	}
	return Valid()
}

// PaymentMethod checks a method string against the allowed set,
// case-insensitively
func PaymentMethod(method string) Result {
	if strings.TrimSpace(method) == "" {
		return Invalid("paymentMethod", "Payment method is required")
	}
	if _, ok := enum.ParsePaymentMethod(method); !ok {
		return Invalid("paymentMethod", "Invalid payment method")
	}
	return Valid()
}

// RoomCharge checks that both guest and booking references are present
func RoomCharge(guestID, bookingID uuid.UUID) Result {
	if guestID == uuid.Nil || bookingID == uuid.Nil {
		return Invalid("roomCharge", "Guest and booking information required for room charge")
	}
	return Valid()
}

// RefundReason checks the free-text reason for a refund
func RefundReason(reason string) Result {
	if strings.TrimSpace(reason) == "" {
		return Invalid("refundReason", "Refund reason is required")
	}
	if len(reason) < MinRefundReasonLen {
		return Invalid("refundReason", fmt.Sprintf("Refund reason must be at least %d characters", MinRefundReasonLen))
	}
	if len(reason) > MaxRefundReasonLen {
		return Invalid("refundReason", fmt.Sprintf("Refund reason cannot exceed %d characters", MaxRefundReasonLen))
	}
	return Valid()
}

// RefundAmount checks a refund amount against (0, max]
func RefundAmount(amount, max decimal.Decimal) Result {
	if max.IsZero() {
		max = DefaultMaxRefundAmount
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Invalid("refundAmount", "Refund amount must be greater than 0")
	}
	if amount.GreaterThan(max) {
		return Invalid("refundAmount", fmt.Sprintf("Refund amount cannot exceed ₱%s", max.StringFixed(2)))
	}
	return Valid()
}

// GuestAssignment checks a guest/room pairing for completeness
func GuestAssignment(booking *entity.Booking) Result {
	if booking == nil {
		return Invalid("guest", "Guest selection is required")
	}
	if strings.TrimSpace(booking.GuestName) == "" {
		return Invalid("guest", "Guest name is required")
	}
	if strings.TrimSpace(booking.RoomNumber) == "" {
		return Invalid("room", "Room number is required")
	}
	return Valid()
}

// ProductAvailability checks that a product can be sold
func ProductAvailability(p *entity.Product) Result {
	if p == nil {
		return NotFound("product", "Product not found")
	}
	if !p.IsAvailable {
		return Invalid("product", "Product is not available")
	}
	return Valid()
}

// TransactionNumber checks the TX + 14-digit timestamp + 3-digit suffix
// format produced by the generator
func TransactionNumber(number string) Result {
	if strings.TrimSpace(number) == "" {
		return Invalid("transactionNumber", "Transaction number is required")
	}
	if !transactionNumberRe.MatchString(number) {
		return Invalid("transactionNumber", "Invalid transaction number format")
	}
	return Valid()
}
