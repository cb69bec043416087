package enum

import "strings"

// PaymentMethod represents how a transaction is (or will be) paid.
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPending    PaymentMethod = "pending"
	PaymentMethodRoomCharge PaymentMethod = "room charge"
	PaymentMethodCreditCard PaymentMethod = "credit card"
	PaymentMethodDebitCard  PaymentMethod = "debit card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether m is in the allowed set
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodPending,
		PaymentMethodRoomCharge, PaymentMethodCreditCard, PaymentMethodDebitCard:
		return true
	}
	return false
}

// Immediate reports whether m settles a transaction on the spot.
// "pending" is the placeholder for guest-tab charges.
func (m PaymentMethod) Immediate() bool {
	return m.Valid() && m != PaymentMethodPending
}

// ParsePaymentMethod normalizes a user-supplied method string.
// Matching is case-insensitive per the payment method whitelist.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}
