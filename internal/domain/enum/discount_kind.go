package enum

// DiscountKind distinguishes percentage discounts from fixed-amount ones.
type DiscountKind string

const (
	DiscountKindPercentage DiscountKind = "percentage"
	DiscountKindFixed      DiscountKind = "fixed"
)

func (k DiscountKind) String() string {
	return string(k)
}

// Valid reports whether k is a known discount kind
func (k DiscountKind) Valid() bool {
	return k == DiscountKindPercentage || k == DiscountKindFixed
}
