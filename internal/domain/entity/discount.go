package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount represents a discount the cashier can apply to a walk-in cart.
// Matched by code case-insensitively. Percentage values are 0-100;
// fixed values are an absolute peso amount.
type Discount struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code        string            `gorm:"size:50;unique;not null" json:"code"`
	Kind        enum.DiscountKind `gorm:"size:20;not null" json:"kind"`
	Value       decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"value"`
	Description string            `gorm:"size:255" json:"description"`
	MinSubtotal *decimal.Decimal  `gorm:"type:numeric(12,2)" json:"min_subtotal,omitempty"`
	IsActive    bool              `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "pos_discounts"
}

// AmountFor computes the discount amount against a subtotal.
// Percentage: subtotal * value / 100. Fixed: value, regardless of
// subtotal (no clamping).
func (d *Discount) AmountFor(subtotal decimal.Decimal) decimal.Decimal {
	if d.Kind == enum.DiscountKindPercentage {
		return subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
	}
	return d.Value
}
