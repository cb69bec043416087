package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable financial record of a checkout. It is
// mutated only by settlement (pending -> completed) or void; amounts are
// never edited after creation.
type Transaction struct {
	ID                uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	TransactionNumber string                 `gorm:"size:30;unique;not null" json:"transaction_number"`
	Subtotal          decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax               decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"tax"`
	Total             decimal.Decimal        `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentMethod     enum.PaymentMethod     `gorm:"size:20;not null" json:"payment_method"`
	Status            enum.TransactionStatus `gorm:"size:20;not null;index" json:"status"`
	GuestID           *uuid.UUID             `gorm:"type:uuid;index" json:"guest_id,omitempty"` // nil for walk-in sales
	GuestName         string                 `gorm:"size:255" json:"guest_name"`
	CashAmount        *decimal.Decimal       `gorm:"type:numeric(12,2)" json:"cash_amount,omitempty"`
	Change            *decimal.Decimal       `gorm:"type:numeric(12,2)" json:"change,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	PaidAt            *time.Time             `json:"paid_at,omitempty"`
	VoidedAt          *time.Time             `json:"voided_at,omitempty"`

	// Relationships
	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "pos_transactions"
}

// IsWalkIn reports whether the transaction has no associated guest
func (t *Transaction) IsWalkIn() bool {
	return t.GuestID == nil
}

// TransactionItem is the persisted snapshot of one cart line. Created
// with its transaction and never mutated afterwards.
type TransactionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string          `gorm:"size:255" json:"product_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new transaction item
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "pos_transaction_items"
}
