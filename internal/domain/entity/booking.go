package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking statuses considered no longer active for POS purposes.
const (
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusPaid       = "paid"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a guest stay. The POS reads it as the guest/room
// directory; its lifecycle is owned by the booking module.
type Booking struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GuestID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"guest_id"`
	GuestName  string          `gorm:"size:255;not null" json:"guest_name"`
	GuestEmail string          `gorm:"size:255" json:"guest_email"`
	GuestPhone string          `gorm:"size:50" json:"guest_phone"`
	RoomNumber string          `gorm:"size:20;not null" json:"room_number"`
	RoomType   string          `gorm:"size:100" json:"room_type"`
	CheckIn    time.Time       `json:"check_in"`
	CheckOut   time.Time       `json:"check_out"`
	Status     string          `gorm:"size:30;not null;index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsActive reports whether the guest is still on the premises for
// charging purposes. Anything not checked out, paid or cancelled counts.
func (b *Booking) IsActive() bool {
	switch strings.ToLower(b.Status) {
	case BookingStatusCheckedOut, BookingStatusPaid, BookingStatusCancelled:
		return false
	}
	return true
}
