package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
)

// BookingRepository defines the interface for the guest/booking
// directory the POS charges against
type BookingRepository interface {
	// ListActive returns bookings whose guests are currently on the
	// premises (not checked out, paid or cancelled).
	ListActive(ctx context.Context) ([]entity.Booking, error)
	// GetActiveByGuestID returns the guest's current active booking, or
	// nil when the guest has none (e.g. has since checked out).
	GetActiveByGuestID(ctx context.Context, guestID uuid.UUID) (*entity.Booking, error)
	CountActive(ctx context.Context) (int64, error)
}
