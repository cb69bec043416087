package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/repository"
)

// ActiveGuest is a checked-in guest extracted from the booking
// directory, offered for guest-tab selection.
type ActiveGuest struct {
	GuestID    uuid.UUID `json:"guest_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
	BookingID  uuid.UUID `json:"booking_id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
}

// GuestService exposes the active-guest directory to the POS
type GuestService struct {
	bookingRepo repository.BookingRepository
}

// NewGuestService creates a new guest service
func NewGuestService(bookingRepo repository.BookingRepository) *GuestService {
	return &GuestService{bookingRepo: bookingRepo}
}

// ListActive returns currently checked-in guests, one entry per guest,
// sorted by name
func (s *GuestService) ListActive(ctx context.Context) ([]ActiveGuest, error) {
	bookings, err := s.bookingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(bookings))
	guests := make([]ActiveGuest, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.GuestID]; ok {
			continue
		}
		seen[b.GuestID] = struct{}{}
		guests = append(guests, ActiveGuest{
			GuestID:    b.GuestID,
			GuestName:  b.GuestName,
			GuestEmail: b.GuestEmail,
			GuestPhone: b.GuestPhone,
			BookingID:  b.ID,
			RoomNumber: b.RoomNumber,
			RoomType:   b.RoomType,
		})
	}

	sort.Slice(guests, func(i, j int) bool {
		return guests[i].GuestName < guests[j].GuestName
	})
	return guests, nil
}
