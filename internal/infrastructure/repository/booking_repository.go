package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	domainRepo "github.com/minimahotel/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// inactiveBookingStatuses are the statuses under which a guest can no
// longer be charged to their room.
var inactiveBookingStatuses = []string{
	entity.BookingStatusCheckedOut,
	entity.BookingStatusPaid,
	entity.BookingStatusCancelled,
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) ListActive(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", inactiveBookingStatuses).
		Order("guest_name ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetActiveByGuestID(ctx context.Context, guestID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).
		Where("guest_id = ? AND status NOT IN ?", guestID, inactiveBookingStatuses).
		Order("check_in DESC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("status NOT IN ?", inactiveBookingStatuses).
		Distinct("guest_id").
		Count(&count).Error
	return count, err
}
