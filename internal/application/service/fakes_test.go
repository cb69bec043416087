package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes used across the service tests.

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) List(_ context.Context, includeUnavailable bool) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if !includeUnavailable && !p.IsAvailable {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeBookingRepo struct {
	bookings []*entity.Booking
}

func (r *fakeBookingRepo) ListActive(_ context.Context) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetActiveByGuestID(_ context.Context, guestID uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.GuestID == guestID && b.IsActive() {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) CountActive(_ context.Context) (int64, error) {
	seen := make(map[uuid.UUID]struct{})
	for _, b := range r.bookings {
		if b.IsActive() {
			seen[b.GuestID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

type fakeDiscountRepo struct {
	discounts []*entity.Discount
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Discount, error) {
	for _, d := range r.discounts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) GetActiveByCode(_ context.Context, code string) (*entity.Discount, error) {
	for _, d := range r.discounts {
		if d.IsActive && strings.EqualFold(d.Code, code) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) ListActive(_ context.Context) ([]entity.Discount, error) {
	var out []entity.Discount
	for _, d := range r.discounts {
		if d.IsActive {
			out = append(out, *d)
		}
	}
	return out, nil
}

// fakeTransactionRepo stores transactions in insertion order. failCreate
// and failUpdateID simulate persistence failures.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	failCreate   bool
	failUpdateID uuid.UUID
}

var errStorage = errors.New("storage unavailable")

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if r.failCreate {
		return errStorage
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetByNumber(_ context.Context, number string) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.TransactionNumber == number {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	if r.failUpdateID != uuid.Nil && tx.ID == r.failUpdateID {
		return errStorage
	}
	return nil
}

func (r *fakeTransactionRepo) List(_ context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, tx := range r.transactions {
		if params.Status != nil && tx.Status != *params.Status {
			continue
		}
		out = append(out, *tx)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) ListByGuest(_ context.Context, guestID uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range r.transactions {
		if tx.GuestID != nil && *tx.GuestID == guestID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) CountByStatus(_ context.Context, status enum.TransactionStatus) (int64, error) {
	var n int64
	for _, tx := range r.transactions {
		if tx.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeTransactionRepo) SumTotalByStatus(_ context.Context, status enum.TransactionStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range r.transactions {
		if tx.Status == status {
			sum = sum.Add(tx.Total)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) SumCompletedSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range r.transactions {
		if tx.Status == enum.TransactionStatusCompleted && tx.PaidAt != nil && !tx.PaidAt.Before(since) {
			sum = sum.Add(tx.Total)
		}
	}
	return sum, nil
}

// Test fixture helpers.

func availableProduct(name string, price int64) *entity.Product {
	return &entity.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.NewFromInt(price),
		IsAvailable: true,
	}
}

func activeBooking(guestName, room string) *entity.Booking {
	return &entity.Booking{
		ID:         uuid.New(),
		GuestID:    uuid.New(),
		GuestName:  guestName,
		RoomNumber: room,
		RoomType:   "Deluxe",
		Status:     entity.BookingStatusCheckedIn,
		TotalPrice: decimal.NewFromInt(5000),
	}
}
