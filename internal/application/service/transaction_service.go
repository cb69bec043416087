package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/internal/domain/validation"
	"github.com/minimahotel/pos-api/pkg/apperror"
	"github.com/minimahotel/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// WalkInGuestName is the display name recorded for sales with no
// associated guest. The record itself carries a null guest id; there is
// no sentinel id value.
const WalkInGuestName = "Walk-in Customer"

// GuestRef identifies who a transaction belongs to: a checked-in guest
// or a walk-in customer.
type GuestRef struct {
	id     uuid.UUID
	name   string
	walkIn bool
}

// WalkIn returns the guest reference for a walk-in sale
func WalkIn() GuestRef {
	return GuestRef{name: WalkInGuestName, walkIn: true}
}

// Identified returns a guest reference for a checked-in guest
func Identified(id uuid.UUID, name string) GuestRef {
	return GuestRef{id: id, name: name}
}

// IsWalkIn reports whether the reference is the walk-in case
func (g GuestRef) IsWalkIn() bool { return g.walkIn }

// guestID returns the nullable persisted form
func (g GuestRef) guestID() *uuid.UUID {
	if g.walkIn {
		return nil
	}
	id := g.id
	return &id
}

// VoidActor describes who is attempting a void and, for front-desk
// staff, the manager code they supplied.
type VoidActor struct {
	Role        string
	ManagerCode string
}

// Receipt is what checkout hands back for display: the persisted
// transaction, its items, and cash-handling details for cash sales.
type Receipt struct {
	Transaction *entity.Transaction `json:"transaction"`
	CashAmount  *decimal.Decimal    `json:"cash_amount,omitempty"`
	Change      *decimal.Decimal    `json:"change,omitempty"`
}

// TransactionService drives the transaction lifecycle:
// checkout -> pending -> completed, or -> voided.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	bookingRepo     repository.BookingRepository
	carts           *CartService
	voidPolicy      *VoidPolicy
	maxCartTotal    decimal.Decimal
	now             func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	bookingRepo repository.BookingRepository,
	carts *CartService,
	voidPolicy *VoidPolicy,
	maxCartTotal decimal.Decimal,
) *TransactionService {
	if maxCartTotal.IsZero() {
		maxCartTotal = validation.DefaultMaxCartTotal
	}
	return &TransactionService{
		transactionRepo: transactionRepo,
		bookingRepo:     bookingRepo,
		carts:           carts,
		voidPolicy:      voidPolicy,
		maxCartTotal:    maxCartTotal,
		now:             time.Now,
	}
}

// GenerateTransactionNumber builds TX + UTC timestamp (YYYYMMDDHHMMSS) +
// 3 zero-padded random digits, e.g. TX20250115143022087.
func GenerateTransactionNumber(at time.Time) string {
	return fmt.Sprintf("TX%s%03d", at.UTC().Format("20060102150405"), rand.Intn(1000))
}

// CheckoutWalkIn turns the staff member's cart into a completed
// transaction paid on the spot. Cash payments require a tendered amount
// covering the total; change is computed from it. On persistence failure
// the cart is left untouched so the operation can be retried.
func (s *TransactionService) CheckoutWalkIn(ctx context.Context, staffID uuid.UUID, method enum.PaymentMethod, cashAmount *decimal.Decimal) (*Receipt, error) {
	c := s.carts.cartFor(staffID)
	if len(c.lines) == 0 {
		return nil, apperror.ErrCartEmpty
	}

	if res := validation.PaymentMethod(method.String()); !res.OK {
		return nil, resultError(res)
	}
	if method != enum.PaymentMethodCard && method != enum.PaymentMethodCash {
		return nil, apperror.NewFieldError("paymentMethod", "Walk-in payments accept card or cash")
	}

	totals := c.totals().Rounded()
	if res := validation.CartTotal(totals.Total, s.maxCartTotal); !res.OK {
		return nil, resultError(res)
	}

	var change *decimal.Decimal
	if method == enum.PaymentMethodCash {
		if cashAmount == nil || cashAmount.LessThan(totals.Total) {
			return nil, apperror.NewFieldError("cashAmount",
				fmt.Sprintf("Cash amount must be at least ₱%s", totals.Total.StringFixed(2)))
		}
		diff := cashAmount.Sub(totals.Total).Round(2)
		change = &diff
	}

	now := s.now()
	paidAt := now
	tx := s.buildTransaction(c, totals, WalkIn(), method, enum.TransactionStatusCompleted, now)
	tx.PaidAt = &paidAt
	tx.CashAmount = cashAmount
	tx.Change = change

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		// Cart state is preserved so the cashier can retry.
		return nil, apperror.ErrPersistenceRetry
	}

	s.carts.Clear(staffID)
	return &Receipt{Transaction: tx, CashAmount: cashAmount, Change: change}, nil
}

// CheckoutGuestTab posts the cart to the selected guest's tab as a
// pending transaction. The guest must still be checked in at this
// moment; a stale selection is cleared and the checkout rejected.
// Any applied discount is ignored: guest-tab charges accrue at the
// undiscounted subtotal plus tax.
func (s *TransactionService) CheckoutGuestTab(ctx context.Context, staffID uuid.UUID) (*Receipt, error) {
	c := s.carts.cartFor(staffID)
	if len(c.lines) == 0 {
		return nil, apperror.ErrCartEmpty
	}
	if c.guest == nil {
		return nil, apperror.NewFieldError("guest", "Guest selection is required")
	}

	if res := validation.RoomCharge(c.guest.GuestID, c.guest.BookingID); !res.OK {
		return nil, resultError(res)
	}

	booking, err := s.bookingRepo.GetActiveByGuestID(ctx, c.guest.GuestID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		// Stale selection: guest has checked out since being picked.
		s.carts.ClearGuest(staffID)
		return nil, apperror.NewAppError(http.StatusConflict, "Guest is no longer checked in. Please re-select a guest")
	}

	totals := c.undiscountedTotals().Rounded()
	if res := validation.CartTotal(totals.Total, s.maxCartTotal); !res.OK {
		return nil, resultError(res)
	}

	tx := s.buildTransaction(c, totals, Identified(booking.GuestID, booking.GuestName),
		enum.PaymentMethodPending, enum.TransactionStatusPending, s.now())

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, apperror.ErrPersistenceRetry
	}

	s.carts.Clear(staffID)
	return &Receipt{Transaction: tx}, nil
}

// buildTransaction snapshots the cart lines into a transaction record
func (s *TransactionService) buildTransaction(c *cart, totals CartTotals, guest GuestRef, method enum.PaymentMethod, status enum.TransactionStatus, at time.Time) *entity.Transaction {
	items := make([]entity.TransactionItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, entity.TransactionItem{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.Round(2),
			TotalPrice:  l.LineTotal().Round(2),
			CreatedAt:   at,
		})
	}

	return &entity.Transaction{
		TransactionNumber: GenerateTransactionNumber(at),
		Subtotal:          totals.DiscountedSubtotal,
		Tax:               totals.Tax,
		Total:             totals.Total,
		PaymentMethod:     method,
		Status:            status,
		GuestID:           guest.guestID(),
		GuestName:         guest.name,
		CreatedAt:         at,
		Items:             items,
	}
}

// Settle transitions a pending transaction to completed, recording the
// payment method and time. Any other starting status is rejected with
// no side effects.
func (s *TransactionService) Settle(ctx context.Context, id uuid.UUID, method enum.PaymentMethod) (*entity.Transaction, error) {
	if res := validation.PaymentMethod(method.String()); !res.OK {
		return nil, resultError(res)
	}
	if !method.Immediate() {
		return nil, apperror.NewFieldError("paymentMethod", "Settlement requires an immediate payment method")
	}

	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status != enum.TransactionStatusPending {
		return nil, apperror.NewBadRequestError("Only pending transactions can be settled")
	}

	now := s.now()
	tx.Status = enum.TransactionStatusCompleted
	tx.PaymentMethod = method
	tx.PaidAt = &now

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Void marks a transaction voided. Managers void directly; front-desk
// staff must present the manager code. Voiding is a bookkeeping mark
// only; no payment reversal happens here.
func (s *TransactionService) Void(ctx context.Context, id uuid.UUID, actor VoidActor) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status == enum.TransactionStatusVoided {
		return nil, apperror.NewBadRequestError("Transaction is already voided")
	}

	if !s.voidPolicy.CanVoidDirectly(actor.Role) {
		if !s.voidPolicy.VerifyManagerCode(actor.ManagerCode) {
			return nil, apperror.ErrInvalidManagerCode
		}
	}

	now := s.now()
	tx.Status = enum.TransactionStatusVoided
	tx.VoidedAt = &now

	if err := s.transactionRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Get returns a transaction with its items
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// GetByNumber looks a transaction up by its TX number
func (s *TransactionService) GetByNumber(ctx context.Context, number string) (*entity.Transaction, error) {
	if res := validation.TransactionNumber(number); !res.OK {
		return nil, resultError(res)
	}
	tx, err := s.transactionRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tx, nil
}

// List returns transaction history with filtering
func (s *TransactionService) List(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}
