package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/internal/domain/validation"
	"github.com/minimahotel/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Folio is the consolidated view of a guest's charges: their
// transactions partitioned by status, with the pending balance and the
// amount already paid (including the room-charge baseline from the
// booking, which this module does not own).
type Folio struct {
	GuestID      uuid.UUID            `json:"guest_id"`
	Booking      *entity.Booking      `json:"booking,omitempty"`
	Pending      []entity.Transaction `json:"pending"`
	Completed    []entity.Transaction `json:"completed"`
	Voided       []entity.Transaction `json:"voided"`
	PendingTotal decimal.Decimal      `json:"pending_total"`
	PaidTotal    decimal.Decimal      `json:"paid_total"`
	RoomCharge   decimal.Decimal      `json:"room_charge"`
}

// PaymentResult reports what a batch settlement actually did. Settles
// run sequentially per transaction; a mid-batch failure leaves earlier
// settlements committed, and AmountPaid reflects only what went through.
type PaymentResult struct {
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	SettledIDs     []uuid.UUID     `json:"settled_ids"`
	FailedID       *uuid.UUID      `json:"failed_id,omitempty"`
	FailureMessage string          `json:"failure_message,omitempty"`
}

// folioSelection is one staff member's working selection of a guest's
// pending charges
type folioSelection struct {
	guestID uuid.UUID
	ids     map[uuid.UUID]struct{}
}

// FolioService aggregates a guest's pending transactions into a payable
// set and settles the selected subset.
type FolioService struct {
	mu              sync.Mutex
	selections      map[uuid.UUID]*folioSelection
	transactionRepo repository.TransactionRepository
	bookingRepo     repository.BookingRepository
	transactions    *TransactionService
}

// NewFolioService creates a new folio service
func NewFolioService(
	transactionRepo repository.TransactionRepository,
	bookingRepo repository.BookingRepository,
	transactions *TransactionService,
) *FolioService {
	return &FolioService{
		selections:      make(map[uuid.UUID]*folioSelection),
		transactionRepo: transactionRepo,
		bookingRepo:     bookingRepo,
		transactions:    transactions,
	}
}

// Load builds the guest's folio from their transaction history and
// current booking
func (s *FolioService) Load(ctx context.Context, guestID uuid.UUID) (*Folio, error) {
	transactions, err := s.transactionRepo.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetActiveByGuestID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	folio := &Folio{
		GuestID:      guestID,
		Booking:      booking,
		Pending:      []entity.Transaction{},
		Completed:    []entity.Transaction{},
		Voided:       []entity.Transaction{},
		PendingTotal: decimal.Zero,
		PaidTotal:    decimal.Zero,
		RoomCharge:   decimal.Zero,
	}
	if booking != nil {
		folio.RoomCharge = booking.TotalPrice
	}

	for _, tx := range transactions {
		switch tx.Status {
		case enum.TransactionStatusPending:
			folio.Pending = append(folio.Pending, tx)
			folio.PendingTotal = folio.PendingTotal.Add(tx.Total)
		case enum.TransactionStatusCompleted:
			folio.Completed = append(folio.Completed, tx)
			folio.PaidTotal = folio.PaidTotal.Add(tx.Total)
		case enum.TransactionStatusVoided:
			folio.Voided = append(folio.Voided, tx)
		}
	}

	folio.PaidTotal = folio.PaidTotal.Add(folio.RoomCharge)
	return folio, nil
}

func (s *FolioService) selectionFor(staffID, guestID uuid.UUID) *folioSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.selections[staffID]
	if !ok || sel.guestID != guestID {
		sel = &folioSelection{guestID: guestID, ids: make(map[uuid.UUID]struct{})}
		s.selections[staffID] = sel
	}
	return sel
}

// Toggle flips one pending transaction in or out of the staff member's
// selection for the guest
func (s *FolioService) Toggle(ctx context.Context, staffID, guestID, transactionID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.GuestID == nil || *tx.GuestID != guestID {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if tx.Status != enum.TransactionStatusPending {
		return nil, apperror.NewBadRequestError("Only pending transactions can be selected for payment")
	}

	sel := s.selectionFor(staffID, guestID)
	if _, ok := sel.ids[transactionID]; ok {
		delete(sel.ids, transactionID)
	} else {
		sel.ids[transactionID] = struct{}{}
	}
	return s.Selection(staffID, guestID), nil
}

// ToggleAll selects every pending transaction, or clears the selection
// when everything is already selected.
func (s *FolioService) ToggleAll(ctx context.Context, staffID, guestID uuid.UUID) ([]uuid.UUID, error) {
	folio, err := s.Load(ctx, guestID)
	if err != nil {
		return nil, err
	}

	sel := s.selectionFor(staffID, guestID)
	if len(sel.ids) == len(folio.Pending) && len(folio.Pending) > 0 {
		sel.ids = make(map[uuid.UUID]struct{})
	} else {
		sel.ids = make(map[uuid.UUID]struct{}, len(folio.Pending))
		for _, tx := range folio.Pending {
			sel.ids[tx.ID] = struct{}{}
		}
	}
	return s.Selection(staffID, guestID), nil
}

// Selection returns the currently selected transaction ids
func (s *FolioService) Selection(staffID, guestID uuid.UUID) []uuid.UUID {
	sel := s.selectionFor(staffID, guestID)
	ids := make([]uuid.UUID, 0, len(sel.ids))
	for id := range sel.ids {
		ids = append(ids, id)
	}
	return ids
}

// PaySelected settles each selected pending transaction in turn with
// the given method. There is no cross-transaction rollback: if one
// settle fails, the ones before it stay settled and the result says
// exactly how much was paid. The selection is cleared either way.
func (s *FolioService) PaySelected(ctx context.Context, staffID, guestID uuid.UUID, method enum.PaymentMethod) (*PaymentResult, error) {
	sel := s.selectionFor(staffID, guestID)
	if len(sel.ids) == 0 {
		return nil, apperror.NewBadRequestError("No transactions selected for payment")
	}
	if res := validation.PaymentMethod(method.String()); !res.OK {
		return nil, resultError(res)
	}
	if !method.Immediate() {
		return nil, apperror.NewFieldError("paymentMethod", "Settlement requires an immediate payment method")
	}

	// Settle in the folio's pending order for a stable receipt.
	folio, err := s.Load(ctx, guestID)
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{AmountPaid: decimal.Zero}
	for _, tx := range folio.Pending {
		if _, ok := sel.ids[tx.ID]; !ok {
			continue
		}
		settled, err := s.transactions.Settle(ctx, tx.ID, method)
		if err != nil {
			id := tx.ID
			result.FailedID = &id
			result.FailureMessage = err.Error()
			break
		}
		result.SettledIDs = append(result.SettledIDs, settled.ID)
		result.AmountPaid = result.AmountPaid.Add(settled.Total)
	}

	s.mu.Lock()
	delete(s.selections, staffID)
	s.mu.Unlock()

	return result, nil
}
