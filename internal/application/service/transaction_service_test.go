package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/validation"
	"github.com/minimahotel/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

type transactionFixture struct {
	svc         *TransactionService
	carts       *CartService
	txRepo      *fakeTransactionRepo
	bookingRepo *fakeBookingRepo
	productRepo *fakeProductRepo
	staff       uuid.UUID
}

func newTransactionFixture() *transactionFixture {
	productRepo := newFakeProductRepo()
	bookingRepo := &fakeBookingRepo{}
	txRepo := &fakeTransactionRepo{}
	carts := NewCartService(productRepo, bookingRepo, 99)
	svc := NewTransactionService(txRepo, bookingRepo, carts, NewVoidPolicy("1234"), decimal.NewFromInt(50000))
	return &transactionFixture{
		svc:         svc,
		carts:       carts,
		txRepo:      txRepo,
		bookingRepo: bookingRepo,
		productRepo: productRepo,
		staff:       uuid.New(),
	}
}

func (f *transactionFixture) addProduct(t *testing.T, price int64, times int) *entity.Product {
	t.Helper()
	p := availableProduct("Laundry Service", price)
	f.productRepo.products[p.ID] = p
	for i := 0; i < times; i++ {
		if err := f.carts.AddLine(context.Background(), f.staff, p.ID); err != nil {
			t.Fatalf("adding product: %v", err)
		}
	}
	return p
}

func cash(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestGenerateTransactionNumber(t *testing.T) {
	at := time.Date(2025, 1, 15, 14, 30, 22, 0, time.UTC)
	number := GenerateTransactionNumber(at)

	if res := validation.TransactionNumber(number); !res.OK {
		t.Fatalf("generated number %q failed validation: %s", number, res.Message)
	}
	if got := number[:16]; got != "TX20250115143022" {
		t.Fatalf("expected timestamp prefix TX20250115143022, got %q", got)
	}
	if len(number) != 19 {
		t.Fatalf("expected 19 characters, got %d", len(number))
	}
}

func TestGenerateTransactionNumber_UsesUTC(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	at := time.Date(2025, 6, 1, 6, 0, 0, 0, manila)
	number := GenerateTransactionNumber(at)

	// 06:00 in Manila is 22:00 UTC the previous day.
	if got := number[:16]; got != "TX20250531220000" {
		t.Fatalf("expected UTC timestamp TX20250531220000, got %q", got)
	}
}

func TestCheckoutWalkIn_CashWithChange(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 2)

	// 300 subtotal + 30 tax = 330; 500 tendered leaves 170.
	receipt, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCash, cash(500))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	tx := receipt.Transaction
	if tx.Status != enum.TransactionStatusCompleted {
		t.Fatalf("expected completed status, got %s", tx.Status)
	}
	if tx.PaidAt == nil {
		t.Fatal("expected paid_at to be set")
	}
	if tx.GuestID != nil {
		t.Fatalf("expected nil guest id for walk-in, got %v", tx.GuestID)
	}
	if tx.GuestName != WalkInGuestName {
		t.Fatalf("expected guest name %q, got %q", WalkInGuestName, tx.GuestName)
	}
	if !tx.Total.Equal(decimal.NewFromInt(330)) {
		t.Fatalf("expected total 330, got %s", tx.Total)
	}
	if receipt.Change == nil || !receipt.Change.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected change 170, got %v", receipt.Change)
	}
	if len(tx.Items) != 1 || tx.Items[0].Quantity != 2 {
		t.Fatalf("unexpected item snapshot: %+v", tx.Items)
	}

	if len(f.txRepo.transactions) != 1 {
		t.Fatalf("expected one persisted transaction, got %d", len(f.txRepo.transactions))
	}
	if view := f.carts.View(f.staff); len(view.Lines) != 0 {
		t.Fatal("expected cart to be cleared after checkout")
	}
}

func TestCheckoutWalkIn_InsufficientCash(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 2)

	if _, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCash, cash(300)); err == nil {
		t.Fatal("expected tendered cash below the total to be rejected")
	}
	if _, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCash, nil); err == nil {
		t.Fatal("expected missing cash amount to be rejected")
	}

	if view := f.carts.View(f.staff); len(view.Lines) != 1 {
		t.Fatal("expected cart to survive a rejected checkout")
	}
}

func TestCheckoutWalkIn_CardNeedsNoCash(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 1)

	receipt, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil)
	if err != nil {
		t.Fatalf("card checkout failed: %v", err)
	}
	if receipt.Change != nil {
		t.Fatalf("expected no change for card, got %v", receipt.Change)
	}
	if receipt.Transaction.PaymentMethod != enum.PaymentMethodCard {
		t.Fatalf("expected card payment method, got %s", receipt.Transaction.PaymentMethod)
	}
}

func TestCheckoutWalkIn_RejectsNonImmediateMethods(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 1)

	for _, method := range []enum.PaymentMethod{
		enum.PaymentMethodPending,
		enum.PaymentMethodRoomCharge,
		enum.PaymentMethod("bitcoin"),
	} {
		if _, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, method, nil); err == nil {
			t.Fatalf("expected method %q to be rejected", method)
		}
	}
}

func TestCheckoutWalkIn_EmptyCart(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil)
	if !errors.Is(err, apperror.ErrCartEmpty) {
		t.Fatalf("expected empty-cart error, got %v", err)
	}
}

func TestCheckoutWalkIn_AppliedDiscountPrices(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 1000, 1)

	discounts := NewDiscountService(&fakeDiscountRepo{discounts: []*entity.Discount{
		percentageDiscount("WELCOME10", 10),
	}}, f.carts)
	if _, err := discounts.ApplyCode(context.Background(), f.staff, "WELCOME10"); err != nil {
		t.Fatalf("applying discount: %v", err)
	}

	receipt, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 1000 - 100 = 900, tax 90, total 990
	tx := receipt.Transaction
	if !tx.Subtotal.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected discounted subtotal 900, got %s", tx.Subtotal)
	}
	if !tx.Total.Equal(decimal.NewFromInt(990)) {
		t.Fatalf("expected total 990, got %s", tx.Total)
	}
}

func TestCheckoutWalkIn_PersistenceFailureKeepsCart(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 2)
	f.txRepo.failCreate = true

	_, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil)
	if !errors.Is(err, apperror.ErrPersistenceRetry) {
		t.Fatalf("expected retryable persistence error, got %v", err)
	}

	view := f.carts.View(f.staff)
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 2 {
		t.Fatal("expected cart to be preserved for retry")
	}

	// The retry succeeds once storage recovers.
	f.txRepo.failCreate = false
	if _, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestCheckoutWalkIn_ExceedsMaxTotal(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 60000, 1)

	if _, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil); err == nil {
		t.Fatal("expected over-limit total to be rejected")
	}
}

func TestCheckoutGuestTab(t *testing.T) {
	f := newTransactionFixture()
	booking := activeBooking("Maria Santos", "305")
	f.bookingRepo.bookings = append(f.bookingRepo.bookings, booking)

	f.addProduct(t, 800, 1)
	if _, err := f.carts.SelectGuest(context.Background(), f.staff, booking.GuestID); err != nil {
		t.Fatalf("selecting guest: %v", err)
	}

	receipt, err := f.svc.CheckoutGuestTab(context.Background(), f.staff)
	if err != nil {
		t.Fatalf("guest-tab checkout failed: %v", err)
	}

	tx := receipt.Transaction
	if tx.Status != enum.TransactionStatusPending {
		t.Fatalf("expected pending status, got %s", tx.Status)
	}
	if tx.PaymentMethod != enum.PaymentMethodPending {
		t.Fatalf("expected pending payment method, got %s", tx.PaymentMethod)
	}
	if tx.GuestID == nil || *tx.GuestID != booking.GuestID {
		t.Fatalf("expected guest id %s, got %v", booking.GuestID, tx.GuestID)
	}
	if tx.GuestName != "Maria Santos" {
		t.Fatalf("unexpected guest name %q", tx.GuestName)
	}
	if tx.PaidAt != nil {
		t.Fatal("expected no paid_at on a pending charge")
	}
	if view := f.carts.View(f.staff); len(view.Lines) != 0 {
		t.Fatal("expected cart to be cleared after posting to the tab")
	}
}

func TestCheckoutGuestTab_IgnoresDiscount(t *testing.T) {
	f := newTransactionFixture()
	booking := activeBooking("Maria Santos", "305")
	f.bookingRepo.bookings = append(f.bookingRepo.bookings, booking)

	f.addProduct(t, 1000, 1)
	if _, err := f.carts.SelectGuest(context.Background(), f.staff, booking.GuestID); err != nil {
		t.Fatalf("selecting guest: %v", err)
	}
	// Applying a discount after guest selection is possible through the
	// cart API; guest-tab pricing must still ignore it.
	f.carts.applyDiscount(f.staff, percentageDiscount("WELCOME10", 10))

	receipt, err := f.svc.CheckoutGuestTab(context.Background(), f.staff)
	if err != nil {
		t.Fatalf("guest-tab checkout failed: %v", err)
	}

	// Full 1000 + 100 tax, no discount.
	if !receipt.Transaction.Subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected undiscounted subtotal 1000, got %s", receipt.Transaction.Subtotal)
	}
	if !receipt.Transaction.Total.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected total 1100, got %s", receipt.Transaction.Total)
	}
}

func TestCheckoutGuestTab_NoGuestSelected(t *testing.T) {
	f := newTransactionFixture()
	f.addProduct(t, 150, 1)

	if _, err := f.svc.CheckoutGuestTab(context.Background(), f.staff); err == nil {
		t.Fatal("expected checkout without a guest selection to be rejected")
	}
}

func TestCheckoutGuestTab_StaleGuestClearsSelection(t *testing.T) {
	f := newTransactionFixture()
	booking := activeBooking("Maria Santos", "305")
	f.bookingRepo.bookings = append(f.bookingRepo.bookings, booking)

	f.addProduct(t, 150, 1)
	if _, err := f.carts.SelectGuest(context.Background(), f.staff, booking.GuestID); err != nil {
		t.Fatalf("selecting guest: %v", err)
	}

	// Guest checks out between selection and checkout.
	booking.Status = entity.BookingStatusCheckedOut

	if _, err := f.svc.CheckoutGuestTab(context.Background(), f.staff); err == nil {
		t.Fatal("expected stale guest selection to be rejected")
	}

	view := f.carts.View(f.staff)
	if view.Guest != nil {
		t.Fatal("expected stale guest selection to be cleared")
	}
	if len(view.Lines) != 1 {
		t.Fatal("expected cart lines to survive a rejected guest-tab checkout")
	}
}

func TestSettle(t *testing.T) {
	f := newTransactionFixture()
	booking := activeBooking("Maria Santos", "305")
	f.bookingRepo.bookings = append(f.bookingRepo.bookings, booking)

	f.addProduct(t, 500, 1)
	if _, err := f.carts.SelectGuest(context.Background(), f.staff, booking.GuestID); err != nil {
		t.Fatalf("selecting guest: %v", err)
	}
	receipt, err := f.svc.CheckoutGuestTab(context.Background(), f.staff)
	if err != nil {
		t.Fatalf("guest-tab checkout failed: %v", err)
	}

	tx, err := f.svc.Settle(context.Background(), receipt.Transaction.ID, enum.PaymentMethodCard)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if tx.Status != enum.TransactionStatusCompleted {
		t.Fatalf("expected completed status, got %s", tx.Status)
	}
	if tx.PaymentMethod != enum.PaymentMethodCard {
		t.Fatalf("expected card method after settlement, got %s", tx.PaymentMethod)
	}
	if tx.PaidAt == nil {
		t.Fatal("expected paid_at to be set by settlement")
	}

	// A completed transaction cannot be settled again.
	if _, err := f.svc.Settle(context.Background(), tx.ID, enum.PaymentMethodCash); err == nil {
		t.Fatal("expected settling a completed transaction to be rejected")
	}
}

func TestSettle_RequiresImmediateMethod(t *testing.T) {
	f := newTransactionFixture()

	if _, err := f.svc.Settle(context.Background(), uuid.New(), enum.PaymentMethodPending); err == nil {
		t.Fatal("expected pending method to be rejected for settlement")
	}
	if _, err := f.svc.Settle(context.Background(), uuid.New(), enum.PaymentMethod("bitcoin")); err == nil {
		t.Fatal("expected unknown method to be rejected for settlement")
	}
}

func TestSettle_UnknownTransaction(t *testing.T) {
	f := newTransactionFixture()

	if _, err := f.svc.Settle(context.Background(), uuid.New(), enum.PaymentMethodCard); err == nil {
		t.Fatal("expected unknown transaction to be rejected")
	}
}

func checkoutCompleted(t *testing.T, f *transactionFixture) *entity.Transaction {
	t.Helper()
	f.addProduct(t, 150, 1)
	receipt, err := f.svc.CheckoutWalkIn(context.Background(), f.staff, enum.PaymentMethodCard, nil)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return receipt.Transaction
}

func TestVoid_ManagerDirect(t *testing.T) {
	f := newTransactionFixture()
	tx := checkoutCompleted(t, f)

	voided, err := f.svc.Void(context.Background(), tx.ID, VoidActor{Role: entity.RoleManager})
	if err != nil {
		t.Fatalf("manager void failed: %v", err)
	}
	if voided.Status != enum.TransactionStatusVoided {
		t.Fatalf("expected voided status, got %s", voided.Status)
	}
	if voided.VoidedAt == nil {
		t.Fatal("expected voided_at to be set")
	}
}

func TestVoid_ReceptionistNeedsManagerCode(t *testing.T) {
	f := newTransactionFixture()
	tx := checkoutCompleted(t, f)

	_, err := f.svc.Void(context.Background(), tx.ID, VoidActor{Role: entity.RoleReceptionist, ManagerCode: "0000"})
	if !errors.Is(err, apperror.ErrInvalidManagerCode) {
		t.Fatalf("expected invalid-code error, got %v", err)
	}

	voided, err := f.svc.Void(context.Background(), tx.ID, VoidActor{Role: entity.RoleReceptionist, ManagerCode: "1234"})
	if err != nil {
		t.Fatalf("void with correct code failed: %v", err)
	}
	if voided.Status != enum.TransactionStatusVoided {
		t.Fatalf("expected voided status, got %s", voided.Status)
	}
}

func TestVoid_AlreadyVoided(t *testing.T) {
	f := newTransactionFixture()
	tx := checkoutCompleted(t, f)

	if _, err := f.svc.Void(context.Background(), tx.ID, VoidActor{Role: entity.RoleManager}); err != nil {
		t.Fatalf("first void failed: %v", err)
	}
	if _, err := f.svc.Void(context.Background(), tx.ID, VoidActor{Role: entity.RoleManager}); err == nil {
		t.Fatal("expected double void to be rejected")
	}
}

func TestGetByNumber(t *testing.T) {
	f := newTransactionFixture()
	tx := checkoutCompleted(t, f)

	found, err := f.svc.GetByNumber(context.Background(), tx.TransactionNumber)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.ID != tx.ID {
		t.Fatalf("expected transaction %s, got %s", tx.ID, found.ID)
	}

	if _, err := f.svc.GetByNumber(context.Background(), "RX20250115143022087"); err == nil {
		t.Fatal("expected malformed number to be rejected")
	}
	if _, err := f.svc.GetByNumber(context.Background(), "TX20991231235959999"); err == nil {
		t.Fatal("expected unknown number to be rejected")
	}
}
