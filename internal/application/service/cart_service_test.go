package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func newTestCartService(products ...*entity.Product) *CartService {
	return NewCartService(newFakeProductRepo(products...), &fakeBookingRepo{}, 99)
}

func TestAddLine_NewAndIncrement(t *testing.T) {
	product := availableProduct("Laundry Service", 150)
	svc := newTestCartService(product)
	staff := uuid.New()

	if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
		t.Fatalf("expected add to succeed, got %v", err)
	}
	if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
		t.Fatalf("expected second add to succeed, got %v", err)
	}

	view := svc.View(staff)
	if len(view.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Lines[0].Quantity)
	}
}

func TestAddLine_UnavailableProduct(t *testing.T) {
	product := availableProduct("Spa Massage (1 hour)", 1500)
	product.IsAvailable = false
	svc := newTestCartService(product)

	if err := svc.AddLine(context.Background(), uuid.New(), product.ID); err == nil {
		t.Fatal("expected unavailable product to be rejected")
	}
}

func TestAddLine_UnknownProduct(t *testing.T) {
	svc := newTestCartService()

	if err := svc.AddLine(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Fatal("expected unknown product to be rejected")
	}
}

func TestAddLine_MaxQuantityLeavesCartUnchanged(t *testing.T) {
	product := availableProduct("Pool Towel Rental", 100)
	svc := NewCartService(newFakeProductRepo(product), &fakeBookingRepo{}, 2)
	staff := uuid.New()

	for i := 0; i < 2; i++ {
		if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
			t.Fatalf("add %d failed: %v", i+1, err)
		}
	}

	if err := svc.AddLine(context.Background(), staff, product.ID); err == nil {
		t.Fatal("expected add beyond the maximum to fail")
	}

	view := svc.View(staff)
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity to stay 2, got %d", view.Lines[0].Quantity)
	}
}

func TestChangeQuantity_ZeroRemovesLine(t *testing.T) {
	product := availableProduct("Premium WiFi", 200)
	svc := newTestCartService(product)
	staff := uuid.New()

	if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.ChangeQuantity(staff, product.ID, -1); err != nil {
		t.Fatalf("expected decrement to zero to succeed, got %v", err)
	}

	if view := svc.View(staff); len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
}

func TestChangeQuantity_UnknownLine(t *testing.T) {
	svc := newTestCartService()
	if err := svc.ChangeQuantity(uuid.New(), uuid.New(), 1); err == nil {
		t.Fatal("expected unknown line to be rejected")
	}
}

func TestTotals_WalkInPricing(t *testing.T) {
	product := availableProduct("Laundry Service", 150)
	svc := newTestCartService(product)
	staff := uuid.New()

	for i := 0; i < 2; i++ {
		if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	// 2 x 150 = 300 subtotal, 10% tax on 300 = 30, total 330
	totals := svc.Totals(staff).Rounded()
	if !totals.Subtotal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected subtotal 300, got %s", totals.Subtotal)
	}
	if !totals.Tax.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected tax 30, got %s", totals.Tax)
	}
	if !totals.Total.Equal(decimal.NewFromInt(330)) {
		t.Fatalf("expected total 330, got %s", totals.Total)
	}
}

func TestTotals_Idempotent(t *testing.T) {
	product := availableProduct("City Tour", 2000)
	svc := newTestCartService(product)
	staff := uuid.New()

	if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	first := svc.Totals(staff)
	second := svc.Totals(staff)
	if !first.Total.Equal(second.Total) || !first.Tax.Equal(second.Tax) {
		t.Fatalf("expected repeated totals to match: %v vs %v", first, second)
	}
}

func TestClear_DropsDiscount(t *testing.T) {
	product := availableProduct("Extra Bed", 1000)
	svc := newTestCartService(product)
	staff := uuid.New()

	if err := svc.AddLine(context.Background(), staff, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	svc.applyDiscount(staff, &entity.Discount{Code: "WELCOME10"})

	svc.Clear(staff)

	view := svc.View(staff)
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
	if view.Discount != nil {
		t.Fatal("expected discount to be released on clear")
	}
}

func TestSelectGuest(t *testing.T) {
	booking := activeBooking("Maria Santos", "204")
	bookingRepo := &fakeBookingRepo{bookings: []*entity.Booking{booking}}
	svc := NewCartService(newFakeProductRepo(), bookingRepo, 99)
	staff := uuid.New()

	sel, err := svc.SelectGuest(context.Background(), staff, booking.GuestID)
	if err != nil {
		t.Fatalf("expected guest selection to succeed, got %v", err)
	}
	if sel.GuestName != "Maria Santos" || sel.RoomNumber != "204" {
		t.Fatalf("unexpected selection %+v", sel)
	}

	if _, err := svc.SelectGuest(context.Background(), staff, uuid.New()); err == nil {
		t.Fatal("expected unknown guest to be rejected")
	}
}

func TestSelectGuest_ClearsDiscount(t *testing.T) {
	booking := activeBooking("Juan Dela Cruz", "310")
	svc := NewCartService(newFakeProductRepo(), &fakeBookingRepo{bookings: []*entity.Booking{booking}}, 99)
	staff := uuid.New()

	svc.applyDiscount(staff, &entity.Discount{Code: "WELCOME10"})
	if _, err := svc.SelectGuest(context.Background(), staff, booking.GuestID); err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	if view := svc.View(staff); view.Discount != nil {
		t.Fatal("expected discount to be cleared when a guest is selected")
	}
}

func TestCartsAreIsolatedPerStaff(t *testing.T) {
	product := availableProduct("Gym Day Pass", 500)
	svc := newTestCartService(product)
	alice, bob := uuid.New(), uuid.New()

	if err := svc.AddLine(context.Background(), alice, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if view := svc.View(bob); len(view.Lines) != 0 {
		t.Fatalf("expected bob's cart to be empty, got %d lines", len(view.Lines))
	}
}
