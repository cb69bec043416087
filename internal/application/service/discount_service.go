package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/internal/domain/validation"
	"github.com/minimahotel/pos-api/pkg/apperror"
)

// DiscountService resolves discount codes and catalog selections and
// applies them to a cart. Only one discount is active at a time;
// applying a new one replaces the previous.
type DiscountService struct {
	discountRepo repository.DiscountRepository
	carts        *CartService
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository, carts *CartService) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		carts:        carts,
	}
}

// ListActive returns the discounts available for catalog selection
func (s *DiscountService) ListActive(ctx context.Context) ([]entity.Discount, error) {
	return s.discountRepo.ListActive(ctx)
}

// ApplyCode validates and applies a user-entered discount code to the
// staff member's cart: format check, case-insensitive lookup among
// active discounts, then applicability against the current subtotal.
func (s *DiscountService) ApplyCode(ctx context.Context, staffID uuid.UUID, code string) (*entity.Discount, error) {
	if res := validation.DiscountCode(code); !res.OK {
		return nil, resultError(res)
	}

	discount, err := s.discountRepo.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewAppError(http.StatusNotFound, "Invalid or expired discount code")
	}

	return s.apply(staffID, discount)
}

// ApplySelection applies a discount chosen from the catalog. The catalog
// only presents active discounts, so only applicability is checked.
func (s *DiscountService) ApplySelection(ctx context.Context, staffID, discountID uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	if discount == nil || !discount.IsActive {
		return nil, apperror.NewNotFoundError("Discount")
	}

	return s.apply(staffID, discount)
}

func (s *DiscountService) apply(staffID uuid.UUID, discount *entity.Discount) (*entity.Discount, error) {
	subtotal := s.carts.Totals(staffID).Subtotal
	if res := validation.DiscountApplicability(subtotal, discount); !res.OK {
		return nil, resultError(res)
	}

	// Applicability is not re-checked when the cart shrinks afterwards;
	// an applied discount stays applied until replaced or removed.
	s.carts.applyDiscount(staffID, discount)
	return discount, nil
}

// Remove drops the cart's applied discount unconditionally
func (s *DiscountService) Remove(staffID uuid.UUID) {
	s.carts.RemoveDiscount(staffID)
}
