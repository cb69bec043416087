package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
)

// DiscountRepository defines the interface for discount reference data.
// Read-only for the POS core; the discount catalog is maintained
// externally.
type DiscountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	// GetActiveByCode resolves an active discount by code,
	// case-insensitively. Returns nil when no active discount matches.
	GetActiveByCode(ctx context.Context, code string) (*entity.Discount, error)
	ListActive(ctx context.Context) ([]entity.Discount, error)
}
