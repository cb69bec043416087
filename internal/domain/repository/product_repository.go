package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog lookups. The POS
// core only reads the catalog; product lifecycle lives elsewhere.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, includeUnavailable bool) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
}
