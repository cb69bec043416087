package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/minimahotel/pos-api/pkg/apperror"
)

// CatalogService is the read-only product/category surface the POS
// consumes. Catalog lifecycle is owned elsewhere.
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts returns catalog products, optionally including
// unavailable ones
func (s *CatalogService) ListProducts(ctx context.Context, includeUnavailable bool) ([]entity.Product, error) {
	return s.productRepo.List(ctx, includeUnavailable)
}

// GetProduct returns one product by id
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListCategories returns all catalog categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}
