package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	domainRepo "github.com/minimahotel/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetActiveByCode(ctx context.Context, code string) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = UPPER(?) AND is_active = ?", code, true).
		First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) ListActive(ctx context.Context) ([]entity.Discount, error) {
	var discounts []entity.Discount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&discounts).Error
	return discounts, err
}
