package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines the interface for transaction data
// operations. Create persists a transaction together with its items as
// one atomic unit; the core never writes partial transactions.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByNumber(ctx context.Context, number string) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]entity.Transaction, error)
	CountByStatus(ctx context.Context, status enum.TransactionStatus) (int64, error)
	SumTotalByStatus(ctx context.Context, status enum.TransactionStatus) (decimal.Decimal, error)
	SumCompletedSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}

// TransactionFilterParams contains filtering parameters for transaction
// queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TransactionStatus
	GuestID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
