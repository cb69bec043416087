package service

import (
	"context"
	"time"

	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/minimahotel/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService provides POS dashboard statistics
type DashboardService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	bookingRepo     repository.BookingRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	bookingRepo repository.BookingRepository,
) *DashboardService {
	return &DashboardService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		bookingRepo:     bookingRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProducts        int64           `json:"total_products"`
	ActiveGuests         int64           `json:"active_guests"`
	CompletedCount       int64           `json:"completed_count"`
	PendingCount         int64           `json:"pending_count"`
	VoidedCount          int64           `json:"voided_count"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TodayRevenue         decimal.Decimal `json:"today_revenue"`
	PendingCharges       decimal.Decimal `json:"pending_charges"`
	AverageTransaction   decimal.Decimal `json:"average_transaction"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	activeGuests, err := s.bookingRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveGuests = activeGuests

	completedCount, err := s.transactionRepo.CountByStatus(ctx, enum.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	stats.CompletedCount = completedCount

	pendingCount, err := s.transactionRepo.CountByStatus(ctx, enum.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingCount = pendingCount

	voidedCount, err := s.transactionRepo.CountByStatus(ctx, enum.TransactionStatusVoided)
	if err != nil {
		return nil, err
	}
	stats.VoidedCount = voidedCount

	totalRevenue, err := s.transactionRepo.SumTotalByStatus(ctx, enum.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = totalRevenue.Round(2)

	pendingCharges, err := s.transactionRepo.SumTotalByStatus(ctx, enum.TransactionStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingCharges = pendingCharges.Round(2)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayRevenue, err := s.transactionRepo.SumCompletedSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	stats.TodayRevenue = todayRevenue.Round(2)

	if completedCount > 0 {
		stats.AverageTransaction = totalRevenue.Div(decimal.NewFromInt(completedCount)).Round(2)
	}

	return stats, nil
}
