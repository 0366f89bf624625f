package service

import (
	"context"
	"fmt"

	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatisticsService interface {
	GetBillingSummary(ctx context.Context, actor Actor, motelID uuid.UUID, billingMonth string) (*model.BillingSummary, error)
}

type statisticsService struct {
	stats  repository.StatisticsRepository
	motels repository.MotelRepository
}

func NewStatisticsService(stats repository.StatisticsRepository, motels repository.MotelRepository) StatisticsService {
	return &statisticsService{stats: stats, motels: motels}
}

// GetBillingSummary totals what a motel billed and collected for one month
func (s *statisticsService) GetBillingSummary(ctx context.Context, actor Actor, motelID uuid.UUID, billingMonth string) (*model.BillingSummary, error) {
	month, err := parseBillingMonth(billingMonth)
	if err != nil {
		return nil, err
	}

	motel, err := s.motels.FindByID(ctx, motelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("motel")
		}
		return nil, fmt.Errorf("failed to load motel: %w", err)
	}
	if err := authorizeManage(actor, motel); err != nil {
		return nil, err
	}

	byStatus, err := s.stats.InvoiceTotals(ctx, motelID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to total invoices: %w", err)
	}
	byMethod, err := s.stats.PaymentTotals(ctx, motelID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to total payments: %w", err)
	}

	summary := &model.BillingSummary{
		MotelID:        motelID,
		BillingMonth:   month.Format(billingMonthLayout),
		TotalBilled:    decimal.Zero,
		TotalCollected: decimal.Zero,
		ByStatus:       byStatus,
		ByMethod:       byMethod,
	}
	for _, st := range byStatus {
		summary.InvoiceCount += st.Count
		summary.TotalBilled = summary.TotalBilled.Add(st.Total)
	}
	for _, m := range byMethod {
		summary.TotalCollected = summary.TotalCollected.Add(m.Total)
	}
	summary.Outstanding = summary.TotalBilled.Sub(summary.TotalCollected)
	return summary, nil
}
