package service

import (
	"context"
	"time"

	"github.com/platepos/api/internal/report"
	"github.com/platepos/api/internal/store"
)

// RevenueReport is a timeframe's worth of aggregated revenue for the
// dashboard: headline figures plus chart buckets.
type RevenueReport struct {
	Timeframe   string          `json:"timeframe"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     report.Summary  `json:"summary"`
	Buckets     []report.Bucket `json:"buckets"`
}

// ReportService aggregates persisted orders into revenue reports.
type ReportService struct {
	orders *store.OrderRepository
}

func NewReportService(orders *store.OrderRepository) *ReportService {
	return &ReportService{orders: orders}
}

// Revenue filters orders by the timeframe window ending at now and returns
// the summary and buckets. Invalid timeframes propagate
// report.ErrInvalidTimeframe.
func (s *ReportService) Revenue(ctx context.Context, timeframe string, now time.Time) (RevenueReport, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return RevenueReport{}, err
	}

	filtered, err := report.FilterByTimeframe(orders, timeframe, now)
	if err != nil {
		return RevenueReport{}, err
	}

	buckets, err := report.Bucketize(filtered, timeframe)
	if err != nil {
		return RevenueReport{}, err
	}

	return RevenueReport{
		Timeframe:   timeframe,
		GeneratedAt: now,
		Summary:     report.Summarize(filtered),
		Buckets:     buckets,
	}, nil
}
