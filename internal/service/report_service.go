package service

import (
	"context"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/reporting"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
)

type ReportService interface {
	// FinancialReport scans bookings whose event date falls in [from, to).
	// A zero bound leaves that side open.
	FinancialReport(ctx context.Context, from, to time.Time) (*reporting.FinancialReport, error)
	Customers(ctx context.Context) ([]reporting.Customer, error)
	Rollups(ctx context.Context) ([]models.RevenueRollup, error)
	// RebuildRollups recomputes every period from a full scan of bookings,
	// discarding whatever drift the incremental updates left behind.
	RebuildRollups(ctx context.Context) ([]models.RevenueRollup, error)
}

type reportService struct {
	bookings repository.BookingRepository
	rollups  repository.RollupRepository
	now      func() time.Time
}

func NewReportService(bookings repository.BookingRepository, rollups repository.RollupRepository) ReportService {
	return &reportService{bookings: bookings, rollups: rollups, now: time.Now}
}

func (s *reportService) FinancialReport(ctx context.Context, from, to time.Time) (*reporting.FinancialReport, error) {
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return nil, invalid("to must be after from")
	}
	bookings, err := s.bookings.FindAll(ctx, from, to)
	if err != nil {
		return nil, persistence("load bookings", err)
	}
	report := reporting.Build(bookings, s.now().UTC())
	return &report, nil
}

func (s *reportService) Customers(ctx context.Context) ([]reporting.Customer, error) {
	bookings, err := s.bookings.FindAll(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, persistence("load bookings", err)
	}
	return reporting.Customers(bookings), nil
}

func (s *reportService) Rollups(ctx context.Context) ([]models.RevenueRollup, error) {
	rollups, err := s.rollups.FindAll(ctx)
	if err != nil {
		return nil, persistence("list rollups", err)
	}
	return rollups, nil
}

func (s *reportService) RebuildRollups(ctx context.Context) ([]models.RevenueRollup, error) {
	bookings, err := s.bookings.FindAll(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, persistence("load bookings", err)
	}
	now := s.now().UTC()
	months := reporting.RevenueOverTime(bookings)
	rows := make([]models.RevenueRollup, 0, len(months))
	for _, m := range months {
		rows = append(rows, models.RevenueRollup{
			Period:          m.Month,
			Revenue:         m.Revenue,
			FacilitatorCost: m.FacilitatorCost,
			Bookings:        int64(m.Bookings),
			UpdatedAt:       now,
		})
	}
	if err := s.rollups.Replace(ctx, rows); err != nil {
		return nil, persistence("replace rollups", err)
	}
	return rows, nil
}
