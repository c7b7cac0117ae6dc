package service

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	"github.com/Eursukkul/ojasen-backoffice/internal/reporting"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
)

// RollupService keeps revenue_rollups in step with booking status changes.
// It satisfies notify.Applier.
type RollupService struct {
	repo repository.RollupRepository
}

func NewRollupService(repo repository.RollupRepository) *RollupService {
	return &RollupService{repo: repo}
}

// RollupDelta is the signed change ev makes to its month's confirmed totals.
// ok is false when the event does not move confirmed revenue.
func RollupDelta(ev notify.Event) (delta models.RevenueRollup, ok bool) {
	if ev.Type != notify.BookingStatusChanged {
		return delta, false
	}

	var sign float64
	switch {
	case ev.Booking.Status == models.StatusConfirmed && ev.PreviousStatus != models.StatusConfirmed:
		sign = 1
	case ev.PreviousStatus == models.StatusConfirmed && ev.Booking.Status != models.StatusConfirmed:
		sign = -1
	default:
		return delta, false
	}

	return models.RevenueRollup{
		Period:          reporting.MonthKey(ev.Booking.EventDate),
		Revenue:         sign * ev.Booking.TotalPrice,
		FacilitatorCost: sign * ev.Booking.FacilitatorFee,
		Bookings:        int64(sign),
		UpdatedAt:       ev.OccurredAt,
	}, true
}

// Apply counts ev at most once. The transition table never revisits a
// (from, to) pair for one booking, so the pair with the booking id is the
// event's identity.
func (s *RollupService) Apply(ctx context.Context, ev notify.Event) error {
	delta, ok := RollupDelta(ev)
	if !ok {
		return nil
	}
	mark := models.AppliedTransition{
		BookingID:  ev.Booking.ID,
		FromStatus: ev.PreviousStatus,
		ToStatus:   ev.Booking.Status,
		AppliedAt:  ev.OccurredAt,
	}
	if _, err := s.repo.Apply(ctx, mark, delta); err != nil {
		return persistence("apply rollup", err)
	}
	return nil
}
