package service

import (
	"context"
	"fmt"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"gorm.io/gorm"
)

// CapacityGuard admits bookings against a session's remaining places. Both
// methods expect to run inside the caller's transaction; Reserve takes the
// session row lock that serializes concurrent bookings.
type CapacityGuard struct {
	sessions repository.SessionRepository
	bookings repository.BookingRepository
}

func NewCapacityGuard(sessions repository.SessionRepository, bookings repository.BookingRepository) *CapacityGuard {
	return &CapacityGuard{sessions: sessions, bookings: bookings}
}

// Reserve locks the session and checks that partySize more attendees fit.
// Nothing is written.
func (g *CapacityGuard) Reserve(ctx context.Context, tx *gorm.DB, sessionID uint, partySize int) (*models.EventSession, error) {
	if partySize <= 0 {
		return nil, invalid("numberOfPeople must be a positive integer")
	}

	session, err := g.sessions.FindByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, persistence("lock session", err)
	}
	if !session.Open() {
		return nil, invalid("session is %s and not open for booking", session.Status)
	}

	committed, err := g.bookings.SumPeople(ctx, tx, session.ID)
	if err != nil {
		return nil, persistence("sum attendees", err)
	}
	if partySize > session.Capacity-committed {
		return nil, fmt.Errorf("%w: only %d of %d places remain", ErrCapacityExceeded, max(session.Capacity-committed, 0), session.Capacity)
	}
	return session, nil
}

// Settle re-derives the committed attendee count and moves the session
// between active and full to match. Cancelled and completed sessions are
// left alone.
func (g *CapacityGuard) Settle(ctx context.Context, tx *gorm.DB, session *models.EventSession) error {
	if !session.Open() {
		return nil
	}

	committed, err := g.bookings.SumPeople(ctx, tx, session.ID)
	if err != nil {
		return persistence("sum attendees", err)
	}

	next := models.SessionActive
	if committed >= session.Capacity {
		next = models.SessionFull
	}
	if next == session.Status {
		return nil
	}
	if err := g.sessions.UpdateStatus(ctx, tx, session.ID, next); err != nil {
		return persistence("update session status", err)
	}
	session.Status = next
	return nil
}
