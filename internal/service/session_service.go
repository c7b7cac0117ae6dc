package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"gorm.io/gorm"
)

// SessionInput carries the writable fields of a session. Nil fields are left
// untouched on update; EventID is only read on create.
type SessionInput struct {
	EventID       *uint
	Date          *time.Time
	StartTime     *string
	Location      *string
	Price         *float64
	Capacity      *int
	Status        *models.SessionStatus
	FacilitatorID *uint
}

// SessionView is a session with its live occupancy.
type SessionView struct {
	models.EventSession
	BookedCount int `json:"bookedCount"`
	Remaining   int `json:"remaining"`
}

type SessionService interface {
	CreateSession(ctx context.Context, in SessionInput) (*SessionView, error)
	UpdateSession(ctx context.Context, id uint, in SessionInput) (*SessionView, error)
	DeleteSession(ctx context.Context, id uint) error
	GetSession(ctx context.Context, id uint) (*SessionView, error)
	ListSessions(ctx context.Context, eventID uint) ([]SessionView, error)
}

type sessionService struct {
	tx           repository.TxManager
	sessions     repository.SessionRepository
	events       repository.EventRepository
	facilitators repository.FacilitatorRepository
	bookings     repository.BookingRepository
	guard        *CapacityGuard
}

func NewSessionService(
	tx repository.TxManager,
	sessions repository.SessionRepository,
	events repository.EventRepository,
	facilitators repository.FacilitatorRepository,
	bookings repository.BookingRepository,
) SessionService {
	return &sessionService{
		tx:           tx,
		sessions:     sessions,
		events:       events,
		facilitators: facilitators,
		bookings:     bookings,
		guard:        NewCapacityGuard(sessions, bookings),
	}
}

func (s *sessionService) CreateSession(ctx context.Context, in SessionInput) (*SessionView, error) {
	switch {
	case in.EventID == nil || *in.EventID == 0:
		return nil, invalid("eventId is required")
	case in.Date == nil || in.Date.IsZero():
		return nil, invalid("date is required")
	case in.Capacity == nil:
		return nil, invalid("capacity is required")
	}

	event, err := s.events.FindByID(ctx, *in.EventID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, persistence("load event", err)
	}

	session := &models.EventSession{
		EventID:  event.ID,
		Price:    event.Price,
		Location: event.Location,
		Status:   models.SessionActive,
	}
	if err := s.apply(ctx, session, in); err != nil {
		return nil, err
	}
	if session.Location == "" {
		session.Location = event.Location
	}
	if session.Status == models.SessionFull {
		session.Status = models.SessionActive
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, persistence("create session", err)
	}
	session.Event = event
	return &SessionView{EventSession: *session, Remaining: session.Capacity}, nil
}

// apply validates and copies the input onto the session.
func (s *sessionService) apply(ctx context.Context, session *models.EventSession, in SessionInput) error {
	if in.Date != nil {
		if in.Date.IsZero() {
			return invalid("date must not be empty")
		}
		session.Date = *in.Date
	}
	if in.StartTime != nil {
		st := strings.TrimSpace(*in.StartTime)
		if st != "" {
			if _, err := time.Parse("15:04", st); err != nil {
				return invalid("time must be HH:MM")
			}
		}
		session.StartTime = st
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) != "" {
		session.Location = strings.TrimSpace(*in.Location)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return invalid("price must not be negative")
		}
		session.Price = *in.Price
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return invalid("capacity must be a positive integer")
		}
		session.Capacity = *in.Capacity
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status must be one of active, full, cancelled, completed")
		}
		session.Status = *in.Status
	}
	if in.FacilitatorID != nil {
		if _, err := s.facilitators.FindByID(ctx, nil, *in.FacilitatorID); err != nil {
			if repository.IsNotFound(err) {
				return ErrFacilitatorNotFound
			}
			return persistence("load facilitator", err)
		}
		id := *in.FacilitatorID
		session.FacilitatorID = &id
	}
	return nil
}

// UpdateSession applies the change under the session lock. Capacity cannot
// drop below the places already committed, and the active/full flag is
// re-derived afterwards.
func (s *sessionService) UpdateSession(ctx context.Context, id uint, in SessionInput) (*SessionView, error) {
	var view *SessionView
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		session, err := s.sessions.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrSessionNotFound
			}
			return persistence("lock session", err)
		}
		if err := s.apply(ctx, session, in); err != nil {
			return err
		}

		committed, err := s.bookings.SumPeople(ctx, tx, id)
		if err != nil {
			return persistence("sum attendees", err)
		}
		if session.Capacity < committed {
			return invalid("capacity cannot be lower than the %d places already booked", committed)
		}

		if err := s.sessions.Update(ctx, tx, session); err != nil {
			return persistence("update session", err)
		}
		if err := s.guard.Settle(ctx, tx, session); err != nil {
			return err
		}
		view = newSessionView(*session, committed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uint) error {
	return s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.sessions.FindByIDForUpdate(ctx, tx, id); err != nil {
			if repository.IsNotFound(err) {
				return ErrSessionNotFound
			}
			return persistence("lock session", err)
		}
		committed, err := s.bookings.SumPeople(ctx, tx, id)
		if err != nil {
			return persistence("sum attendees", err)
		}
		if committed > 0 {
			return fmt.Errorf("%w: session has %d booked attendees", ErrConflict, committed)
		}
		if err := s.sessions.Delete(ctx, tx, id); err != nil {
			return persistence("delete session", err)
		}
		return nil
	})
}

func (s *sessionService) GetSession(ctx context.Context, id uint) (*SessionView, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, persistence("load session", err)
	}
	committed, err := s.bookings.SumPeople(ctx, nil, id)
	if err != nil {
		return nil, persistence("sum attendees", err)
	}
	return newSessionView(*session, committed), nil
}

// ListSessions returns every session, or only those of eventID when it is
// non-zero.
func (s *sessionService) ListSessions(ctx context.Context, eventID uint) ([]SessionView, error) {
	sessions, err := s.sessions.FindAll(ctx, eventID)
	if err != nil {
		return nil, persistence("list sessions", err)
	}
	ids := make([]uint, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	committed := map[uint]int{}
	if len(ids) > 0 {
		if committed, err = s.bookings.SumPeopleBySessions(ctx, nil, ids); err != nil {
			return nil, persistence("sum attendees", err)
		}
	}

	views := make([]SessionView, len(sessions))
	for i, sess := range sessions {
		views[i] = *newSessionView(sess, committed[sess.ID])
	}
	return views, nil
}

func newSessionView(s models.EventSession, committed int) *SessionView {
	return &SessionView{
		EventSession: s,
		BookedCount:  committed,
		Remaining:    max(s.Capacity-committed, 0),
	}
}
