package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"gorm.io/gorm"
)

// EventInput carries the writable fields of an event. Nil fields are left
// untouched on update.
type EventInput struct {
	Title           *string
	Description     *string
	LongDescription *string
	Category        *string
	Price           *float64
	Location        *string
	Status          *models.EventStatus
}

type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id uint, in EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type eventService struct {
	tx       repository.TxManager
	repo     repository.EventRepository
	sessions repository.SessionRepository
	bookings repository.BookingRepository
}

func NewEventService(
	tx repository.TxManager,
	repo repository.EventRepository,
	sessions repository.SessionRepository,
	bookings repository.BookingRepository,
) EventService {
	return &eventService{tx: tx, repo: repo, sessions: sessions, bookings: bookings}
}

func (s *eventService) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	event := &models.Event{Status: models.EventActive}
	if err := applyEvent(event, in); err != nil {
		return nil, err
	}
	if event.Title == "" {
		return nil, invalid("title is required")
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, persistence("create event", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint, in EventInput) (*models.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEvent(event, in); err != nil {
		return nil, err
	}
	if event.Title == "" {
		return nil, invalid("title must not be empty")
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, persistence("update event", err)
	}
	return event, nil
}

func applyEvent(e *models.Event, in EventInput) error {
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.LongDescription != nil {
		e.LongDescription = *in.LongDescription
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return invalid("price must not be negative")
		}
		e.Price = *in.Price
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status must be one of active, inactive, archived")
		}
		e.Status = *in.Status
	}
	return nil
}

// DeleteEvent removes the event with its sessions. It refuses while any
// session still holds pending or confirmed bookings. The sessions stay
// locked from the count to the delete, so no booking can land in between.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		sessions, err := s.sessions.FindByEventForUpdate(ctx, tx, id)
		if err != nil {
			return persistence("lock sessions", err)
		}
		if len(sessions) > 0 {
			ids := make([]uint, len(sessions))
			for i, sess := range sessions {
				ids[i] = sess.ID
			}
			committed, err := s.bookings.SumPeopleBySessions(ctx, tx, ids)
			if err != nil {
				return persistence("sum attendees", err)
			}
			total := 0
			for _, n := range committed {
				total += n
			}
			if total > 0 {
				return fmt.Errorf("%w: event has %d booked attendees", ErrConflict, total)
			}
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return persistence("delete event", err)
		}
		return nil
	})
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, persistence("load event", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list events", err)
	}
	return events, nil
}
