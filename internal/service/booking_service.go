package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/notify"
	"github.com/Eursukkul/ojasen-backoffice/internal/reporting"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier receives booking events once the write that produced them has
// committed. Implementations must not block.
type Notifier interface {
	Dispatch(ev notify.Event)
}

// MaxPartySize caps numberOfPeople on a single booking.
const MaxPartySize = 50

type CreateBookingInput struct {
	SessionID      uint
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	UserID         string
	NumberOfPeople int
	FacilitatorID  *uint
	Notes          string
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetBookingsByCustomerEmail(ctx context.Context, email string) ([]models.Booking, error)
	GetBookingsByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	GetAllBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
}

type bookingService struct {
	tx           repository.TxManager
	bookings     repository.BookingRepository
	facilitators repository.FacilitatorRepository
	guard        *CapacityGuard
	notifier     Notifier
	now          func() time.Time
}

func NewBookingService(
	tx repository.TxManager,
	bookings repository.BookingRepository,
	sessions repository.SessionRepository,
	facilitators repository.FacilitatorRepository,
	notifier Notifier,
) BookingService {
	return &bookingService{
		tx:           tx,
		bookings:     bookings,
		facilitators: facilitators,
		guard:        NewCapacityGuard(sessions, bookings),
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	switch {
	case in.SessionID == 0:
		return nil, invalid("sessionId is required")
	case in.CustomerName == "":
		return nil, invalid("customerName is required")
	case in.CustomerEmail == "":
		return nil, invalid("customerEmail is required")
	case !isValidEmail(in.CustomerEmail):
		return nil, invalid("customerEmail is not a valid email address")
	}
	if in.NumberOfPeople == 0 {
		in.NumberOfPeople = 1
	}
	if in.NumberOfPeople > MaxPartySize {
		return nil, invalid("numberOfPeople must be at most %d", MaxPartySize)
	}

	var result *models.Booking
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		session, err := s.guard.Reserve(ctx, tx, in.SessionID, in.NumberOfPeople)
		if err != nil {
			return err
		}

		facilitatorID := in.FacilitatorID
		if facilitatorID == nil {
			facilitatorID = session.FacilitatorID
		}
		var facilitator *models.Facilitator
		if facilitatorID != nil {
			facilitator, err = s.facilitators.FindByID(ctx, tx, *facilitatorID)
			if err != nil {
				if repository.IsNotFound(err) {
					return ErrFacilitatorNotFound
				}
				return persistence("load facilitator", err)
			}
		}

		booking := &models.Booking{
			Reference:      uuid.NewString(),
			SessionID:      session.ID,
			EventDate:      session.Date,
			CustomerName:   in.CustomerName,
			CustomerEmail:  in.CustomerEmail,
			CustomerPhone:  strings.TrimSpace(in.CustomerPhone),
			NumberOfPeople: in.NumberOfPeople,
			PricePerPerson: session.Price,
			Notes:          in.Notes,
			Status:         models.StatusPending,
		}
		if session.Event != nil {
			booking.EventName = session.Event.Title
		}
		if in.UserID != "" {
			userID := in.UserID
			booking.UserID = &userID
		}
		applyFees(booking, facilitator)

		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			return persistence("create booking", err)
		}
		if err := s.guard.Settle(ctx, tx, session); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(notify.Event{Type: notify.BookingCreated, Booking: *result})
	return result, nil
}

// applyFees prices the booking from its per-person price and splits the total
// between the facilitator's commission and the studio.
func applyFees(b *models.Booking, f *models.Facilitator) {
	b.TotalPrice = reporting.RoundMoney(b.PricePerPerson * float64(b.NumberOfPeople))
	b.FacilitatorFee = 0
	if f != nil {
		id := f.ID
		b.FacilitatorID = &id
		b.FacilitatorName = f.Name
		b.FacilitatorFee = reporting.RoundMoney(b.TotalPrice * f.Commission)
	}
	b.OjasenFee = reporting.RoundMoney(b.TotalPrice - b.FacilitatorFee)
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, invalid("status must be one of pending, confirmed, cancelled")
	}

	var (
		result   *models.Booking
		previous models.BookingStatus
	)
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		booking, err := s.findBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		// Lock the session first so this change queues behind bookings being
		// admitted, then re-read the booking under that lock.
		session, err := s.guard.sessions.FindByIDForUpdate(ctx, tx, booking.SessionID)
		switch {
		case err == nil:
			if booking, err = s.findBooking(ctx, tx, id); err != nil {
				return err
			}
		case repository.IsNotFound(err):
			session = nil
		default:
			return persistence("lock session", err)
		}

		previous = booking.Status
		result = booking
		if previous == status {
			return nil
		}
		if !Allowed(previous, status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, previous, status)
		}

		if err := s.bookings.UpdateStatus(ctx, tx, booking.ID, status); err != nil {
			return persistence("update booking status", err)
		}
		booking.Status = status
		booking.UpdatedAt = s.now()

		if session != nil {
			return s.guard.Settle(ctx, tx, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous != status {
		s.dispatch(notify.Event{Type: notify.BookingStatusChanged, Booking: *result, PreviousStatus: previous})
	}
	return result, nil
}

func (s *bookingService) findBooking(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, tx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, persistence("load booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.findBooking(ctx, nil, id)
}

// GetBookingsByCustomerEmail matches the email exactly, case included.
func (s *bookingService) GetBookingsByCustomerEmail(ctx context.Context, email string) ([]models.Booking, error) {
	if email == "" {
		return nil, invalid("email is required")
	}
	return s.GetAllBookings(ctx, repository.BookingFilter{CustomerEmail: email})
}

func (s *bookingService) GetBookingsByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	if userID == "" {
		return nil, invalid("userId is required")
	}
	return s.GetAllBookings(ctx, repository.BookingFilter{UserID: userID})
}

func (s *bookingService) GetAllBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("unknown booking status %q", filter.Status)
	}
	bookings, err := s.bookings.Find(ctx, filter)
	if err != nil {
		return nil, persistence("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) dispatch(ev notify.Event) {
	if s.notifier == nil {
		return
	}
	ev.OccurredAt = s.now().UTC()
	s.notifier.Dispatch(ev)
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
