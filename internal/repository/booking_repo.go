package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
)

type BookingFilter struct {
	CustomerEmail string
	UserID        string
	SessionID     uint
	Status        models.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	// FindAll loads every booking, optionally restricted to an event-date
	// window. Zero times leave that side open.
	FindAll(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	SumPeople(ctx context.Context, tx *gorm.DB, sessionID uint) (int, error)
	SumPeopleBySessions(ctx context.Context, tx *gorm.DB, sessionIDs []uint) (map[uint]int, error)
	CountActiveByFacilitators(ctx context.Context, facilitatorIDs []uint) (map[uint]int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return translate(conn(r.db, tx).WithContext(ctx).Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := conn(r.db, tx).WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if filter.CustomerEmail != "" {
		q = q.Where("customer_email = ?", filter.CustomerEmail)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.SessionID != 0 {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("created_at DESC, id DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where("event_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("event_date < ?", to)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// SumPeople returns the attendees committed to a session. Cancelled bookings
// release their seats.
func (r *bookingRepository) SumPeople(ctx context.Context, tx *gorm.DB, sessionID uint) (int, error) {
	var sum int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(number_of_people), 0)").
		Where("session_id = ? AND status <> ?", sessionID, models.StatusCancelled).
		Scan(&sum).Error
	return sum, err
}

func (r *bookingRepository) SumPeopleBySessions(ctx context.Context, tx *gorm.DB, sessionIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SessionID uint
		Total     int
	}
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Select("session_id, COALESCE(SUM(number_of_people), 0) AS total").
		Where("session_id IN ? AND status <> ?", sessionIDs, models.StatusCancelled).
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SessionID] = row.Total
	}
	return out, nil
}

func (r *bookingRepository) CountActiveByFacilitators(ctx context.Context, facilitatorIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(facilitatorIDs))
	if len(facilitatorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		FacilitatorID uint
		Total         int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("facilitator_id, COUNT(*) AS total").
		Where("facilitator_id IN ? AND status <> ?", facilitatorIDs, models.StatusCancelled).
		Group("facilitator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.FacilitatorID] = row.Total
	}
	return out, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}
