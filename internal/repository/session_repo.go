package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.EventSession) error
	Update(ctx context.Context, tx *gorm.DB, session *models.EventSession) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	FindByID(ctx context.Context, id uint) (*models.EventSession, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.EventSession, error)
	FindAll(ctx context.Context, eventID uint) ([]models.EventSession, error)
	// FindByEventForUpdate locks every session of the event, in id order.
	FindByEventForUpdate(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.EventSession, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.SessionStatus) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.EventSession) error {
	return translate(r.db.WithContext(ctx).Create(session).Error)
}

func (r *sessionRepository) Update(ctx context.Context, tx *gorm.DB, session *models.EventSession) error {
	return translate(conn(r.db, tx).WithContext(ctx).Omit(clause.Associations).Save(session).Error)
}

func (r *sessionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&models.EventSession{}, id).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.EventSession, error) {
	var session models.EventSession
	if err := r.db.WithContext(ctx).Preload("Event").First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate acquires a row-level lock on the session within the given
// transaction; concurrent bookings for the same session queue behind it.
func (r *sessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.EventSession, error) {
	var session models.EventSession
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, id).Error; err != nil {
		return nil, err
	}
	// Loaded separately: FOR UPDATE cannot be combined with the outer join
	// a joined preload would need.
	var event models.Event
	if err := tx.WithContext(ctx).First(&event, session.EventID).Error; err == nil {
		session.Event = &event
	} else if !IsNotFound(err) {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, eventID uint) ([]models.EventSession, error) {
	var sessions []models.EventSession
	q := r.db.WithContext(ctx).Preload("Event")
	if eventID != 0 {
		q = q.Where("event_id = ?", eventID)
	}
	if err := q.Order("date ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByEventForUpdate(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.EventSession, error) {
	var sessions []models.EventSession
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.SessionStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.EventSession{}).
		Where("id = ?", id).
		Update("status", status).Error
}
