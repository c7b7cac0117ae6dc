package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error)
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error)
}

// Delete removes the event and its sessions. The FK cascades as well; the
// explicit delete keeps the behavior when the constraint is missing.
func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := conn(r.db, tx).WithContext(ctx)
	if err := db.Where("event_id = ?", id).Delete(&models.EventSession{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Event{}, id).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
