package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
)

type FacilitatorRepository interface {
	Create(ctx context.Context, f *models.Facilitator) error
	Update(ctx context.Context, f *models.Facilitator) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Facilitator, error)
	FindAll(ctx context.Context) ([]models.Facilitator, error)
}

type facilitatorRepository struct {
	db *gorm.DB
}

func NewFacilitatorRepository(db *gorm.DB) FacilitatorRepository {
	return &facilitatorRepository{db: db}
}

func (r *facilitatorRepository) Create(ctx context.Context, f *models.Facilitator) error {
	return translate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *facilitatorRepository) Update(ctx context.Context, f *models.Facilitator) error {
	return translate(r.db.WithContext(ctx).Save(f).Error)
}

func (r *facilitatorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Facilitator{}, id).Error
}

func (r *facilitatorRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Facilitator, error) {
	var f models.Facilitator
	if err := conn(r.db, tx).WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facilitatorRepository) FindAll(ctx context.Context) ([]models.Facilitator, error) {
	var out []models.Facilitator
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
