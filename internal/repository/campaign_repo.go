package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(ctx context.Context, c *models.Campaign) error
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Campaign, error)
	FindAll(ctx context.Context) ([]models.Campaign, error)
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *campaignRepository) Update(ctx context.Context, c *models.Campaign) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *campaignRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Campaign{}, id).Error
}

func (r *campaignRepository) FindByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepository) FindAll(ctx context.Context) ([]models.Campaign, error) {
	var out []models.Campaign
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
