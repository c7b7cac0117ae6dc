package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
)

type PermissionRepository interface {
	Create(ctx context.Context, p *models.Permission) error
	Update(ctx context.Context, p *models.Permission) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Permission, error)
	FindByEmail(ctx context.Context, email string) (*models.Permission, error)
	FindAll(ctx context.Context) ([]models.Permission, error)
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Create(ctx context.Context, p *models.Permission) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *permissionRepository) Update(ctx context.Context, p *models.Permission) error {
	return translate(r.db.WithContext(ctx).Save(p).Error)
}

func (r *permissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Permission{}, id).Error
}

func (r *permissionRepository) FindByID(ctx context.Context, id uint) (*models.Permission, error) {
	var p models.Permission
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepository) FindByEmail(ctx context.Context, email string) (*models.Permission, error) {
	var p models.Permission
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permissionRepository) FindAll(ctx context.Context) ([]models.Permission, error) {
	var out []models.Permission
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
