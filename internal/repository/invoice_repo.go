package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	FindByID(ctx context.Context, id uint) (*models.Invoice, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Invoice, error)
	FindAll(ctx context.Context) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.InvoiceStatus) error
	AddPayment(ctx context.Context, tx *gorm.DB, p *models.Payment) error
	FindPayments(ctx context.Context, tx *gorm.DB, invoiceID uint) ([]models.Payment, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error)
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).Preload("Payments").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.InvoiceStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) AddPayment(ctx context.Context, tx *gorm.DB, p *models.Payment) error {
	return conn(r.db, tx).WithContext(ctx).Create(p).Error
}

func (r *invoiceRepository) FindPayments(ctx context.Context, tx *gorm.DB, invoiceID uint) ([]models.Payment, error) {
	var out []models.Payment
	if err := conn(r.db, tx).WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
