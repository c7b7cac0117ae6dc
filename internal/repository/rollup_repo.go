package repository

import (
	"context"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RollupRepository interface {
	// Apply records mark and adds delta to its period in one transaction.
	// applied is false when mark was already recorded; nothing changes then.
	Apply(ctx context.Context, mark models.AppliedTransition, delta models.RevenueRollup) (applied bool, err error)
	// Replace swaps every period for rows.
	Replace(ctx context.Context, rows []models.RevenueRollup) error
	FindAll(ctx context.Context) ([]models.RevenueRollup, error)
}

type rollupRepository struct {
	db *gorm.DB
}

func NewRollupRepository(db *gorm.DB) RollupRepository {
	return &rollupRepository{db: db}
}

func (r *rollupRepository) Apply(ctx context.Context, mark models.AppliedTransition, delta models.RevenueRollup) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&mark)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "period"}},
			DoUpdates: clause.Assignments(map[string]any{
				"revenue":          gorm.Expr("revenue_rollups.revenue + EXCLUDED.revenue"),
				"facilitator_cost": gorm.Expr("revenue_rollups.facilitator_cost + EXCLUDED.facilitator_cost"),
				"bookings":         gorm.Expr("revenue_rollups.bookings + EXCLUDED.bookings"),
				"updated_at":       gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).Create(&delta).Error
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *rollupRepository) Replace(ctx context.Context, rows []models.RevenueRollup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Blocks concurrent Apply upserts until the new totals commit.
		if err := tx.Exec("LOCK TABLE revenue_rollups IN EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.RevenueRollup{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *rollupRepository) FindAll(ctx context.Context) ([]models.RevenueRollup, error) {
	var out []models.RevenueRollup
	if err := r.db.WithContext(ctx).Order("period ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
