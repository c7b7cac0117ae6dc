package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB connects, sizes the pool and migrates every table.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Event{},
		&models.Facilitator{},
		&models.EventSession{},
		&models.Booking{},
		&models.Campaign{},
		&models.Invoice{},
		&models.Payment{},
		&models.Permission{},
		&models.RevenueRollup{},
		&models.AppliedTransition{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Capacity sums filter on session and status on every booking.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_session_status
		ON bookings (session_id, status)
	`).Error; err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}
	return nil
}
