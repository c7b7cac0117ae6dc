package models

import "time"

// RevenueRollup is the materialized monthly aggregate of confirmed bookings,
// keyed by the YYYY-MM of the booking's event date.
type RevenueRollup struct {
	Period          string    `gorm:"type:varchar(7);primaryKey" json:"period"`
	Revenue         float64   `gorm:"not null;default:0" json:"revenue"`
	FacilitatorCost float64   `gorm:"not null;default:0" json:"facilitatorCost"`
	Bookings        int64     `gorm:"not null;default:0" json:"bookings"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppliedTransition records a booking status change already counted in the
// rollups. A redelivered event finds its row and is skipped.
type AppliedTransition struct {
	BookingID  uint          `gorm:"primaryKey;autoIncrement:false"`
	FromStatus BookingStatus `gorm:"type:varchar(20);primaryKey"`
	ToStatus   BookingStatus `gorm:"type:varchar(20);primaryKey"`
	AppliedAt  time.Time
}

func (AppliedTransition) TableName() string { return "rollup_applied" }
