package models

import "time"

type Facilitator struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// Commission is a fraction of a booking's total, e.g. 0.3.
	BaseFee    float64 `gorm:"not null;default:0" json:"baseFee"`
	Commission float64 `gorm:"not null;default:0" json:"commission"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	AssignedBookings int64 `gorm:"-" json:"assignedBookings"`
}
