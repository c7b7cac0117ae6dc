package models

import "time"

type EventStatus string

const (
	EventActive   EventStatus = "active"
	EventInactive EventStatus = "inactive"
	EventArchived EventStatus = "archived"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventActive, EventInactive, EventArchived:
		return true
	}
	return false
}

// Event is the template a Session is scheduled from. Price and Location are
// defaults copied onto new sessions.
type Event struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"not null" json:"title"`
	Description     string      `json:"description"`
	LongDescription string      `json:"longDescription"`
	Category        string      `gorm:"index" json:"category"`
	Price           float64     `gorm:"not null;default:0" json:"price"`
	Location        string      `json:"location"`
	Status          EventStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`

	Sessions []EventSession `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}
