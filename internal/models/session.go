package models

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionFull      SessionStatus = "full"
	SessionCancelled SessionStatus = "cancelled"
	SessionCompleted SessionStatus = "completed"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionFull, SessionCancelled, SessionCompleted:
		return true
	}
	return false
}

// EventSession is one scheduled occurrence of an Event.
type EventSession struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	EventID       uint          `gorm:"not null;index" json:"eventId"`
	Date          time.Time     `gorm:"not null" json:"date"`
	StartTime     string        `gorm:"type:varchar(5)" json:"time"`
	Location      string        `json:"location"`
	Price         float64       `gorm:"not null;default:0" json:"price"`
	Capacity      int           `gorm:"not null" json:"capacity"`
	Status        SessionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	FacilitatorID *uint         `gorm:"index" json:"facilitatorId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Event       *Event       `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Facilitator *Facilitator `gorm:"foreignKey:FacilitatorID;constraint:OnDelete:SET NULL" json:"-"`
}

// Open reports whether the session still takes bookings. A full session is
// open: capacity is decided by the guard, not by the status flag.
func (s *EventSession) Open() bool {
	return s.Status == SessionActive || s.Status == SessionFull
}
