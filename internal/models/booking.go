package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking references its session by id only, without a foreign key: a
// session or event can only be deleted while none of its bookings are
// pending or confirmed, and cancelled history must outlive it. EventName,
// EventDate and FacilitatorName are written once at creation so history
// survives edits to (or removal of) the session and event. The facilitator
// is a real foreign key that is nulled when the facilitator is deleted.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Reference       string        `gorm:"type:varchar(36);uniqueIndex" json:"reference"`
	SessionID       uint          `gorm:"not null;index" json:"sessionId"`
	EventName       string        `json:"eventName"`
	EventDate       time.Time     `gorm:"index" json:"eventDate"`
	CustomerName    string        `gorm:"not null" json:"customerName"`
	CustomerEmail   string        `gorm:"not null;index" json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	UserID          *string       `gorm:"index" json:"userId,omitempty"`
	NumberOfPeople  int           `gorm:"not null;default:1" json:"numberOfPeople"`
	PricePerPerson  float64       `gorm:"not null;default:0" json:"pricePerPerson"`
	TotalPrice      float64       `gorm:"not null;default:0" json:"totalPrice"`
	OjasenFee       float64       `gorm:"not null;default:0" json:"ojasenFee"`
	FacilitatorFee  float64       `gorm:"not null;default:0" json:"facilitatorFee"`
	FacilitatorID   *uint         `gorm:"index" json:"facilitatorId,omitempty"`
	FacilitatorName string        `json:"facilitatorName,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Facilitator *Facilitator `gorm:"foreignKey:FacilitatorID;constraint:OnDelete:SET NULL" json:"-"`
}
