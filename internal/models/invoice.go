package models

import "time"

type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceVoid:
		return true
	}
	return false
}

type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Number        string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	BookingID     uint          `gorm:"not null;index" json:"bookingId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `gorm:"index" json:"customerEmail"`
	Amount        float64       `gorm:"not null" json:"amount"`
	DueDate       time.Time     `json:"dueDate"`
	Status        InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Payments []Payment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InvoiceID uint      `gorm:"not null;index" json:"invoiceId"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Method    string    `gorm:"type:varchar(30)" json:"method"`
	PaidAt    time.Time `json:"paidAt"`
	CreatedAt time.Time `json:"createdAt"`
}
