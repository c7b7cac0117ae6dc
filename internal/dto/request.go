package dto

import (
	"fmt"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
)

// ParseDate accepts a calendar date (2006-01-02) or a full RFC 3339 time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type CreateBookingRequest struct {
	SessionID      uint   `json:"sessionId"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	UserID         string `json:"userId"`
	NumberOfPeople int    `json:"numberOfPeople"`
	FacilitatorID  *uint  `json:"facilitatorId"`
	Notes          string `json:"notes"`
}

func (r CreateBookingRequest) ToInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		SessionID:      r.SessionID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		UserID:         r.UserID,
		NumberOfPeople: r.NumberOfPeople,
		FacilitatorID:  r.FacilitatorID,
		Notes:          r.Notes,
	}
}

type UpdateBookingStatusRequest struct {
	ID     uint                 `json:"id"`
	Status models.BookingStatus `json:"status"`
}

type EventRequest struct {
	ID              uint                `json:"id"`
	Title           *string             `json:"title"`
	Description     *string             `json:"description"`
	LongDescription *string             `json:"longDescription"`
	Category        *string             `json:"category"`
	Price           *float64            `json:"price"`
	Location        *string             `json:"location"`
	Status          *models.EventStatus `json:"status"`
}

func (r EventRequest) ToInput() service.EventInput {
	return service.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Category:        r.Category,
		Price:           r.Price,
		Location:        r.Location,
		Status:          r.Status,
	}
}

type SessionRequest struct {
	ID            uint                  `json:"id"`
	EventID       *uint                 `json:"eventId"`
	Date          *string               `json:"date"`
	Time          *string               `json:"time"`
	Location      *string               `json:"location"`
	Price         *float64              `json:"price"`
	Capacity      *int                  `json:"capacity"`
	Status        *models.SessionStatus `json:"status"`
	FacilitatorID *uint                 `json:"facilitatorId"`
}

func (r SessionRequest) ToInput() (service.SessionInput, error) {
	date, err := parseOptionalDate(r.Date)
	if err != nil {
		return service.SessionInput{}, err
	}
	return service.SessionInput{
		EventID:       r.EventID,
		Date:          date,
		StartTime:     r.Time,
		Location:      r.Location,
		Price:         r.Price,
		Capacity:      r.Capacity,
		Status:        r.Status,
		FacilitatorID: r.FacilitatorID,
	}, nil
}

type FacilitatorRequest struct {
	ID         uint     `json:"id"`
	Name       *string  `json:"name"`
	Role       *string  `json:"role"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	BaseFee    *float64 `json:"baseFee"`
	Commission *float64 `json:"commission"`
}

func (r FacilitatorRequest) ToInput() service.FacilitatorInput {
	return service.FacilitatorInput{
		Name:       r.Name,
		Role:       r.Role,
		Email:      r.Email,
		Phone:      r.Phone,
		BaseFee:    r.BaseFee,
		Commission: r.Commission,
	}
}

type CampaignRequest struct {
	ID        uint                   `json:"id"`
	Name      *string                `json:"name"`
	Channel   *string                `json:"channel"`
	Budget    *float64               `json:"budget"`
	StartDate *string                `json:"startDate"`
	EndDate   *string                `json:"endDate"`
	Status    *models.CampaignStatus `json:"status"`
}

func (r CampaignRequest) ToInput() (service.CampaignInput, error) {
	start, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return service.CampaignInput{}, err
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return service.CampaignInput{}, err
	}
	return service.CampaignInput{
		Name:      r.Name,
		Channel:   r.Channel,
		Budget:    r.Budget,
		StartDate: start,
		EndDate:   end,
		Status:    r.Status,
	}, nil
}

type CreateInvoiceRequest struct {
	BookingID uint   `json:"bookingId"`
	DueDate   string `json:"dueDate"`
}

type UpdateInvoiceStatusRequest struct {
	ID     uint                 `json:"id"`
	Status models.InvoiceStatus `json:"status"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	PaidAt *string `json:"paidAt"`
}

func (r PaymentRequest) ToInput() (service.PaymentInput, error) {
	paidAt, err := parseOptionalDate(r.PaidAt)
	if err != nil {
		return service.PaymentInput{}, err
	}
	in := service.PaymentInput{Amount: r.Amount, Method: r.Method}
	if paidAt != nil {
		in.PaidAt = *paidAt
	}
	return in, nil
}

type PermissionRequest struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}
