package reporting

import (
	"sort"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
)

// Customer is a booking contact as seen by the back office. Name and phone
// come from the customer's most recent booking.
type Customer struct {
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	TotalBookings     int       `json:"totalBookings"`
	ConfirmedBookings int       `json:"confirmedBookings"`
	TotalSpent        float64   `json:"totalSpent"`
	LastBookingAt     time.Time `json:"lastBookingAt"`
}

// Customers groups bookings of every status by email, most recently active
// customer first.
func Customers(bookings []models.Booking) []Customer {
	acc := make(map[string]*Customer)
	for i := range bookings {
		b := &bookings[i]
		c, ok := acc[b.CustomerEmail]
		if !ok {
			c = &Customer{Email: b.CustomerEmail}
			acc[b.CustomerEmail] = c
		}
		c.TotalBookings++
		if confirmed(b) {
			c.ConfirmedBookings++
			c.TotalSpent += b.TotalPrice
		}
		if !b.CreatedAt.Before(c.LastBookingAt) {
			c.LastBookingAt = b.CreatedAt
			c.Name = b.CustomerName
			c.Phone = b.CustomerPhone
		}
	}

	out := make([]Customer, 0, len(acc))
	for _, c := range acc {
		c.TotalSpent = RoundMoney(c.TotalSpent)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastBookingAt.Equal(out[j].LastBookingAt) {
			return out[i].LastBookingAt.After(out[j].LastBookingAt)
		}
		return out[i].Email < out[j].Email
	})
	return out
}
