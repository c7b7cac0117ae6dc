package service

import "github.com/Eursukkul/ojasen-backoffice/internal/models"

var bookingTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled},
}

// Allowed reports whether a booking may move from one status to another.
// Staying in the same status is always allowed.
func Allowed(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
