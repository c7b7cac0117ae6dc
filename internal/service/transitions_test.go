package service

import (
	"testing"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusConfirmed, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
