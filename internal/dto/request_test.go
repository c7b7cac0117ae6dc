package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2025-04-30T10:15:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, 3, ts.UTC().Hour())

	_, err = ParseDate("30/04/2025")
	assert.Error(t, err)
}

func TestSessionRequest_ToInput(t *testing.T) {
	date := "2025-06-01"
	capacity := 12
	in, err := SessionRequest{Date: &date, Capacity: &capacity}.ToInput()
	require.NoError(t, err)
	require.NotNil(t, in.Date)
	assert.Equal(t, 2025, in.Date.Year())
	assert.Equal(t, 12, *in.Capacity)

	bad := "June 1st"
	_, err = SessionRequest{Date: &bad}.ToInput()
	assert.Error(t, err)

	empty := ""
	in, err = SessionRequest{Date: &empty}.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.Date)
}

func TestPaymentRequest_ToInput(t *testing.T) {
	in, err := PaymentRequest{Amount: 10, Method: "cash"}.ToInput()
	require.NoError(t, err)
	assert.True(t, in.PaidAt.IsZero())

	at := "2025-02-03"
	in, err = PaymentRequest{Amount: 10, PaidAt: &at}.ToInput()
	require.NoError(t, err)
	assert.Equal(t, time.February, in.PaidAt.Month())
}
