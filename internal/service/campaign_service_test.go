package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock CampaignRepository ---

type mockCampaignRepo struct {
	campaigns map[uint]*models.Campaign
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	c.ID = uint(len(m.campaigns) + 1)
	cp := *c
	m.campaigns[c.ID] = &cp
	return nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	cp := *c
	m.campaigns[c.ID] = &cp
	return nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id uint) error {
	delete(m.campaigns, id)
	return nil
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id uint) (*models.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCampaignRepo) FindAll(ctx context.Context) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range m.campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func TestCampaignService_CRUD(t *testing.T) {
	repo := &mockCampaignRepo{campaigns: map[uint]*models.Campaign{}}
	svc := NewCampaignService(repo, fakeBookingRepo{newStore()})
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err := svc.CreateCampaign(ctx, CampaignInput{Name: ptr("Summer"), StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateCampaign(ctx, CampaignInput{Name: ptr("Summer"), Budget: ptr(-5.0)})
	assert.ErrorIs(t, err, ErrValidation)

	c, err := svc.CreateCampaign(ctx, CampaignInput{Name: ptr("Summer"), Channel: ptr("instagram"), Budget: ptr(5000.0)})
	require.NoError(t, err)
	assert.Equal(t, models.CampaignDraft, c.Status)

	updated, err := svc.UpdateCampaign(ctx, c.ID, CampaignInput{Status: ptr(models.CampaignActive)})
	require.NoError(t, err)
	assert.Equal(t, models.CampaignActive, updated.Status)

	_, err = svc.UpdateCampaign(ctx, 99, CampaignInput{})
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	require.NoError(t, svc.DeleteCampaign(ctx, c.ID))
	assert.ErrorIs(t, svc.DeleteCampaign(ctx, c.ID), ErrCampaignNotFound)
}

func TestCampaignService_Performance(t *testing.T) {
	repo := &mockCampaignRepo{campaigns: map[uint]*models.Campaign{
		1: {ID: 1, Name: "A", Budget: 1000, Status: models.CampaignActive},
		2: {ID: 2, Name: "B", Budget: 250.5, Status: models.CampaignCompleted},
	}}
	db := newStore()
	db.bookings[1] = &models.Booking{ID: 1, Status: models.StatusCancelled}
	db.bookings[2] = &models.Booking{ID: 2, Status: models.StatusPending}
	db.bookings[3] = &models.Booking{ID: 3, Status: models.StatusConfirmed}
	svc := NewCampaignService(repo, fakeBookingRepo{db})

	report, err := svc.Performance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalBookings)
	assert.Equal(t, 1, report.PendingBookings)
	assert.Equal(t, 33.33, report.CancellationRate)
	assert.Equal(t, 1250.5, report.TotalBudget)
	assert.Equal(t, 1000.0, report.ActiveBudget)
	assert.Equal(t, 1, report.ActiveCampaigns)
}
