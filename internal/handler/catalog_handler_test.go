package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, in service.EventInput) (*models.Event, error)
	updateFn func(ctx context.Context, id uint, in service.EventInput) (*models.Event, error)
	deleteFn func(ctx context.Context, id uint) error
	getFn    func(ctx context.Context, id uint) (*models.Event, error)
	listFn   func(ctx context.Context) ([]models.Event, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, in service.EventInput) (*models.Event, error) {
	return m.createFn(ctx, in)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, id uint, in service.EventInput) (*models.Event, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error { return m.deleteFn(ctx, id) }
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}

// --- Mock SessionService ---

type mockSessionService struct {
	createFn func(ctx context.Context, in service.SessionInput) (*service.SessionView, error)
	updateFn func(ctx context.Context, id uint, in service.SessionInput) (*service.SessionView, error)
	deleteFn func(ctx context.Context, id uint) error
	getFn    func(ctx context.Context, id uint) (*service.SessionView, error)
	listFn   func(ctx context.Context, eventID uint) ([]service.SessionView, error)
}

func (m *mockSessionService) CreateSession(ctx context.Context, in service.SessionInput) (*service.SessionView, error) {
	return m.createFn(ctx, in)
}
func (m *mockSessionService) UpdateSession(ctx context.Context, id uint, in service.SessionInput) (*service.SessionView, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockSessionService) DeleteSession(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockSessionService) GetSession(ctx context.Context, id uint) (*service.SessionView, error) {
	return m.getFn(ctx, id)
}
func (m *mockSessionService) ListSessions(ctx context.Context, eventID uint) ([]service.SessionView, error) {
	return m.listFn(ctx, eventID)
}

func catalog(events service.EventService, sessions service.SessionService) func(admin *echo.Group, e *echo.Echo) {
	return func(admin *echo.Group, e *echo.Echo) {
		NewCatalogHandler(events, sessions, nil).RegisterRoutes(admin)
	}
}

func TestCreateEvent_Handler(t *testing.T) {
	events := &mockEventService{
		createFn: func(ctx context.Context, in service.EventInput) (*models.Event, error) {
			require.NotNil(t, in.Title)
			return &models.Event{ID: 1, Title: *in.Title, Price: *in.Price}, nil
		},
	}

	rec := serve(catalog(events, nil), http.MethodPost, "/api/admin/events", `{"title":"Sound Bath","price":1200}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"event":{"id":1,"title":"Sound Bath"`)
}

func TestDeleteEvent_Handler_Conflict(t *testing.T) {
	events := &mockEventService{
		deleteFn: func(ctx context.Context, id uint) error {
			return fmt.Errorf("%w: event has 3 booked attendees", service.ErrConflict)
		},
	}

	rec := serve(catalog(events, nil), http.MethodDelete, "/api/admin/events?id=4", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict: event has 3 booked attendees", decodeError(t, rec).Error)
}

func TestListEvents_Handler(t *testing.T) {
	events := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{{ID: 1}, {ID: 2}}, nil
		},
	}

	rec := serve(catalog(events, nil), http.MethodGet, "/api/admin/events", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"events":[`)
}

func TestCreateSession_Handler(t *testing.T) {
	var got service.SessionInput
	sessions := &mockSessionService{
		createFn: func(ctx context.Context, in service.SessionInput) (*service.SessionView, error) {
			got = in
			return &service.SessionView{
				EventSession: models.EventSession{ID: 8, EventID: *in.EventID, Capacity: *in.Capacity, Status: models.SessionActive},
				Remaining:    *in.Capacity,
			}, nil
		},
	}

	rec := serve(catalog(nil, sessions), http.MethodPost, "/api/admin/sessions",
		`{"eventId":2,"date":"2025-06-01","time":"18:00","capacity":12}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got.Date)
	assert.Equal(t, time.June, got.Date.Month())
	assert.Equal(t, "18:00", *got.StartTime)
	assert.Contains(t, rec.Body.String(), `"remaining":12`)
	assert.Contains(t, rec.Body.String(), `"bookedCount":0`)
}

func TestCreateSession_Handler_BadDate(t *testing.T) {
	rec := serve(catalog(nil, &mockSessionService{}), http.MethodPost, "/api/admin/sessions", `{"eventId":2,"date":"tomorrow"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "invalid date")
}

func TestUpdateSession_Handler_CapacityBelowBooked(t *testing.T) {
	sessions := &mockSessionService{
		updateFn: func(ctx context.Context, id uint, in service.SessionInput) (*service.SessionView, error) {
			return nil, &service.ValidationError{Msg: "capacity cannot be lower than the 5 places already booked"}
		},
	}

	rec := serve(catalog(nil, sessions), http.MethodPut, "/api/admin/sessions", `{"id":3,"capacity":2}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSessions_Handler_ByEvent(t *testing.T) {
	var got uint
	sessions := &mockSessionService{
		listFn: func(ctx context.Context, eventID uint) ([]service.SessionView, error) {
			got = eventID
			return nil, nil
		},
	}

	rec := serve(catalog(nil, sessions), http.MethodGet, "/api/admin/sessions?eventId=6", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(6), got)
}
