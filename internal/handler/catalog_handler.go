package handler

import (
	"net/http"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	events       service.EventService
	sessions     service.SessionService
	facilitators service.FacilitatorService
}

func NewCatalogHandler(events service.EventService, sessions service.SessionService, facilitators service.FacilitatorService) *CatalogHandler {
	return &CatalogHandler{events: events, sessions: sessions, facilitators: facilitators}
}

func (h *CatalogHandler) RegisterRoutes(admin *echo.Group) {
	ev := admin.Group("/events")
	ev.GET("", h.ListEvents)
	ev.POST("", h.CreateEvent)
	ev.PUT("", h.UpdateEvent)
	ev.DELETE("", h.DeleteEvent)
	ev.GET("/:id", h.GetEvent)

	ss := admin.Group("/sessions")
	ss.GET("", h.ListSessions)
	ss.POST("", h.CreateSession)
	ss.PUT("", h.UpdateSession)
	ss.DELETE("", h.DeleteSession)
	ss.GET("/:id", h.GetSession)

	fc := admin.Group("/facilitators")
	fc.GET("", h.ListFacilitators)
	fc.POST("", h.CreateFacilitator)
	fc.PUT("", h.UpdateFacilitator)
	fc.DELETE("", h.DeleteFacilitator)
	fc.GET("/:id", h.GetFacilitator)
}

// --- events ---

func (h *CatalogHandler) ListEvents(c echo.Context) error {
	events, err := h.events.ListEvents(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("events", events))
}

func (h *CatalogHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	event, err := h.events.GetEvent(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("event", event))
}

func (h *CatalogHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	event, err := h.events.CreateEvent(c.Request().Context(), req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("event", event))
}

func (h *CatalogHandler) UpdateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	event, err := h.events.UpdateEvent(c.Request().Context(), req.ID, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("event", event))
}

func (h *CatalogHandler) DeleteEvent(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.events.DeleteEvent(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DeletedResponse{Success: true, ID: id})
}

// --- sessions ---

func (h *CatalogHandler) ListSessions(c echo.Context) error {
	var eventID uint
	if raw := c.QueryParam("eventId"); raw != "" {
		id, err := parseID(raw, "eventId")
		if err != nil {
			return err
		}
		eventID = id
	}
	sessions, err := h.sessions.ListSessions(c.Request().Context(), eventID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("sessions", sessions))
}

func (h *CatalogHandler) GetSession(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	session, err := h.sessions.GetSession(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("session", session))
}

func (h *CatalogHandler) CreateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return badRequest(err)
	}
	session, err := h.sessions.CreateSession(c.Request().Context(), in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("session", session))
}

func (h *CatalogHandler) UpdateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	in, err := req.ToInput()
	if err != nil {
		return badRequest(err)
	}
	session, err := h.sessions.UpdateSession(c.Request().Context(), req.ID, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("session", session))
}

func (h *CatalogHandler) DeleteSession(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.sessions.DeleteSession(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DeletedResponse{Success: true, ID: id})
}

// --- facilitators ---

func (h *CatalogHandler) ListFacilitators(c echo.Context) error {
	list, err := h.facilitators.ListFacilitators(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("facilitators", list))
}

func (h *CatalogHandler) GetFacilitator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f, err := h.facilitators.GetFacilitator(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("facilitator", f))
}

func (h *CatalogHandler) CreateFacilitator(c echo.Context) error {
	var req dto.FacilitatorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	f, err := h.facilitators.CreateFacilitator(c.Request().Context(), req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("facilitator", f))
}

func (h *CatalogHandler) UpdateFacilitator(c echo.Context) error {
	var req dto.FacilitatorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	f, err := h.facilitators.UpdateFacilitator(c.Request().Context(), req.ID, req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("facilitator", f))
}

func (h *CatalogHandler) DeleteFacilitator(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.facilitators.DeleteFacilitator(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DeletedResponse{Success: true, ID: id})
}
