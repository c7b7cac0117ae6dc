package handler

import (
	"net/http"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/middleware"
	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(admin *echo.Group) {
	g := admin.Group("/bookings")
	g.GET("", h.ListBookings)
	g.POST("", h.CreateBooking)
	g.PUT("", h.UpdateBookingStatus)
	g.DELETE("", h.CancelBooking)
	g.GET("/:id", h.GetBooking)
}

// RegisterPublicRoutes mounts the customer-facing booking endpoints. create
// wraps POST only, e.g. with a rate limiter.
func (h *BookingHandler) RegisterPublicRoutes(g *echo.Group, create ...echo.MiddlewareFunc) {
	g.GET("/bookings", h.MyBookings)
	g.POST("/bookings", h.CreatePublicBooking, create...)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	filter := repository.BookingFilter{
		CustomerEmail: c.QueryParam("email"),
		UserID:        c.QueryParam("userId"),
		Status:        models.BookingStatus(c.QueryParam("status")),
	}
	if raw := c.QueryParam("sessionId"); raw != "" {
		id, err := parseID(raw, "sessionId")
		if err != nil {
			return err
		}
		filter.SessionID = id
	}

	bookings, err := h.svc.GetAllBookings(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("bookings", bookings))
}

// MyBookings lists the signed-in customer's bookings. Lookups by email are
// admin-only, on ListBookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "sign in to list your bookings")
	}
	bookings, err := h.svc.GetBookingsByUserID(c.Request().Context(), uid)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("bookings", bookings))
}

// CreateBooking is the admin form: userId and facilitatorId are taken from
// the body.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.create(c, req)
}

// CreatePublicBooking books for the caller. The user id comes from the token
// only, and the facilitator is always the session's.
func (h *BookingHandler) CreatePublicBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.UserID = middleware.UserID(c)
	req.FacilitatorID = nil
	return h.create(c, req)
}

func (h *BookingHandler) create(c echo.Context, req dto.CreateBookingRequest) error {
	booking, err := h.svc.CreateBooking(c.Request().Context(), req.ToInput())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("booking", booking))
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	var req dto.UpdateBookingStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("booking", booking))
}

// CancelBooking backs DELETE. Bookings are cancelled, never removed.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), id, models.StatusCancelled)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("booking", booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("booking", booking))
}
