package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes. The message is passed
// through unchanged.
func toHTTPError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, repository.ErrDuplicate):
		code = http.StatusConflict
	}
	return echo.NewHTTPError(code, err.Error())
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func pathID(c echo.Context) (uint, error) {
	return parseID(c.Param("id"), "id")
}

// queryID reads the ?id= parameter used by the collection-style endpoints.
func queryID(c echo.Context) (uint, error) {
	raw := c.QueryParam("id")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return parseID(raw, "id")
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
