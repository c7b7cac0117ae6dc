package handler

import (
	"net/http"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type PermissionHandler struct {
	svc service.PermissionService
}

func NewPermissionHandler(svc service.PermissionService) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

// RegisterRoutes mounts the permission endpoints; guard restricts them
// further than the admin group does.
func (h *PermissionHandler) RegisterRoutes(admin *echo.Group, guard ...echo.MiddlewareFunc) {
	g := admin.Group("/permissions", guard...)
	g.GET("", h.ListPermissions)
	g.POST("", h.CreatePermission)
	g.PUT("", h.UpdatePermission)
	g.DELETE("", h.DeletePermission)
}

func (h *PermissionHandler) ListPermissions(c echo.Context) error {
	list, err := h.svc.ListPermissions(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("permissions", list))
}

func (h *PermissionHandler) CreatePermission(c echo.Context) error {
	var req dto.PermissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.CreatePermission(c.Request().Context(), req.Email, req.Role)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("permission", p))
}

func (h *PermissionHandler) UpdatePermission(c echo.Context) error {
	var req dto.PermissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	p, err := h.svc.UpdatePermission(c.Request().Context(), req.ID, req.Role)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("permission", p))
}

func (h *PermissionHandler) DeletePermission(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePermission(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DeletedResponse{Success: true, ID: id})
}
