package handler

import (
	"net/http"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/financial-reports", h.FinancialReport)
	admin.GET("/financial-reports/rollups", h.Rollups)
	admin.POST("/financial-reports/rollups/rebuild", h.RebuildRollups)
	admin.GET("/customers", h.Customers)
}

// FinancialReport accepts optional from and to dates (YYYY-MM-DD). to is
// inclusive of that whole day.
func (h *ReportHandler) FinancialReport(c echo.Context) error {
	var from, to time.Time
	if raw := c.QueryParam("from"); raw != "" {
		t, err := dto.ParseDate(raw)
		if err != nil {
			return badRequest(err)
		}
		from = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := dto.ParseDate(raw)
		if err != nil {
			return badRequest(err)
		}
		to = t.AddDate(0, 0, 1)
	}

	report, err := h.svc.FinancialReport(c.Request().Context(), from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("report", report))
}

func (h *ReportHandler) Rollups(c echo.Context) error {
	rollups, err := h.svc.Rollups(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("rollups", rollups))
}

func (h *ReportHandler) RebuildRollups(c echo.Context) error {
	rollups, err := h.svc.RebuildRollups(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("rollups", rollups))
}

func (h *ReportHandler) Customers(c echo.Context) error {
	customers, err := h.svc.Customers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("customers", customers))
}
