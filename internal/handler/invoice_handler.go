package handler

import (
	"net/http"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct {
	svc service.InvoiceService
}

func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

func (h *InvoiceHandler) RegisterRoutes(admin *echo.Group) {
	g := admin.Group("/invoices")
	g.GET("", h.ListInvoices)
	g.POST("", h.CreateInvoice)
	g.PUT("", h.UpdateInvoiceStatus)
	g.GET("/:id", h.GetInvoice)
	g.GET("/:id/payments", h.ListPayments)
	g.POST("/:id/payments", h.RecordPayment)
}

func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	list, err := h.svc.ListInvoices(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("invoices", list))
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	inv, err := h.svc.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("invoice", inv))
}

func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	var req dto.CreateInvoiceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.DueDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "dueDate is required")
	}
	due, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return badRequest(err)
	}
	inv, err := h.svc.CreateInvoice(c.Request().Context(), req.BookingID, due)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("invoice", inv))
}

func (h *InvoiceHandler) UpdateInvoiceStatus(c echo.Context) error {
	var req dto.UpdateInvoiceStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	inv, err := h.svc.UpdateInvoiceStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("invoice", inv))
}

func (h *InvoiceHandler) ListPayments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	payments, err := h.svc.ListPayments(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("payments", payments))
}

func (h *InvoiceHandler) RecordPayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return badRequest(err)
	}
	payment, err := h.svc.RecordPayment(c.Request().Context(), id, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("payment", payment))
}
