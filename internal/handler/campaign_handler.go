package handler

import (
	"net/http"

	"github.com/Eursukkul/ojasen-backoffice/internal/dto"
	"github.com/Eursukkul/ojasen-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

type CampaignHandler struct {
	svc service.CampaignService
}

func NewCampaignHandler(svc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

func (h *CampaignHandler) RegisterRoutes(admin *echo.Group) {
	g := admin.Group("/campaigns")
	g.GET("", h.ListCampaigns)
	g.POST("", h.CreateCampaign)
	g.PUT("", h.UpdateCampaign)
	g.DELETE("", h.DeleteCampaign)
	g.GET("/performance", h.Performance)
}

func (h *CampaignHandler) ListCampaigns(c echo.Context) error {
	list, err := h.svc.ListCampaigns(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("campaigns", list))
}

func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	var req dto.CampaignRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return badRequest(err)
	}
	campaign, err := h.svc.CreateCampaign(c.Request().Context(), in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.Envelope("campaign", campaign))
}

func (h *CampaignHandler) UpdateCampaign(c echo.Context) error {
	var req dto.CampaignRequest
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
	campaign, err := h.svc.UpdateCampaign(c.Request().Context(), req.ID, in)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("campaign", campaign))
}

func (h *CampaignHandler) DeleteCampaign(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCampaign(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.DeletedResponse{Success: true, ID: id})
}

func (h *CampaignHandler) Performance(c echo.Context) error {
	report, err := h.svc.Performance(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.Envelope("performance", report))
}
