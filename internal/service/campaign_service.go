package service

import (
	"context"
	"strings"
	"time"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/reporting"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
)

type CampaignInput struct {
	Name      *string
	Channel   *string
	Budget    *float64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *models.CampaignStatus
}

// CampaignReport pairs booking outcomes with what the campaigns cost.
type CampaignReport struct {
	reporting.CampaignPerformance
	TotalBudget     float64 `json:"totalBudget"`
	ActiveBudget    float64 `json:"activeBudget"`
	ActiveCampaigns int     `json:"activeCampaigns"`
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, in CampaignInput) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, id uint, in CampaignInput) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, id uint) error
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	Performance(ctx context.Context) (*CampaignReport, error)
}

type campaignService struct {
	repo     repository.CampaignRepository
	bookings repository.BookingRepository
}

func NewCampaignService(repo repository.CampaignRepository, bookings repository.BookingRepository) CampaignService {
	return &campaignService{repo: repo, bookings: bookings}
}

func (s *campaignService) CreateCampaign(ctx context.Context, in CampaignInput) (*models.Campaign, error) {
	c := &models.Campaign{Status: models.CampaignDraft}
	if err := applyCampaign(c, in); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, persistence("create campaign", err)
	}
	return c, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, id uint, in CampaignInput) (*models.Campaign, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCampaignNotFound
		}
		return nil, persistence("load campaign", err)
	}
	if err := applyCampaign(c, in); err != nil {
		return nil, err
	}
	if c.Name == "" {
		return nil, invalid("name must not be empty")
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, persistence("update campaign", err)
	}
	return c, nil
}

func applyCampaign(c *models.Campaign, in CampaignInput) error {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Channel != nil {
		c.Channel = strings.TrimSpace(*in.Channel)
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return invalid("budget must not be negative")
		}
		c.Budget = *in.Budget
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return invalid("endDate must not be before startDate")
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status must be one of draft, active, completed")
		}
		c.Status = *in.Status
	}
	return nil
}

func (s *campaignService) DeleteCampaign(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCampaignNotFound
		}
		return persistence("load campaign", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistence("delete campaign", err)
	}
	return nil
}

func (s *campaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list campaigns", err)
	}
	return list, nil
}

func (s *campaignService) Performance(ctx context.Context) (*CampaignReport, error) {
	bookings, err := s.bookings.FindAll(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, persistence("load bookings", err)
	}
	campaigns, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list campaigns", err)
	}

	report := &CampaignReport{CampaignPerformance: reporting.CampaignPerformanceOf(bookings)}
	for _, c := range campaigns {
		report.TotalBudget += c.Budget
		if c.Status == models.CampaignActive {
			report.ActiveBudget += c.Budget
			report.ActiveCampaigns++
		}
	}
	report.TotalBudget = reporting.RoundMoney(report.TotalBudget)
	report.ActiveBudget = reporting.RoundMoney(report.ActiveBudget)
	return report, nil
}
