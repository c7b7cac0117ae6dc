package service

import (
	"context"
	"strings"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
)

type FacilitatorInput struct {
	Name       *string
	Role       *string
	Email      *string
	Phone      *string
	BaseFee    *float64
	Commission *float64
}

type FacilitatorService interface {
	CreateFacilitator(ctx context.Context, in FacilitatorInput) (*models.Facilitator, error)
	UpdateFacilitator(ctx context.Context, id uint, in FacilitatorInput) (*models.Facilitator, error)
	DeleteFacilitator(ctx context.Context, id uint) error
	GetFacilitator(ctx context.Context, id uint) (*models.Facilitator, error)
	ListFacilitators(ctx context.Context) ([]models.Facilitator, error)
}

type facilitatorService struct {
	repo     repository.FacilitatorRepository
	bookings repository.BookingRepository
}

func NewFacilitatorService(repo repository.FacilitatorRepository, bookings repository.BookingRepository) FacilitatorService {
	return &facilitatorService{repo: repo, bookings: bookings}
}

func (s *facilitatorService) CreateFacilitator(ctx context.Context, in FacilitatorInput) (*models.Facilitator, error) {
	f := &models.Facilitator{}
	if err := applyFacilitator(f, in); err != nil {
		return nil, err
	}
	if f.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, persistence("create facilitator", err)
	}
	return f, nil
}

func (s *facilitatorService) UpdateFacilitator(ctx context.Context, id uint, in FacilitatorInput) (*models.Facilitator, error) {
	f, err := s.GetFacilitator(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFacilitator(f, in); err != nil {
		return nil, err
	}
	if f.Name == "" {
		return nil, invalid("name must not be empty")
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, persistence("update facilitator", err)
	}
	return f, nil
}

func applyFacilitator(f *models.Facilitator, in FacilitatorInput) error {
	if in.Name != nil {
		f.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		f.Role = *in.Role
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !isValidEmail(email) {
			return invalid("email is not a valid email address")
		}
		f.Email = email
	}
	if in.Phone != nil {
		f.Phone = *in.Phone
	}
	if in.BaseFee != nil {
		if *in.BaseFee < 0 {
			return invalid("baseFee must not be negative")
		}
		f.BaseFee = *in.BaseFee
	}
	if in.Commission != nil {
		if *in.Commission < 0 || *in.Commission > 1 {
			return invalid("commission must be between 0 and 1")
		}
		f.Commission = *in.Commission
	}
	return nil
}

// DeleteFacilitator keeps existing bookings intact: they carry their own fee
// and facilitator name.
func (s *facilitatorService) DeleteFacilitator(ctx context.Context, id uint) error {
	if _, err := s.GetFacilitator(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistence("delete facilitator", err)
	}
	return nil
}

func (s *facilitatorService) GetFacilitator(ctx context.Context, id uint) (*models.Facilitator, error) {
	f, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrFacilitatorNotFound
		}
		return nil, persistence("load facilitator", err)
	}
	counts, err := s.bookings.CountActiveByFacilitators(ctx, []uint{id})
	if err != nil {
		return nil, persistence("count bookings", err)
	}
	f.AssignedBookings = counts[id]
	return f, nil
}

// ListFacilitators fills AssignedBookings with each facilitator's pending and
// confirmed bookings.
func (s *facilitatorService) ListFacilitators(ctx context.Context) ([]models.Facilitator, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list facilitators", err)
	}
	if len(list) == 0 {
		return list, nil
	}
	ids := make([]uint, len(list))
	for i, f := range list {
		ids[i] = f.ID
	}
	counts, err := s.bookings.CountActiveByFacilitators(ctx, ids)
	if err != nil {
		return nil, persistence("count bookings", err)
	}
	for i := range list {
		list[i].AssignedBookings = counts[list[i].ID]
	}
	return list, nil
}
