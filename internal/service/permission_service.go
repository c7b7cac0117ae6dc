package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/ojasen-backoffice/internal/models"
	"github.com/Eursukkul/ojasen-backoffice/internal/repository"
)

type PermissionService interface {
	CreatePermission(ctx context.Context, email string, role models.Role) (*models.Permission, error)
	UpdatePermission(ctx context.Context, id uint, role models.Role) (*models.Permission, error)
	DeletePermission(ctx context.Context, id uint) error
	ListPermissions(ctx context.Context) ([]models.Permission, error)
	// Resolve returns the role granted to email, or ErrForbidden.
	Resolve(ctx context.Context, email string) (models.Role, error)
	// EnsureAdmin grants admin to email unless it already holds a permission.
	EnsureAdmin(ctx context.Context, email string) error
}

type permissionService struct {
	repo repository.PermissionRepository
}

func NewPermissionService(repo repository.PermissionRepository) PermissionService {
	return &permissionService{repo: repo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *permissionService) CreatePermission(ctx context.Context, email string, role models.Role) (*models.Permission, error) {
	email = normalizeEmail(email)
	if email == "" || !isValidEmail(email) {
		return nil, invalid("a valid email is required")
	}
	if !role.Valid() {
		return nil, invalid("role must be one of admin, staff, viewer")
	}
	p := &models.Permission{Email: email, Role: role}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: permission for %s already exists", ErrConflict, email)
		}
		return nil, persistence("create permission", err)
	}
	return p, nil
}

func (s *permissionService) UpdatePermission(ctx context.Context, id uint, role models.Role) (*models.Permission, error) {
	if !role.Valid() {
		return nil, invalid("role must be one of admin, staff, viewer")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPermissionNotFound
		}
		return nil, persistence("load permission", err)
	}
	p.Role = role
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, persistence("update permission", err)
	}
	return p, nil
}

func (s *permissionService) DeletePermission(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrPermissionNotFound
		}
		return persistence("load permission", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistence("delete permission", err)
	}
	return nil
}

func (s *permissionService) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, persistence("list permissions", err)
	}
	return list, nil
}

func (s *permissionService) Resolve(ctx context.Context, email string) (models.Role, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrForbidden
	}
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrForbidden
		}
		return "", persistence("load permission", err)
	}
	return p.Role, nil
}

func (s *permissionService) EnsureAdmin(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !repository.IsNotFound(err) {
		return persistence("load permission", err)
	}
	if err := s.repo.Create(ctx, &models.Permission{Email: email, Role: models.RoleAdmin}); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return persistence("create permission", err)
	}
	return nil
}
