package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

const (
	roleListKey = "roles:list"
	roleListTTL = 5 * time.Minute
)

// Cache is the subset of *cache.Store the role catalogue uses.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RoleInput is the create/update payload.
type RoleInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"nullable,max=255"`
	IsDefault   bool   `json:"isDefault"`
}

type RoleService struct {
	roles    repositories.RoleStore
	profiles repositories.ProfileStore
	cache    Cache
}

func NewRoleService(roles repositories.RoleStore, profiles repositories.ProfileStore, cache Cache) *RoleService {
	return &RoleService{roles: roles, profiles: profiles, cache: cache}
}

// List returns every role sorted by name, served from cache when warm.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if s.cache != nil && s.cache.Get(ctx, roleListKey, &roles) {
		return roles, nil
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, roleListKey, roles, roleListTTL); err != nil {
			logger.WithCtx(ctx).Warn("role list not cached", "error", err)
		}
	}
	return roles, nil
}

func (s *RoleService) Find(ctx context.Context, id string) (models.Role, error) {
	return s.roles.Find(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, in RoleInput) (models.Role, error) {
	if err := s.ensureNameFree(ctx, in.Name, ""); err != nil {
		return models.Role{}, err
	}

	role := models.Role{Name: in.Name, Description: in.Description, IsDefault: in.IsDefault}
	if err := s.roles.Create(ctx, &role); err != nil {
		return models.Role{}, nameErr(err)
	}
	s.invalidate(ctx)
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id string, in RoleInput) (models.Role, error) {
	role, err := s.roles.Find(ctx, id)
	if err != nil {
		return models.Role{}, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return models.Role{}, err
	}

	role.Name, role.Description, role.IsDefault = in.Name, in.Description, in.IsDefault
	if err := s.roles.Update(ctx, &role); err != nil {
		return models.Role{}, nameErr(err)
	}
	s.invalidate(ctx)
	return role, nil
}

// Delete removes a role no profile references. A referenced role is kept
// and ErrInUse returned.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.Find(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.profiles.CountByRole(ctx, role.ID)
	if err != nil {
		return fmt.Errorf("delete role: count profiles: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: role %q is assigned to %d profile(s)", repositories.ErrInUse, role.Name, n)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.roles.FindByName(ctx, name)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check role name: %w", err)
	case existing.ID.Hex() == selfID:
		return nil
	}
	return invalid("name", "The name has already been taken.")
}

func nameErr(err error) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return invalid("name", "The name has already been taken.")
	}
	return err
}

func (s *RoleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, roleListKey); err != nil {
		logger.WithCtx(ctx).Warn("role list cache not invalidated", "error", err)
	}
}
