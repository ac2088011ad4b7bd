package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/auth"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

// Bootstrap account. The password is public and must be rotated after the
// first login.
const (
	AdminEmail    = "admin@voucherhub.local"
	AdminName     = "Administrator"
	AdminPassword = "ChangeMe123!"
)

type AdminService struct {
	users repositories.UserStore
}

func NewAdminService(users repositories.UserStore) *AdminService {
	return &AdminService{users: users}
}

// Bootstrap creates the admin account, or resets its password, role and
// active flag when it already exists. It reports whether it was created.
func (s *AdminService) Bootstrap(ctx context.Context) (bool, error) {
	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: hash: %w", err)
	}

	created, err := s.users.UpsertAdmin(ctx, AdminEmail, AdminName, hash)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	logger.WithCtx(ctx).Warn("admin account uses the default password, change it now",
		"email", AdminEmail, "created", created)
	return created, nil
}
