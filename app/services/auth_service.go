package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/auth"
)

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

type AuthService struct {
	users repositories.UserStore
}

func NewAuthService(users repositories.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login checks email and password and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("login: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !user.Active {
		return TokenPair{}, ErrInactive
	}

	access, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("login: sign access token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID.Hex(), user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("login: sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh exchanges a refresh token for a new access token. The role is
// re-read so a demoted user does not keep admin rights.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if !user.Active {
		return "", ErrInactive
	}
	return auth.GenerateToken(user.ID.Hex(), user.Role)
}

// Me loads the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	return s.users.FindByID(ctx, userID)
}
