package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/pkg/auth"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/mail"
	"github.com/shashiranjanraj/voucherhub/pkg/workerpool"
)

// RegisterInput is the public sign-up payload.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserService struct {
	users  repositories.UserStore
	mailer mail.Sender
	pool   *workerpool.Pool
}

// NewUserService wires registration. mailer and pool may be nil, in which
// case no welcome mail is sent.
func NewUserService(users repositories.UserStore, mailer mail.Sender, pool *workerpool.Pool) *UserService {
	return &UserService{users: users, mailer: mailer, pool: pool}
}

// Register creates an active customer with zero points and queues the
// welcome mail.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("register: hash: %w", err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleCustomer,
		Active:   true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.User{}, invalid("email", "The email has already been taken.")
		}
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	s.sendWelcome(ctx, user)
	return user, nil
}

func (s *UserService) sendWelcome(ctx context.Context, user models.User) {
	if s.mailer == nil || s.pool == nil {
		return
	}

	log := logger.WithCtx(ctx)
	msg := mail.Welcome(user.Name, user.Email)
	err := s.pool.Submit(func() {
		if err := s.mailer.Send(msg); err != nil {
			log.Error("welcome mail failed", "user_id", user.ID.Hex(), "error", err)
		}
	})
	if err != nil {
		log.Warn("welcome mail not queued", "user_id", user.ID.Hex(), "error", err)
	}
}
