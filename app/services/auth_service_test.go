package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories/memory"
	"github.com/shashiranjanraj/voucherhub/pkg/auth"
)

func seedUser(t *testing.T, users *memory.Users, email, password string, active bool) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := models.User{Email: email, Name: "Test", Password: hash, Role: models.RoleCustomer, Active: active}
	require.NoError(t, users.Create(context.Background(), &u))
	return u
}

func TestLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers()
	seeded := seedUser(t, users, "bob@x.com", "secret123", true)
	svc := NewAuthService(users)

	pair, err := svc.Login(ctx, "BOB@x.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, seeded.ID, pair.User.ID)

	claims, err := auth.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	// Role changes take effect on refresh.
	require.NoError(t, users.SetRole(ctx, seeded.ID, models.RoleAdmin))
	access, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err = auth.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := svc.Me(ctx, seeded.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", me.Email)
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers()
	seedUser(t, users, "bob@x.com", "secret123", true)
	seedUser(t, users, "off@x.com", "secret123", false)
	svc := NewAuthService(users)

	_, err := svc.Login(ctx, "bob@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "off@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInactive)
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers()
	svc := NewAdminService(users)

	created, err := svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	n, err := users.CountByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	admin, err := users.FindByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.True(t, auth.CheckPassword(admin.Password, AdminPassword))
}
