package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
)

func TestCartItemsUniqueCodes(t *testing.T) {
	ctx := context.Background()
	c := NewCartItems(
		models.CartItemHistory{VoucherCode: "A-AAAAAAAAAAAA"},
		models.CartItemHistory{},
	)

	missing, err := c.FindMissingCodes(ctx)
	require.NoError(t, err)
	require.Len(t, missing, 1)

	err = c.SetVoucherCode(ctx, missing[0].ID, "A-AAAAAAAAAAAA")
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	require.NoError(t, c.SetVoucherCode(ctx, missing[0].ID, "B-BBBBBBBBBBBB"))
	n, err := c.CountMissingCodes(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUsersUpsertAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	u := NewUsers()

	created, err := u.UpsertAdmin(ctx, "Admin@Example.com", "Admin", "h1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = u.UpsertAdmin(ctx, "admin@example.com", "Other", "h2")
	require.NoError(t, err)
	assert.False(t, created)

	n, err := u.CountByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := u.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.Password)
	assert.Equal(t, "Admin", got.Name)
}

func TestRolesNameUniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewRoles()

	a := models.Role{Name: "editor"}
	require.NoError(t, r.Create(ctx, &a))
	assert.ErrorIs(t, r.Create(ctx, &models.Role{Name: "editor"}), repositories.ErrDuplicate)

	b := models.Role{Name: "viewer"}
	require.NoError(t, r.Create(ctx, &b))
	b.Name = "editor"
	assert.ErrorIs(t, r.Update(ctx, &b), repositories.ErrDuplicate)

	_, err := r.Find(ctx, "not-an-id")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)

	roles, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "editor", roles[0].Name)
}

func TestDynaFieldsSortedByEntityThenOrder(t *testing.T) {
	ctx := context.Background()
	d := NewDynaFields()
	for _, f := range []models.DynaField{
		{Entity: "user", Name: "b", Order: 2},
		{Entity: "cartItem", Name: "z", Order: 1},
		{Entity: "user", Name: "a", Order: 1},
	} {
		f := f
		require.NoError(t, d.Create(ctx, &f))
	}

	all, err := d.List(ctx, "")
	require.NoError(t, err)
	var names []string
	for _, f := range all {
		names = append(names, f.Entity+"."+f.Name)
	}
	assert.Equal(t, []string{"cartItem.z", "user.a", "user.b"}, names)

	users, err := d.List(ctx, "user")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
