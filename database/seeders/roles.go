package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
)

func init() {
	Register("roles", SeedRoles)
	Register("cart_items", SeedCartItems)
}

// SeedRoles makes sure the two built-in roles exist in the catalogue.
func SeedRoles(ctx context.Context, s repositories.Stores) error {
	defaults := []models.Role{
		{Name: models.RoleCustomer, Description: "Shop customer", IsDefault: true},
		{Name: models.RoleAdmin, Description: "Back-office administrator"},
	}

	for _, role := range defaults {
		role := role
		_, err := s.Roles.FindByName(ctx, role.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := s.Roles.Create(ctx, &role); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
	}
	return nil
}

// SeedCartItems adds a few redeemed lines without voucher codes so the
// backfill pass has something to do on a fresh database. It does nothing
// once any record is missing a code.
func SeedCartItems(ctx context.Context, s repositories.Stores) error {
	n, err := s.CartItems.CountMissingCodes(ctx)
	if err != nil || n > 0 {
		return err
	}

	for qty := 1; qty <= 3; qty++ {
		if err := s.CartItems.Create(ctx, &models.CartItemHistory{Quantity: qty}); err != nil {
			return err
		}
	}
	return nil
}
