// Package repositories persists voucherhub documents in MongoDB.
//
// Services depend on the *Store interfaces below; this package provides the
// MongoDB implementations and app/repositories/memory the in-memory ones
// used by tests.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/voucherhub/app/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrInUse     = errors.New("record is in use")
	ErrInvalidID = errors.New("invalid id")
)

// ObjectID parses a hex id, returning ErrInvalidID on malformed input.
func ObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// CartItemStore is the cartitemhistory collection.
type CartItemStore interface {
	Create(ctx context.Context, item *models.CartItemHistory) error
	// FindMissingCodes returns records whose voucherCode is absent, null or
	// empty, ordered by _id.
	FindMissingCodes(ctx context.Context) ([]models.CartItemHistory, error)
	CountMissingCodes(ctx context.Context) (int64, error)
	SetVoucherCode(ctx context.Context, id primitive.ObjectID, code string) error
	// Codes returns the voucherCode of every record, "" where missing.
	Codes(ctx context.Context) ([]string, error)
}

// UserStore is the users collection.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// Each streams every user to fn, stopping at the first error fn returns.
	Each(ctx context.Context, fn func(models.User) error) error
	SetRole(ctx context.Context, id primitive.ObjectID, role string) error
	// UpsertAdmin creates or resets the account with email as an active
	// admin. created reports whether a new document was inserted.
	UpsertAdmin(ctx context.Context, email, name, passwordHash string) (created bool, err error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// RoleStore is the roles collection.
type RoleStore interface {
	List(ctx context.Context) ([]models.Role, error)
	Find(ctx context.Context, id string) (models.Role, error)
	FindByName(ctx context.Context, name string) (models.Role, error)
	Create(ctx context.Context, r *models.Role) error
	Update(ctx context.Context, r *models.Role) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore is the profiles collection.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error)
}

// DynaFieldStore is the dynaFields collection.
type DynaFieldStore interface {
	// List returns fields sorted by entity then order. An empty entity
	// lists all.
	List(ctx context.Context, entity string) ([]models.DynaField, error)
	Find(ctx context.Context, id string) (models.DynaField, error)
	Create(ctx context.Context, f *models.DynaField) error
	Update(ctx context.Context, f *models.DynaField) error
	Delete(ctx context.Context, id string) error
}

// Stores bundles every store. Commands and the HTTP kernel build one.
type Stores struct {
	CartItems  CartItemStore
	Users      UserStore
	Roles      RoleStore
	Profiles   ProfileStore
	DynaFields DynaFieldStore
}

// now is the timestamp source for created/updated fields.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
