package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/voucherhub/pkg/database"
)

// NewMongoStores binds every store to db.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		CartItems:  NewCartItemRepository(db),
		Users:      NewUserRepository(db),
		Roles:      NewRoleRepository(db),
		Profiles:   NewProfileRepository(db),
		DynaFields: NewDynaFieldRepository(db),
	}
}

// EnsureIndexes creates the indexes the invariants rely on. It is
// idempotent. The voucher code index is built separately by
// EnsureVoucherIndex.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		database.Users: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		database.Roles: {{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		database.Profiles: {
			{Keys: bson.D{{Key: "roleId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		database.DynaFields: {{
			Keys:    bson.D{{Key: "entity", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return indexErr(col, err)
		}
	}
	return nil
}

// EnsureVoucherIndex builds the unique index on voucher codes. Only
// non-empty codes take part, so records awaiting backfill do not collide.
// While the collection still holds colliding codes it fails with
// ErrDuplicate.
func EnsureVoucherIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(database.CartItemHistory).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "voucherCode", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"voucherCode": bson.M{"$gt": ""}}),
	})
	if err != nil {
		return indexErr(database.CartItemHistory, err)
	}
	return nil
}

func indexErr(col string, err error) error {
	return fmt.Errorf("ensure indexes on %s: %w", col, mapErr(err))
}

// mapErr translates driver errors into the package sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
