package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/pkg/database"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.Users)}
}

// Create persists a new user. Emails are stored lower-cased.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveDBQuery(database.Users, "insert", time.Now())

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt

	_, err := r.col.InsertOne(ctx, u)
	return mapErr(err)
}

// FindByID looks up a user by hex id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return models.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail looks up a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	defer metrics.ObserveDBQuery(database.Users, "find", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	return u, mapErr(err)
}

func (r *UserRepository) Each(ctx context.Context, fn func(models.User) error) error {
	defer metrics.ObserveDBQuery(database.Users, "scan", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("scan users: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}
		if err := fn(u); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	defer metrics.ObserveDBQuery(database.Users, "update", time.Now())

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": role, "updatedAt": now()}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	defer metrics.ObserveDBQuery(database.Users, "upsert", time.Now())

	ts := now()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{
			"$set": bson.M{
				"password":  passwordHash,
				"role":      models.RoleAdmin,
				"active":    true,
				"updatedAt": ts,
			},
			"$setOnInsert": bson.M{
				"name":      name,
				"points":    0,
				"createdAt": ts,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, mapErr(err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	defer metrics.ObserveDBQuery(database.Users, "count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{"email": strings.ToLower(email)})
}
