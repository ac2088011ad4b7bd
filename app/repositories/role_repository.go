package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/pkg/database"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

// RoleRepository handles the roles collection.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(database.Roles)}
}

func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	defer metrics.ObserveDBQuery(database.Roles, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roles := []models.Role{}
	if err := cur.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) Find(ctx context.Context, id string) (models.Role, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return models.Role{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (models.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (models.Role, error) {
	defer metrics.ObserveDBQuery(database.Roles, "find", time.Now())

	var role models.Role
	err := r.col.FindOne(ctx, filter).Decode(&role)
	return role, mapErr(err)
}

func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	defer metrics.ObserveDBQuery(database.Roles, "insert", time.Now())

	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	role.CreatedAt = now()
	role.UpdatedAt = role.CreatedAt

	_, err := r.col.InsertOne(ctx, role)
	return mapErr(err)
}

func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	defer metrics.ObserveDBQuery(database.Roles, "update", time.Now())

	role.UpdatedAt = now()
	res, err := r.col.UpdateByID(ctx, role.ID, bson.M{"$set": bson.M{
		"name":        role.Name,
		"description": role.Description,
		"isDefault":   role.IsDefault,
		"updatedAt":   role.UpdatedAt,
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	oid, err := ObjectID(id)
	if err != nil {
		return err
	}
	defer metrics.ObserveDBQuery(database.Roles, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileRepository handles the profiles collection.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(database.Profiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	defer metrics.ObserveDBQuery(database.Profiles, "insert", time.Now())

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	_, err := r.col.InsertOne(ctx, p)
	return mapErr(err)
}

func (r *ProfileRepository) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	defer metrics.ObserveDBQuery(database.Profiles, "count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{"roleId": roleID})
}
