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

// DynaFieldRepository handles the dynaFields collection.
type DynaFieldRepository struct {
	col *mongo.Collection
}

func NewDynaFieldRepository(db *mongo.Database) *DynaFieldRepository {
	return &DynaFieldRepository{col: db.Collection(database.DynaFields)}
}

func (r *DynaFieldRepository) List(ctx context.Context, entity string) ([]models.DynaField, error) {
	defer metrics.ObserveDBQuery(database.DynaFields, "find", time.Now())

	filter := bson.M{}
	if entity != "" {
		filter["entity"] = entity
	}
	sort := bson.D{{Key: "entity", Value: 1}, {Key: "order", Value: 1}, {Key: "name", Value: 1}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list dynamic fields: %w", err)
	}
	fields := []models.DynaField{}
	if err := cur.All(ctx, &fields); err != nil {
		return nil, fmt.Errorf("decode dynamic fields: %w", err)
	}
	return fields, nil
}

func (r *DynaFieldRepository) Find(ctx context.Context, id string) (models.DynaField, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return models.DynaField{}, err
	}
	defer metrics.ObserveDBQuery(database.DynaFields, "find", time.Now())

	var f models.DynaField
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	return f, mapErr(err)
}

func (r *DynaFieldRepository) Create(ctx context.Context, f *models.DynaField) error {
	defer metrics.ObserveDBQuery(database.DynaFields, "insert", time.Now())

	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	f.CreatedAt = now()
	f.UpdatedAt = f.CreatedAt

	_, err := r.col.InsertOne(ctx, f)
	return mapErr(err)
}

// Update replaces every mutable field of f.
func (r *DynaFieldRepository) Update(ctx context.Context, f *models.DynaField) error {
	defer metrics.ObserveDBQuery(database.DynaFields, "update", time.Now())

	f.UpdatedAt = now()
	res, err := r.col.UpdateByID(ctx, f.ID, bson.M{"$set": bson.M{
		"entity":    f.Entity,
		"name":      f.Name,
		"label":     f.Label,
		"type":      f.Type,
		"required":  f.Required,
		"options":   f.Options,
		"order":     f.Order,
		"updatedAt": f.UpdatedAt,
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DynaFieldRepository) Delete(ctx context.Context, id string) error {
	oid, err := ObjectID(id)
	if err != nil {
		return err
	}
	defer metrics.ObserveDBQuery(database.DynaFields, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
