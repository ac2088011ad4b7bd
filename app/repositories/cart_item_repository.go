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

// missingCode matches records whose voucherCode is absent, null or "".
var missingCode = bson.M{"$or": bson.A{
	bson.M{"voucherCode": bson.M{"$exists": false}},
	bson.M{"voucherCode": nil},
	bson.M{"voucherCode": ""},
}}

// CartItemRepository handles the cartitemhistory collection.
type CartItemRepository struct {
	col *mongo.Collection
}

func NewCartItemRepository(db *mongo.Database) *CartItemRepository {
	return &CartItemRepository{col: db.Collection(database.CartItemHistory)}
}

func (r *CartItemRepository) Create(ctx context.Context, item *models.CartItemHistory) error {
	defer metrics.ObserveDBQuery(database.CartItemHistory, "insert", time.Now())

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt

	_, err := r.col.InsertOne(ctx, item)
	return mapErr(err)
}

func (r *CartItemRepository) FindMissingCodes(ctx context.Context) ([]models.CartItemHistory, error) {
	defer metrics.ObserveDBQuery(database.CartItemHistory, "find", time.Now())

	cur, err := r.col.Find(ctx, missingCode, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find missing voucher codes: %w", err)
	}

	var items []models.CartItemHistory
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return items, nil
}

func (r *CartItemRepository) CountMissingCodes(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery(database.CartItemHistory, "count", time.Now())
	return r.col.CountDocuments(ctx, missingCode)
}

func (r *CartItemRepository) SetVoucherCode(ctx context.Context, id primitive.ObjectID, code string) error {
	defer metrics.ObserveDBQuery(database.CartItemHistory, "update", time.Now())

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"voucherCode": code,
		"updatedAt":   now(),
	}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartItemRepository) Codes(ctx context.Context) ([]string, error) {
	defer metrics.ObserveDBQuery(database.CartItemHistory, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"voucherCode": 1}))
	if err != nil {
		return nil, fmt.Errorf("scan voucher codes: %w", err)
	}
	defer cur.Close(ctx)

	var codes []string
	for cur.Next(ctx) {
		var row struct {
			Code *string `bson:"voucherCode"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode voucher code: %w", err)
		}
		if row.Code == nil {
			codes = append(codes, "")
			continue
		}
		codes = append(codes, *row.Code)
	}
	return codes, cur.Err()
}
