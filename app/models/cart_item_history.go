package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItemHistory is one redeemed cart line. VoucherCode is empty until the
// backfill pass assigns it.
type CartItemHistory struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VoucherCode string              `bson:"voucherCode,omitempty" json:"voucherCode,omitempty"`
	VoucherID   *primitive.ObjectID `bson:"voucherId,omitempty" json:"voucherId,omitempty"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Quantity    int                 `bson:"quantity" json:"quantity"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
