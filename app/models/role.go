package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is an entry of the roles catalogue managed over /roles.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsDefault   bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile links a user to a catalogue role. A role referenced by any
// profile cannot be deleted.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	RoleID    primitive.ObjectID `bson:"roleId" json:"roleId"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
