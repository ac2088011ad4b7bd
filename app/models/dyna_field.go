package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field types a DynaField may declare.
const (
	FieldText    = "text"
	FieldNumber  = "number"
	FieldBoolean = "boolean"
	FieldDate    = "date"
	FieldSelect  = "select"
)

// DynaField is an admin-defined form field attached to an entity
// (e.g. "cartItem" or "user"). Name is unique per entity.
type DynaField struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Entity    string             `bson:"entity" json:"entity"`
	Name      string             `bson:"name" json:"name"`
	Label     string             `bson:"label" json:"label"`
	Type      string             `bson:"type" json:"type"`
	Required  bool               `bson:"required" json:"required"`
	Options   []string           `bson:"options,omitempty" json:"options,omitempty"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
