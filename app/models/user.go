package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid values of User.Role.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account in the users collection. Role may hold a legacy or
// missing value until the role repair pass has run.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role,omitempty" json:"role"`
	Active    bool               `bson:"active" json:"active"`
	Points    int                `bson:"points" json:"points"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether role is one of the two assignable roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
