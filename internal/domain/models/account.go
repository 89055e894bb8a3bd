// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles an Account can hold. Admin accounts are created only by the startup
// bootstrap; registration accepts job seekers and recruiters.
const (
	RoleJobSeeker = "jobSeeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// IsRegistrableRole reports whether role may be chosen at registration.
func IsRegistrableRole(role string) bool {
	return role == RoleJobSeeker || role == RoleRecruiter
}

// Account is the credential record behind every user.
//
// Email is stored normalized (trimmed, lower-cased) and is unique.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PendingRegistration marks an email that attempted to log in before it had
// an Account. Registering with that email removes the marker.
type PendingRegistration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
