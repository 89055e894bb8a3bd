// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role, account id, and a found flag.
// A missing user or a malformed id yields ok=false, so ok=true always
// means a usable ObjectID.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "", primitive.NilObjectID, false
	}
	return user.Role, userID, true
}

// HasAnyRole reports whether the caller holds one of roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == want {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin)
}

// IsSelf reports whether the hex id names the caller's own account.
func IsSelf(r *http.Request, hexID string) bool {
	_, userID, ok := UserCtx(r)
	return ok && userID.Hex() == hexID
}
