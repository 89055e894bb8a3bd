package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false without a user")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil),
		&auth.User{ID: "not-an-id", Role: models.RoleJobSeeker})
	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for a malformed id")
	}
}

func TestUserCtx_Valid(t *testing.T) {
	id := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil),
		&auth.User{ID: id.Hex(), Role: models.RoleRecruiter})

	role, got, ok := authz.UserCtx(req)
	if !ok || role != models.RoleRecruiter || got != id {
		t.Errorf("UserCtx = %q, %v, %v", role, got, ok)
	}
	if !authz.HasAnyRole(req, models.RoleAdmin, models.RoleRecruiter) {
		t.Error("HasAnyRole should match recruiter")
	}
	if authz.IsAdmin(req) {
		t.Error("recruiter is not an admin")
	}
	if !authz.IsSelf(req, id.Hex()) || authz.IsSelf(req, primitive.NewObjectID().Hex()) {
		t.Error("IsSelf mismatch")
	}
}
