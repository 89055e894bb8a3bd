package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/validators"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"accounts", "jobseeker_profiles", "recruiter_profiles", "notifications", "pending_registrations"} {
		if !have[want] {
			t.Errorf("collection %q was not created", want)
		}
	}
}

func TestAccountsSchema_RejectsUnknownRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("accounts").InsertOne(ctx, bson.M{
		"_id":           primitive.NewObjectID(),
		"email":         "x@example.com",
		"password_hash": "hash",
		"role":          "superuser",
		"created_at":    time.Now(),
	})
	if err == nil {
		t.Error("expected insert with unknown role to be rejected")
	}
}
