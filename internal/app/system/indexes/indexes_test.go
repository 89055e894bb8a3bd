package indexes_test

import (
	"testing"

	"github.com/dalemusser/jobhub/internal/app/system/indexes"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := indexes.EnsureAll(ctx, db, indexes.All(true)); err != nil {
			t.Fatalf("EnsureAll #%d failed: %v", i+1, err)
		}
	}

	expected := map[string][]string{
		"accounts":           {"uniq_accounts_email", "idx_accounts_created_desc"},
		"recruiter_profiles": {"uniq_recruiter_user", "idx_recruiter_job_posts"},
		"notifications":      {"idx_notifications_user_created"},
		"otp_codes":          {"idx_otp_expires_ttl"},
	}
	for coll, want := range expected {
		names := indexNames(t, db, coll)
		for _, n := range want {
			if !names[n] {
				t.Errorf("%s: missing index %s (have %v)", coll, n, names)
			}
		}
	}
}

func TestEnsureAll_RenamesIndexWithSameKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_1_legacy").SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db, indexes.All(false)); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	names := indexNames(t, db, "accounts")
	if names["email_1_legacy"] || !names["uniq_accounts_email"] {
		t.Errorf("index not renamed: %v", names)
	}
}

func TestEnsureAll_ReportsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := db.Collection("accounts").InsertOne(ctx, bson.M{"email": "dup@x.com"}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := indexes.EnsureAll(ctx, db, indexes.All(false)); err == nil {
		t.Error("expected an error for duplicate emails")
	}
}
