package accountstore_test

import (
	"errors"
	"testing"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/dalemusser/jobhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_NormalizesAndRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	a, err := store.Create(ctx, models.Account{Email: "  Ana@Example.COM ", PasswordHash: "x", Role: models.RoleJobSeeker})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Email != "ana@example.com" {
		t.Errorf("Email = %q", a.Email)
	}

	_, err = store.Create(ctx, models.Account{Email: "ana@example.com", PasswordHash: "y", Role: models.RoleRecruiter})
	if !errors.Is(err, accountstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := store.ByEmail(ctx, "ANA@example.com")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if got.ID != a.ID {
		t.Error("ByEmail returned a different account")
	}
}

func TestByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.ByID(ctx, primitive.NewObjectID()); !errors.Is(err, accountstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.UpdatePassword(ctx, primitive.NewObjectID(), "h"); !errors.Is(err, accountstore.ErrNotFound) {
		t.Errorf("UpdatePassword: expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePasswordDeleteAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fx.CreateAccount(ctx, "s@x.com", "secret1", models.RoleJobSeeker)
	fx.CreateAccount(ctx, "r@x.com", "secret1", models.RoleRecruiter)

	if err := store.UpdatePassword(ctx, seeker.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, _ := store.ByID(ctx, seeker.ID)
	if got.PasswordHash != "newhash" {
		t.Errorf("PasswordHash = %q", got.PasswordHash)
	}

	if n, _ := store.CountByRole(ctx, models.RoleRecruiter); n != 1 {
		t.Errorf("recruiters = %d", n)
	}
	if n, _ := store.CountByRole(ctx, ""); n != 2 {
		t.Errorf("all = %d", n)
	}

	emails, err := store.EmailsByIDs(ctx, []primitive.ObjectID{seeker.ID})
	if err != nil || emails[seeker.ID] != "s@x.com" {
		t.Errorf("EmailsByIDs = %v, %v", emails, err)
	}

	recent, err := store.Recent(ctx, 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("Recent = %v, %v", recent, err)
	}

	if err := store.Delete(ctx, seeker.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.ByID(ctx, seeker.ID); !errors.Is(err, accountstore.ErrNotFound) {
		t.Errorf("deleted account still found: %v", err)
	}
}
