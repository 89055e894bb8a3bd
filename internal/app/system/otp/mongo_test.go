package otp_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"github.com/dalemusser/jobhub/internal/testutil"
)

func TestMongoStore_PutGetDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := otp.NewMongoStore(db)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	key := otp.NewKey(otp.PurposePasswordReset, "a@x.com")
	rec := otp.Record{CodeHash: "h1", ExpiresAt: time.Now().Add(time.Minute).UTC().Truncate(time.Millisecond)}
	if err := s.Put(ctx, key, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec.CodeHash = "h2"
	if err := s.Put(ctx, key, rec); err != nil {
		t.Fatalf("Put (replace): %v", err)
	}

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CodeHash != "h2" {
		t.Errorf("CodeHash = %q, want h2", got.CodeHash)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, otp.ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}
