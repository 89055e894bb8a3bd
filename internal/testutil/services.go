package testutil

import (
	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	pendingstore "github.com/dalemusser/jobhub/internal/app/store/pendingusers"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/app/system/credentials"
	"github.com/dalemusser/jobhub/internal/app/system/mailer"
	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TestOTPCode is the code every one-time-code flow issues in tests.
const TestOTPCode = "123456"

// TestJWTSecret signs tokens in handler tests.
const TestJWTSecret = "test-jwt-secret"

// NewTokens returns a token service signed with TestJWTSecret.
func NewTokens() *auth.Tokens {
	t, err := auth.NewTokens(TestJWTSecret, 0)
	if err != nil {
		panic(err)
	}
	return t
}

// NewCredentials wires a credential service over the stores in db, with
// in-memory codes fixed to TestOTPCode and a log-only mailer.
func NewCredentials(db *mongo.Database) *credentials.Service {
	mgr := otp.NewManager(otp.NewMemoryStore(), 0)
	mgr.Generate = func() (string, error) { return TestOTPCode, nil }

	return &credentials.Service{
		Accounts:   accountstore.New(db),
		Seekers:    seekerstore.New(db),
		Recruiters: recruiterstore.New(db),
		Pending:    pendingstore.New(db),
		OTP:        mgr,
		Mail:       mailer.New(mailer.Config{}, zap.NewNop()),
		Tokens:     NewTokens(),
		Log:        zap.NewNop(),
		SiteName:   "JobHub",
		Cost:       bcrypt.MinCost,
	}
}
