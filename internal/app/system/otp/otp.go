// Package otp issues and checks the six-digit one-time codes used for
// password reset and email verification.
//
// Codes live in a Store keyed by (purpose, normalized email) with an absolute
// expiry. The two purposes are independent keyspaces, and issuing a new code
// replaces any pending code for the same key. Codes are stored bcrypt-hashed.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the number of digits in a code.
	CodeLength = 6
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 3 * time.Minute
	// BcryptCost for hashing codes.
	BcryptCost = 10
)

// Purpose selects the keyspace a code belongs to.
type Purpose string

const (
	PurposePasswordReset Purpose = "password_reset"
	PurposeEmailVerify   Purpose = "email_verify"
)

// ErrInvalid is matched (errors.Is) by every verification failure.
var ErrInvalid = errors.New("invalid or expired code")

var (
	ErrNotFound = fmt.Errorf("%w: no pending code", ErrInvalid)
	ErrMismatch = fmt.Errorf("%w: code mismatch", ErrInvalid)
	ErrExpired  = fmt.Errorf("%w: code expired", ErrInvalid)
)

// Key identifies a pending code.
type Key struct {
	Purpose Purpose
	Email   string
}

// NewKey normalizes email so lookups are case and whitespace insensitive.
func NewKey(p Purpose, email string) Key {
	return Key{Purpose: p, Email: normalize.Email(email)}
}

func (k Key) String() string { return string(k.Purpose) + ":" + k.Email }

// Record is what a Store keeps per key.
type Record struct {
	CodeHash  string    `bson:"code_hash" json:"code_hash"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Store persists pending codes. Get returns ErrNotFound when no record exists;
// expiry is judged by the Manager, so a Store may return stale records.
type Store interface {
	Put(ctx context.Context, key Key, rec Record) error
	Get(ctx context.Context, key Key) (Record, error)
	Delete(ctx context.Context, key Key) error
}

// GenerateCode returns a uniformly random, zero-padded six-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// DeliverFunc sends code to its recipient. Issue stores the code only when
// delivery succeeds.
type DeliverFunc func(ctx context.Context, code string) error

// Manager ties code generation, delivery, and verification to a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	cost  int

	// Now and Generate are replaceable in tests.
	Now      func() time.Time
	Generate func() (string, error)
}

// NewManager returns a Manager whose codes live for ttl (DefaultTTL if ttl <= 0).
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:    store,
		ttl:      ttl,
		cost:     BcryptCost,
		Now:      time.Now,
		Generate: GenerateCode,
	}
}

// TTL reports how long issued codes stay valid.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue generates a code, hands it to deliver, and on success stores it,
// replacing any pending code for the same key.
func (m *Manager) Issue(ctx context.Context, p Purpose, email string, deliver DeliverFunc) error {
	code, err := m.Generate()
	if err != nil {
		return err
	}
	if err := deliver(ctx, code); err != nil {
		return fmt.Errorf("deliver code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), m.cost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}
	rec := Record{CodeHash: string(hash), ExpiresAt: m.Now().Add(m.ttl)}
	if err := m.store.Put(ctx, NewKey(p, email), rec); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	return nil
}

// Check verifies code without consuming it.
func (m *Manager) Check(ctx context.Context, p Purpose, email, code string) error {
	rec, err := m.store.Get(ctx, NewKey(p, email))
	if err != nil {
		return err
	}
	if m.Now().After(rec.ExpiresAt) {
		return ErrExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		return ErrMismatch
	}
	return nil
}

// Consume deletes the pending code for the key. Callers check first and
// consume only after the guarded action succeeds.
func (m *Manager) Consume(ctx context.Context, p Purpose, email string) error {
	return m.store.Delete(ctx, NewKey(p, email))
}
