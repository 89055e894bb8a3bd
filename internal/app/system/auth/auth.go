// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Tokens                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// DefaultDevSecret is the placeholder secret used when none is configured.
// ValidateConfig refuses to start in prod with this value.
const DefaultDevSecret = "dev-only-jwt-secret-change-me"

var (
	ErrNoToken      = errors.New("auth: no token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the JWT payload. The id and role claims are what clients decode.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// NewTokens returns a token service. A ttl of zero issues tokens without an
// expiry claim.
func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("token ttl must not be negative, got %s", ttl)
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, Now: time.Now}, nil
}

// Issue signs a token for the account.
func (t *Tokens) Issue(userID, role string) (string, error) {
	now := t.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns the user it was issued for.
func (t *Tokens) Parse(raw string) (*User, error) {
	if raw == "" {
		return nil, ErrNoToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing id or role", ErrInvalidToken)
	}
	return &User{ID: claims.UserID, Role: claims.Role}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// User is what the middleware injects into r.Context().
type User struct {
	ID   string
	Role string
}

// ObjectID parses the user id.
func (u *User) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(u.ID)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*User, bool) {
	return FromContext(r.Context())
}

// FromContext is CurrentUser for code that only holds a context.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(currentUserKey).(*User)
	return u, ok
}

// WithUser returns ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// WithTestUser injects u directly, bypassing token verification.
func WithTestUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Middleware holds the token service and logger for the auth middlewares.
type Middleware struct {
	Tokens *Tokens
	Log    *zap.Logger

	// AllowQueryToken also accepts ?token= (browsers cannot set headers on
	// websocket upgrades).
	AllowQueryToken bool
}

// NewMiddleware builds the bearer-token middleware.
func NewMiddleware(tokens *Tokens, logger *zap.Logger) *Middleware {
	return &Middleware{Tokens: tokens, Log: logger}
}

// WithQueryToken returns a copy of m that also reads ?token=.
func (m *Middleware) WithQueryToken() *Middleware {
	cp := *m
	cp.AllowQueryToken = true
	return &cp
}

// RequireSignedIn verifies the bearer token and injects the user.
// Missing tokens get 401; tokens that fail verification get 403.
func (m *Middleware) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" && m.AllowQueryToken {
			raw = strings.TrimSpace(r.URL.Query().Get("token"))
		}
		if raw == "" {
			apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		u, err := m.Tokens.Parse(raw)
		if err != nil {
			m.Log.Debug("token rejected", zap.Error(err))
			apierr.Message(w, http.StatusForbidden, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context (set by RequireSignedIn).
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apierr.Message(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
