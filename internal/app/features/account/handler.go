// internal/app/features/account/handler.go
package account

import (
	"github.com/dalemusser/jobhub/internal/app/system/credentials"
	"github.com/dalemusser/jobhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Handler serves registration, login, and password endpoints.
type Handler struct {
	Creds   *credentials.Service
	Limiter *ratelimit.OTPLimiter // optional; throttles code sends
	Log     *zap.Logger
}

// NewHandler constructs the account feature handler.
func NewHandler(creds *credentials.Service, limiter *ratelimit.OTPLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Creds:   creds,
		Limiter: limiter,
		Log:     logger,
	}
}
