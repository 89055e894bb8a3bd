// internal/app/features/verify/handler.go
package verify

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/app/system/credentials"
	"github.com/dalemusser/jobhub/internal/app/system/ratelimit"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the email verification endpoints.
type Handler struct {
	Creds   *credentials.Service
	Limiter *ratelimit.OTPLimiter // optional
	Log     *zap.Logger
}

func NewHandler(creds *credentials.Service, limiter *ratelimit.OTPLimiter, logger *zap.Logger) *Handler {
	return &Handler{Creds: creds, Limiter: limiter, Log: logger}
}

type sendRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// HandleSend handles POST /send-email-otp.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}
	src := auditlog.FromRequest(r)
	if h.Limiter != nil && req.Email != "" {
		if ok, reason := h.Limiter.Check(r, req.Email); !ok {
			h.Creds.Audit.OTPRateLimited(r.Context(), src, req.Email)
			apierr.WriteResult(w, h.Log, apierr.TooManyRequests(reason))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Creds.SendVerificationCode(ctx, src, req.Email); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}
	apierr.Success(w, "OTP sent to email")
}

// HandleVerify handles POST /verify-email-otp. The caller's own profile is
// marked verified.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	var req verifyRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Creds.VerifyEmail(ctx, auditlog.FromRequest(r), userID, req.Email, req.OTP); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}
	apierr.Success(w, "Email verified successfully")
}
