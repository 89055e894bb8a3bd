// internal/app/features/account/password.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
)

// HandleChangePassword handles POST /change-password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	var req changePasswordRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		apierr.Message(w, http.StatusBadRequest, "Both current and new passwords are required")
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Creds.ChangePassword(ctx, auditlog.FromRequest(r), userID, req.CurrentPassword, req.NewPassword); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Message(w, http.StatusOK, "Password updated successfully")
}

// HandleSendResetCode handles POST /forgot-password/send-otp.
func (h *Handler) HandleSendResetCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	src := auditlog.FromRequest(r)
	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, req.Email); !ok {
			h.Creds.Audit.OTPRateLimited(r.Context(), src, req.Email)
			apierr.Write(w, h.Log, apierr.TooManyRequests(reason))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Creds.SendResetCode(ctx, src, req.Email); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	apierr.Success(w, "OTP sent to your email")
}

// HandleVerifyResetCode handles POST /forgot-password/verify-otp. The code
// stays valid for the reset that follows.
func (h *Handler) HandleVerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Creds.VerifyResetCode(ctx, auditlog.FromRequest(r), req.Email, req.OTP); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}
	apierr.Success(w, "OTP verified successfully")
}

// HandleResetPassword handles POST /forgot-password/reset.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Creds.ResetPassword(ctx, auditlog.FromRequest(r), req.Email, req.OTP, req.NewPassword); err != nil {
		apierr.WriteResult(w, h.Log, err)
		return
	}
	apierr.Success(w, "Password has been reset successfully")
}
