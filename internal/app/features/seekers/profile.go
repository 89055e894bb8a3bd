// internal/app/features/seekers/profile.go
package seekers

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeMe handles GET /me: the caller's full profile.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.ByUserID(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, ""))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, p)
}

// applicantDetails is what the apply form is prefilled with.
type applicantDetails struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Resume       string `json:"resume"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

// ServeDetails handles GET /details.
func (h *Handler) ServeDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.ByUserID(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, ""))
		return
	}
	var email string
	if acct, err := h.Accounts.ByID(ctx, userID); err == nil {
		email = acct.Email
	} else if !errors.Is(err, accountstore.ErrNotFound) {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}

	img := p.ProfileImage
	if img == "" {
		img = models.DefaultSeekerImage
	}
	apierr.WriteJSON(w, http.StatusOK, applicantDetails{
		ID:           userID.Hex(),
		FullName:     p.FullName,
		Resume:       p.Resume,
		Address:      p.PersonalDetails.Address,
		Email:        email,
		ProfileImage: img,
	})
}

// ServeBasicDetails handles GET /basic-details.
func (h *Handler) ServeBasicDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.BasicDetails(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err, ""))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"user": map[string]any{
		"userId":       p.UserID,
		"fullName":     p.FullName,
		"basicDetails": p.BasicDetails,
	}})
}

type settingsResponse struct {
	Email          string `json:"email"`
	MobileNumber   string `json:"mobileNumber"`
	EmailVerified  bool   `json:"emailVerified"`
	MobileVerified bool   `json:"mobileVerified"`
}

// ServeSettings handles GET /settings for either role. The password hash
// is never part of the response.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	acct, err := h.Accounts.ByID(ctx, userID)
	if errors.Is(err, accountstore.ErrNotFound) {
		apierr.Write(w, h.Log, apierr.NotFound("User not found"))
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}

	resp := settingsResponse{Email: acct.Email}
	switch acct.Role {
	case models.RoleJobSeeker:
		p, err := h.Seekers.ByUserID(ctx, userID)
		if err != nil {
			writeProfileErr(w, h, err, seekerstore.ErrNotFound)
			return
		}
		resp.MobileNumber = p.MobileNumber
		resp.EmailVerified = p.EmailVerified
		resp.MobileVerified = p.MobileVerified
	case models.RoleRecruiter:
		p, err := h.Recruiters.ByUserID(ctx, userID)
		if err != nil {
			writeProfileErr(w, h, err, recruiterstore.ErrNotFound)
			return
		}
		resp.MobileNumber = p.PhoneNumber
		resp.EmailVerified = p.EmailVerified
	default:
		apierr.Write(w, h.Log, apierr.NotFound("Profile not found"))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, resp)
}

func writeProfileErr(w http.ResponseWriter, h *Handler, err, notFound error) {
	if errors.Is(err, notFound) {
		apierr.Write(w, h.Log, apierr.NotFound("Profile not found"))
		return
	}
	apierr.Write(w, h.Log, apierr.Internal("Server error", err))
}

// ServeAll handles GET /all: every seeker, for recruiters browsing talent.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Seekers.All(ctx)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Internal Server Error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, all)
}

// ServeEmailVerified handles GET /check-email-verified/{userID}.
func (h *Handler) ServeEmailVerified(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		apierr.WriteJSON(w, http.StatusNotFound, map[string]any{"message": "Profile not found", "verified": false})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Seekers.ByUserID(ctx, userID)
	if errors.Is(err, seekerstore.ErrNotFound) {
		apierr.WriteJSON(w, http.StatusNotFound, map[string]any{"message": "Profile not found", "verified": false})
		return
	}
	if err != nil {
		h.Log.Error("check email verified failed", zap.Error(err))
		apierr.WriteJSON(w, http.StatusInternalServerError, map[string]any{"message": "Server error", "verified": false})
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]bool{"verified": p.EmailVerified})
}
