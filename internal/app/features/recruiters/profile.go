// internal/app/features/recruiters/profile.go
package recruiters

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/inputval"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileResponse struct {
	ID             primitive.ObjectID `json:"id"`
	FullName       string             `json:"fullName"`
	ProfileImage   string             `json:"profileImage"`
	CompanyName    string             `json:"companyName"`
	CompanyWebsite string             `json:"companyWebsite"`
	CompanyLogo    string             `json:"companyLogo"`
	Email          string             `json:"email"`
}

// ServeProfile handles GET /profile: the caller's profile plus the account email.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	notFound := apierr.NotFound("Recruiter or User not found")
	p, err := h.Recruiters.ByUserID(ctx, userID)
	if errors.Is(err, recruiterstore.ErrNotFound) {
		apierr.Write(w, h.Log, notFound)
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	acct, err := h.Accounts.ByID(ctx, userID)
	if errors.Is(err, accountstore.ErrNotFound) {
		apierr.Write(w, h.Log, notFound)
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}

	apierr.WriteJSON(w, http.StatusOK, profileResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		ProfileImage:   p.ProfileImage,
		CompanyName:    p.CompanyName,
		CompanyWebsite: p.CompanyWebsite,
		CompanyLogo:    p.CompanyLogo,
		Email:          acct.Email,
	})
}

type profileRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email" validate:"omitempty,email"`
	PhoneNumber    string `json:"phoneNumber"`
	CompanyName    string `json:"companyName"`
	CompanyWebsite string `json:"companyWebsite"`
	CompanyLogo    string `json:"companyLogo"`
	ProfileImage   string `json:"profileImage"`
}

// HandleUpdateProfile handles PUT /profile. Fields left out of the body keep
// their stored values.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if err := apierr.Decode(r, &req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	if err := inputval.Struct(req); err != nil {
		apierr.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cur, err := h.Recruiters.ByUserID(ctx, userID)
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	p, err := h.Recruiters.UpdateProfile(ctx, userID, recruiterstore.ProfileUpdate{
		FullName:       notify.FirstNonEmpty(req.FullName, cur.FullName),
		Email:          notify.FirstNonEmpty(req.Email, cur.Email),
		PhoneNumber:    notify.FirstNonEmpty(req.PhoneNumber, cur.PhoneNumber),
		CompanyName:    notify.FirstNonEmpty(req.CompanyName, cur.CompanyName),
		CompanyWebsite: notify.FirstNonEmpty(req.CompanyWebsite, cur.CompanyWebsite),
		CompanyLogo:    notify.FirstNonEmpty(req.CompanyLogo, cur.CompanyLogo),
		ProfileImage:   req.ProfileImage,
	})
	if err != nil {
		apierr.Write(w, h.Log, storeErr(err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"profile": p,
	})
}

// ServeEmailVerified handles GET /check-email-verified/{userID}.
func (h *Handler) ServeEmailVerified(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID", "Invalid user id")
	if err != nil {
		apierr.Write(w, h.Log, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Recruiters.ByUserID(ctx, userID)
	if errors.Is(err, recruiterstore.ErrNotFound) {
		apierr.WriteJSON(w, http.StatusNotFound, map[string]any{"message": "Recruiter not found", "verified": false})
		return
	}
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("Server error", err))
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]bool{"verified": p.EmailVerified})
}
