// internal/app/features/recruiters/handler.go
package recruiters

import (
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the recruiter profile, job post, and applicant endpoints.
type Handler struct {
	Recruiters *recruiterstore.Store
	Accounts   *accountstore.Store
	Seekers    *seekerstore.Store
	Notify     *notify.Dispatcher
	Audit      *auditlog.Logger // optional
	Log        *zap.Logger
}

// NewHandler constructs the recruiters feature handler bound to db.
// Applicant decisions are announced through n.
func NewHandler(db *mongo.Database, n *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Recruiters: recruiterstore.New(db),
		Accounts:   accountstore.New(db),
		Seekers:    seekerstore.New(db),
		Notify:     n,
		Log:        logger,
	}
}

func caller(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, id, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, ok
}

// storeErr classifies recruiter store errors.
func storeErr(err error) error {
	switch {
	case errors.Is(err, recruiterstore.ErrNotFound):
		return apierr.NotFound("Recruiter not found")
	case errors.Is(err, recruiterstore.ErrJobNotFound):
		return apierr.NotFound("Job not found")
	case errors.Is(err, recruiterstore.ErrApplicantNotFound):
		return apierr.NotFound("Applicant not found for this job")
	case errors.Is(err, recruiterstore.ErrStatusConflict):
		return apierr.Conflict("Applicant has already been reviewed")
	case errors.Is(err, recruiterstore.ErrRevisionMismatch):
		return apierr.Conflict("Job post was changed by another request, reload and try again")
	}
	return apierr.Internal("Server error", err)
}

func pathID(r *http.Request, param, msg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid(msg)
	}
	return id, nil
}
