// internal/app/features/jobs/handler.go
package jobs

import (
	"context"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/dalemusser/jobhub/internal/app/system/jobmatch"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves job listing, search, recommendation, application, and
// saved-job endpoints. Listings are computed in memory over every post.
type Handler struct {
	Recruiters *recruiterstore.Store
	Seekers    *seekerstore.Store
	Accounts   *accountstore.Store
	Audit      *auditlog.Logger // optional
	Log        *zap.Logger
}

// NewHandler constructs the jobs feature handler bound to db.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Recruiters: recruiterstore.New(db),
		Seekers:    seekerstore.New(db),
		Accounts:   accountstore.New(db),
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

func jobID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "jobID"))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("Invalid job id")
	}
	return id, nil
}

// postings loads every job post with its display company.
func (h *Handler) postings(ctx context.Context) ([]jobmatch.Posting, error) {
	profiles, err := h.Recruiters.All(ctx)
	if err != nil {
		return nil, err
	}
	return jobmatch.Flatten(profiles), nil
}

// listing is a job post as shown in search results: the company name is
// the resolved display company.
type listing struct {
	models.JobPost
	CompanyName string `json:"companyName"`
}

func listings(ps []jobmatch.Posting) []listing {
	out := make([]listing, 0, len(ps))
	for _, p := range ps {
		out = append(out, listing{JobPost: p.JobPost, CompanyName: p.Company})
	}
	return out
}

func posts(ps []jobmatch.Posting) []models.JobPost {
	out := make([]models.JobPost, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.JobPost)
	}
	return out
}
