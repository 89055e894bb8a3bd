// internal/app/features/seekers/handler.go
package seekers

import (
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the job seeker profile endpoints.
type Handler struct {
	Seekers    *seekerstore.Store
	Accounts   *accountstore.Store
	Recruiters *recruiterstore.Store
	Log        *zap.Logger
}

// NewHandler constructs the seekers feature handler bound to db.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Seekers:    seekerstore.New(db),
		Accounts:   accountstore.New(db),
		Recruiters: recruiterstore.New(db),
		Log:        logger,
	}
}

// caller returns the signed-in account id, writing 401 when there is none.
func caller(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, id, ok := authz.UserCtx(r)
	if !ok {
		apierr.Message(w, http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, ok
}

// storeErr classifies seeker store errors. entry names the array entry
// ("Education", "Employment") for ErrEntryNotFound.
func storeErr(err error, entry string) error {
	switch {
	case errors.Is(err, seekerstore.ErrNotFound):
		return apierr.NotFound("User not found")
	case errors.Is(err, seekerstore.ErrEntryNotFound):
		return apierr.NotFound(entry + " not found")
	}
	return apierr.Internal("Server error", err)
}

func entryID(r *http.Request, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("Invalid id")
	}
	return id, nil
}
