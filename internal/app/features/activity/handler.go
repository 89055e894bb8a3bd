// internal/app/features/activity/handler.go
package activity

import (
	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RecentLimit is how many registrations the activity feed shows.
const RecentLimit = 50

// Handler serves the admin activity overview.
type Handler struct {
	Accounts   *accountstore.Store
	Seekers    *seekerstore.Store
	Recruiters *recruiterstore.Store
	Log        *zap.Logger
}

// NewHandler constructs the activity handler bound to db.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts:   accountstore.New(db),
		Seekers:    seekerstore.New(db),
		Recruiters: recruiterstore.New(db),
		Log:        logger,
	}
}
