// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/jobhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin audit event query.
type Handler struct {
	Events *audit.Store
	Log    *zap.Logger
}

// NewHandler constructs an audit log handler bound to db.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events: audit.New(db),
		Log:    logger,
	}
}
