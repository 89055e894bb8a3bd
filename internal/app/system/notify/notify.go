// internal/app/system/notify/notify.go
//
// Package notify stores notifications and pushes them to connected clients.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/realtime"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultCompanyName is used when neither the request nor the recruiter
// profile names a company.
const DefaultCompanyName = "Our Company"

// Store persists notifications.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Publisher pushes an event to a user's live connections.
type Publisher interface {
	Publish(userID, event string, data any) int
}

// Dispatcher persists then pushes. The push is best effort: a user with no
// live connection simply sees the notification on the next fetch.
type Dispatcher struct {
	store Store
	pub   Publisher
	log   *zap.Logger

	Now func() time.Time
}

// New creates a Dispatcher. pub may be nil to disable pushes.
func New(store Store, pub Publisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{store: store, pub: pub, log: logger, Now: time.Now}
}

// Send stores n as a new unread notification and pushes it.
func (d *Dispatcher) Send(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.UserID.IsZero() {
		return models.Notification{}, fmt.Errorf("notify: missing user id")
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.IsRead = false
	n.CreatedAt = d.Now().UTC()
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}

	if err := d.store.Create(ctx, &n); err != nil {
		return models.Notification{}, fmt.Errorf("notify: store: %w", err)
	}

	if d.pub != nil {
		delivered := d.pub.Publish(n.UserID.Hex(), realtime.EventNewNotification, n)
		d.log.Debug("notification pushed",
			zap.String("user_id", n.UserID.Hex()),
			zap.String("type", n.Type),
			zap.Int("connections", delivered))
	}
	return n, nil
}

// StatusChange describes an applicant status transition.
type StatusChange struct {
	ApplicantID primitive.ObjectID
	JobID       primitive.ObjectID
	JobTitle    string
	Status      string
	CompanyName string
	CompanyLogo string
}

// StatusMessage is the text shown to the applicant.
func StatusMessage(status, jobTitle string) string {
	return fmt.Sprintf("You have been %s for the position: %s", status, jobTitle)
}

// ApplicationStatus sends the notification for an applicant status change.
func (d *Dispatcher) ApplicationStatus(ctx context.Context, c StatusChange) (models.Notification, error) {
	company := c.CompanyName
	if company == "" {
		company = DefaultCompanyName
	}
	jobID := c.JobID
	return d.Send(ctx, models.Notification{
		UserID:  c.ApplicantID,
		Type:    models.NotificationApplicationStatus,
		Title:   "Application Status Updated",
		Message: StatusMessage(c.Status, c.JobTitle),
		JobID:   &jobID,
		Metadata: map[string]any{
			"status":      c.Status,
			"companyName": company,
			"companyLogo": c.CompanyLogo,
		},
		CompanyName: company,
		CompanyLogo: c.CompanyLogo,
	})
}

// FirstNonEmpty returns the first non-empty value, used for the
// request -> profile -> default fallbacks on company fields.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
