// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationJobAlert          = "job_alert"
	NotificationApplicationStatus = "application_status"
	NotificationRecruiterMessage  = "recruiter_message"
	NotificationSystem            = "system"
)

// IsNotificationType reports whether s is a known notification type.
func IsNotificationType(s string) bool {
	switch s {
	case NotificationJobAlert, NotificationApplicationStatus, NotificationRecruiterMessage, NotificationSystem:
		return true
	}
	return false
}

type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"userId"`
	Type        string              `bson:"type" json:"type"`
	Title       string              `bson:"title" json:"title"`
	Message     string              `bson:"message" json:"message"`
	IsRead      bool                `bson:"is_read" json:"isRead"`
	JobID       *primitive.ObjectID `bson:"job_id,omitempty" json:"jobId,omitempty"`
	Metadata    map[string]any      `bson:"metadata" json:"metadata"`
	CompanyName string              `bson:"company_name,omitempty" json:"companyName,omitempty"`
	CompanyLogo string              `bson:"company_logo,omitempty" json:"companyLogo,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"createdAt"`
}
