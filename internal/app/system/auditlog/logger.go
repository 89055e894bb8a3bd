// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/jobhub/internal/app/store/audit"
	"github.com/dalemusser/jobhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, registration,
	// password, one-time codes).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Jobs controls logging for job-board actions (posting, applying,
	// applicant decisions). Same values as Auth.
	Jobs string
}

// EventStore persists audit events. *audit.Store satisfies it.
type EventStore interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger writes audit events to MongoDB and/or zap according to Config.
type Logger struct {
	store  EventStore
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store EventStore, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// Source identifies where a request came from.
type Source struct {
	IP        string
	UserAgent string
}

// FromRequest captures the client IP and user agent of r.
func FromRequest(r *http.Request) Source {
	if r == nil {
		return Source{}
	}
	return Source{IP: ratelimit.ClientIP(r), UserAgent: r.UserAgent()}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op, so tests and optional wiring can pass nil.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryJobs:
		setting = l.config.Jobs
	default:
		setting = "all"
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) auth(ctx context.Context, src Source, eventType string, userID *primitive.ObjectID, success bool, reason string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		UserID:        userID,
		IP:            src.IP,
		UserAgent:     src.UserAgent,
		Success:       success,
		FailureReason: reason,
		Details:       details,
	})
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, src Source, userID primitive.ObjectID, email, role string) {
	l.auth(ctx, src, audit.EventLoginSuccess, &userID, true, "",
		map[string]string{"email": email, "role": role})
}

// LoginFailedUserNotFound logs a login for an email without an account.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, src Source, email string) {
	l.auth(ctx, src, audit.EventLoginFailedUserNotFound, nil, false, "user not found",
		map[string]string{"attempted_email": email})
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, src Source, userID primitive.ObjectID, email string) {
	l.auth(ctx, src, audit.EventLoginFailedWrongPassword, &userID, false, "wrong password",
		map[string]string{"email": email})
}

// LoginFailedWrongRole logs a login that named a role the account does not hold.
func (l *Logger) LoginFailedWrongRole(ctx context.Context, src Source, userID primitive.ObjectID, email, requested string) {
	l.auth(ctx, src, audit.EventLoginFailedWrongRole, &userID, false, "role mismatch",
		map[string]string{"email": email, "requested_role": requested})
}

// Registered logs a new account.
func (l *Logger) Registered(ctx context.Context, src Source, userID primitive.ObjectID, email, role string) {
	l.auth(ctx, src, audit.EventRegistered, &userID, true, "",
		map[string]string{"email": email, "role": role})
}

// PasswordChanged logs a password change by the signed-in user.
func (l *Logger) PasswordChanged(ctx context.Context, src Source, userID primitive.ObjectID) {
	l.auth(ctx, src, audit.EventPasswordChanged, &userID, true, "", nil)
}

// PasswordReset logs a password reset through the one-time-code flow.
func (l *Logger) PasswordReset(ctx context.Context, src Source, userID primitive.ObjectID, email string) {
	l.auth(ctx, src, audit.EventPasswordReset, &userID, true, "",
		map[string]string{"email": email})
}

// OTPSent logs a delivered one-time code.
func (l *Logger) OTPSent(ctx context.Context, src Source, purpose, email string) {
	l.auth(ctx, src, audit.EventOTPSent, nil, true, "",
		map[string]string{"purpose": purpose, "email": email})
}

// OTPFailed logs a rejected one-time code.
func (l *Logger) OTPFailed(ctx context.Context, src Source, purpose, email, reason string) {
	l.auth(ctx, src, audit.EventOTPFailed, nil, false, reason,
		map[string]string{"purpose": purpose, "email": email})
}

// OTPRateLimited logs a code request refused by the rate limiter.
func (l *Logger) OTPRateLimited(ctx context.Context, src Source, email string) {
	l.auth(ctx, src, audit.EventOTPRateLimited, nil, false, "rate limited",
		map[string]string{"email": email})
}

// EmailVerified logs a successful email verification.
func (l *Logger) EmailVerified(ctx context.Context, src Source, userID primitive.ObjectID, email string) {
	l.auth(ctx, src, audit.EventEmailVerified, &userID, true, "",
		map[string]string{"email": email})
}

// AdminBootstrapped logs creation of the startup admin account.
func (l *Logger) AdminBootstrapped(ctx context.Context, userID primitive.ObjectID, email string) {
	l.auth(ctx, Source{IP: "startup"}, audit.EventAdminBootstrapped, &userID, true, "",
		map[string]string{"email": email})
}

// --- Job Events ---

func (l *Logger) jobs(ctx context.Context, src Source, eventType string, actorID primitive.ObjectID, userID *primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryJobs,
		EventType: eventType,
		UserID:    userID,
		ActorID:   &actorID,
		IP:        src.IP,
		UserAgent: src.UserAgent,
		Success:   true,
		Details:   details,
	})
}

// JobPosted logs a new job post.
func (l *Logger) JobPosted(ctx context.Context, src Source, recruiterID, jobID primitive.ObjectID, title string) {
	l.jobs(ctx, src, audit.EventJobPosted, recruiterID, nil,
		map[string]string{"job_id": jobID.Hex(), "job_title": title})
}

// JobUpdated logs an edit to a job post.
func (l *Logger) JobUpdated(ctx context.Context, src Source, recruiterID, jobID primitive.ObjectID) {
	l.jobs(ctx, src, audit.EventJobUpdated, recruiterID, nil,
		map[string]string{"job_id": jobID.Hex()})
}

// JobDeleted logs removal of a job post.
func (l *Logger) JobDeleted(ctx context.Context, src Source, recruiterID, jobID primitive.ObjectID) {
	l.jobs(ctx, src, audit.EventJobDeleted, recruiterID, nil,
		map[string]string{"job_id": jobID.Hex()})
}

// JobApplied logs an application.
func (l *Logger) JobApplied(ctx context.Context, src Source, seekerID, jobID primitive.ObjectID) {
	l.jobs(ctx, src, audit.EventJobApplied, seekerID, &seekerID,
		map[string]string{"job_id": jobID.Hex()})
}

// ApplicantStatusChanged logs a recruiter decision on an applicant.
func (l *Logger) ApplicantStatusChanged(ctx context.Context, src Source, recruiterID, applicantID, jobID primitive.ObjectID, status string) {
	l.jobs(ctx, src, audit.EventApplicantStatusChanged, recruiterID, &applicantID,
		map[string]string{"job_id": jobID.Hex(), "status": status})
}
