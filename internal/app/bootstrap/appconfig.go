// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds JobHub's app-level configuration. WAFFLE's CoreConfig
// covers ports, TLS, logging, CORS, and request limits; everything specific
// to the job board lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration // zero issues tokens without expiry

	// One-time codes
	OTPTTL       time.Duration
	OTPStore     string // "memory", "mongo", or "redis"
	RedisURL     string // required when OTPStore is "redis"
	SweepSpec    string // cron spec for maintenance jobs
	PendingTTL   time.Duration
	OTPIPLimit   int
	OTPMailLimit int

	// Email/SMTP configuration. An empty host logs mail instead of sending it.
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	SiteName     string

	// Audit logging: "all", "db", "log", or "off"
	AuditLogAuth string
	AuditLogJobs string

	// Admin bootstrap; skipped when either is blank.
	AdminEmail    string
	AdminPassword string

	// Browser origins allowed on the live channel; empty accepts any.
	WSAllowedOrigins []string
}
