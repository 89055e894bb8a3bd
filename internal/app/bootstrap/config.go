// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// OTP store backends.
const (
	OTPStoreMemory = "memory"
	OTPStoreMongo  = "mongo"
	OTPStoreRedis  = "redis"
)

// appConfigKeys defines the configuration keys for JobHub. They load from
// config files (mongo_uri), environment variables (JOBHUB_MONGO_URI), and
// command-line flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "jobhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: auth.DefaultDevSecret, Desc: "HS256 signing secret for session tokens (must be strong in production)"},
	{Name: "token_ttl", Default: "0s", Desc: "Session token lifetime; 0 issues tokens without expiry"},

	// One-time codes
	{Name: "otp_ttl", Default: "3m", Desc: "Lifetime of email verification and password reset codes"},
	{Name: "otp_store", Default: OTPStoreMemory, Desc: "Code store: 'memory', 'mongo', or 'redis'"},
	{Name: "redis_url", Default: "", Desc: "Redis URL (redis://host:6379/0), required when otp_store=redis"},
	{Name: "otp_sweep_spec", Default: "@every 1m", Desc: "Cron spec for maintenance jobs"},
	{Name: "pending_retention", Default: "0s", Desc: "Prune pending-registration markers older than this; 0 keeps them"},
	{Name: "otp_ip_limit", Default: 10, Desc: "Code requests allowed per client IP per 10 minutes"},
	{Name: "otp_email_limit", Default: 3, Desc: "Code requests allowed per email per 10 minutes"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs mail instead of sending)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@jobhub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "JobHub", Desc: "From display name"},
	{Name: "site_name", Default: "JobHub", Desc: "Product name used in emails"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_jobs", Default: "all", Desc: "Job board event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin account created on startup if missing"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrapped admin account"},

	{Name: "ws_allowed_origins", Default: "", Desc: "Comma-separated browser origins allowed on /ws (blank allows any)"},
}

// LoadConfig loads WAFFLE core config and app-specific config. Precedence
// is flags > env > files > defaults; app env vars use the JOBHUB_ prefix.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "JOBHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		TokenTTL:  appValues.Duration("token_ttl", 0),

		OTPTTL:       appValues.Duration("otp_ttl", otp.DefaultTTL),
		OTPStore:     strings.ToLower(strings.TrimSpace(appValues.String("otp_store"))),
		RedisURL:     appValues.String("redis_url"),
		SweepSpec:    appValues.String("otp_sweep_spec"),
		PendingTTL:   appValues.Duration("pending_retention", 0),
		OTPIPLimit:   appValues.Int("otp_ip_limit"),
		OTPMailLimit: appValues.Int("otp_email_limit"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		SiteName:     appValues.String("site_name"),

		AuditLogAuth: appValues.String("audit_log_auth"),
		AuditLogJobs: appValues.String("audit_log_jobs"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),

		WSAllowedOrigins: splitList(appValues.String("ws_allowed_origins")),
	}
	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig rejects configurations that would fail later at runtime.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if strings.TrimSpace(appCfg.JWTSecret) == "" {
		return fmt.Errorf("jwt_secret must be set")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTSecret == auth.DefaultDevSecret {
		return fmt.Errorf("jwt_secret must be changed from the development default in prod")
	}
	if appCfg.TokenTTL < 0 || appCfg.OTPTTL < 0 {
		return fmt.Errorf("token_ttl and otp_ttl must not be negative")
	}

	switch appCfg.OTPStore {
	case OTPStoreMemory, OTPStoreMongo:
	case OTPStoreRedis:
		if strings.TrimSpace(appCfg.RedisURL) == "" {
			return fmt.Errorf("otp_store=redis requires redis_url")
		}
	default:
		return fmt.Errorf("otp_store must be memory, mongo, or redis (got %q)", appCfg.OTPStore)
	}

	if (appCfg.AdminEmail == "") != (appCfg.AdminPassword == "") {
		logger.Warn("admin bootstrap needs both admin_email and admin_password; skipping")
	}
	return nil
}
