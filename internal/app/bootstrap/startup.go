// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	"github.com/dalemusser/jobhub/internal/app/store/audit"
	notificationstore "github.com/dalemusser/jobhub/internal/app/store/notifications"
	pendingstore "github.com/dalemusser/jobhub/internal/app/store/pendingusers"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/auth"
	"github.com/dalemusser/jobhub/internal/app/system/credentials"
	"github.com/dalemusser/jobhub/internal/app/system/mailer"
	"github.com/dalemusser/jobhub/internal/app/system/notify"
	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"github.com/dalemusser/jobhub/internal/app/system/ratelimit"
	"github.com/dalemusser/jobhub/internal/app/system/realtime"
	"github.com/dalemusser/jobhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Services are the long-lived components shared by every feature.
type Services struct {
	Tokens      *auth.Tokens
	Middleware  *auth.Middleware
	Credentials *credentials.Service
	Audit       *auditlog.Logger
	Hub         *realtime.Hub
	Notify      *notify.Dispatcher
	OTPLimiter  *ratelimit.OTPLimiter
	Scheduler   *workers.Scheduler
}

// Startup builds the shared services after the schema is in place, creates
// the admin account when configured, and starts the maintenance scheduler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Services == nil {
		return fmt.Errorf("startup: services not allocated")
	}
	db := deps.MongoDatabase
	svc := deps.Services

	tokens, err := auth.NewTokens(appCfg.JWTSecret, appCfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	svc.Tokens = tokens
	svc.Middleware = auth.NewMiddleware(tokens, logger)

	svc.Audit = auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth: appCfg.AuditLogAuth,
		Jobs: appCfg.AuditLogJobs,
	})

	codes, mem := newOTPStore(appCfg, deps)
	svc.Credentials = &credentials.Service{
		Accounts:   accountstore.New(db),
		Seekers:    seekerstore.New(db),
		Recruiters: recruiterstore.New(db),
		Pending:    pendingstore.New(db),
		OTP:        otp.NewManager(codes, appCfg.OTPTTL),
		Mail: mailer.New(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			User:     appCfg.MailSMTPUser,
			Pass:     appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		}, logger),
		Tokens:   tokens,
		Audit:    svc.Audit,
		Log:      logger,
		SiteName: appCfg.SiteName,
	}
	logger.Info("one-time code store selected", zap.String("store", appCfg.OTPStore))

	if err := ensureAdmin(ctx, svc.Credentials, appCfg, logger); err != nil {
		return err
	}

	svc.Hub = realtime.NewHub(logger)
	svc.Notify = notify.New(notificationstore.New(db), svc.Hub, logger)
	svc.OTPLimiter = ratelimit.NewOTPLimiterWithConfig(
		appCfg.OTPIPLimit, 10*time.Minute,
		appCfg.OTPMailLimit, 10*time.Minute,
	)

	svc.Scheduler = newScheduler(appCfg, db, mem, logger)
	return svc.Scheduler.Start()
}

// newOTPStore picks the code backend. The in-process store is also
// returned so the scheduler can sweep it.
func newOTPStore(appCfg AppConfig, deps DBDeps) (otp.Store, *otp.MemoryStore) {
	switch appCfg.OTPStore {
	case OTPStoreMongo:
		return otp.NewMongoStore(deps.MongoDatabase), nil
	case OTPStoreRedis:
		return otp.NewRedisStore(deps.Redis), nil
	default:
		mem := otp.NewMemoryStore()
		return mem, mem
	}
}

func newScheduler(appCfg AppConfig, db *mongo.Database, mem *otp.MemoryStore, logger *zap.Logger) *workers.Scheduler {
	s := workers.NewScheduler(appCfg.SweepSpec, logger)
	if mem != nil {
		s.Add("sweep-expired-codes", workers.SweepCodes(mem, time.Now))
	}
	if appCfg.PendingTTL > 0 {
		s.Add("prune-pending-registrations", workers.PrunePending(pendingstore.New(db), appCfg.PendingTTL, time.Now))
	}
	return s
}

// ensureAdmin creates the configured admin account on first start. An
// existing account with that email is left untouched.
func ensureAdmin(ctx context.Context, creds *credentials.Service, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" || appCfg.AdminPassword == "" {
		return nil
	}
	created, err := creds.BootstrapAdmin(ctx, appCfg.AdminEmail, appCfg.AdminPassword)
	if err != nil {
		logger.Error("admin bootstrap failed", zap.Error(err))
		return err
	}
	if created {
		logger.Info("admin account created", zap.String("email", appCfg.AdminEmail))
	}
	return nil
}
