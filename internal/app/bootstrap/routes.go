// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"

	accountfeature "github.com/dalemusser/jobhub/internal/app/features/account"
	activityfeature "github.com/dalemusser/jobhub/internal/app/features/activity"
	auditlogfeature "github.com/dalemusser/jobhub/internal/app/features/auditlog"
	errorsfeature "github.com/dalemusser/jobhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/jobhub/internal/app/features/health"
	jobsfeature "github.com/dalemusser/jobhub/internal/app/features/jobs"
	livefeature "github.com/dalemusser/jobhub/internal/app/features/live"
	notificationsfeature "github.com/dalemusser/jobhub/internal/app/features/notifications"
	recruitersfeature "github.com/dalemusser/jobhub/internal/app/features/recruiters"
	seekersfeature "github.com/dalemusser/jobhub/internal/app/features/seekers"
	verifyfeature "github.com/dalemusser/jobhub/internal/app/features/verify"
	"github.com/dalemusser/jobhub/internal/app/system/limits"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. WAFFLE calls it after Startup,
// so deps.Services is populated.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc := deps.Services
	if svc == nil || svc.Middleware == nil {
		return nil, fmt.Errorf("build handler: services not started")
	}
	db := deps.MongoDatabase
	mw := svc.Middleware

	r := chi.NewRouter()
	r.Use(middleware.RequestSize(limits.MaxJSONBody))

	errs := errorsfeature.NewHandler(logger)
	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	healthHandler.Hub = svc.Hub
	if deps.Redis != nil {
		healthHandler.Redis = deps.Redis
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Credentials and email verification
	accountHandler := accountfeature.NewHandler(svc.Credentials, svc.OTPLimiter, logger)
	r.Mount("/api/auth", accountfeature.Routes(accountHandler, mw))

	verifyHandler := verifyfeature.NewHandler(svc.Credentials, svc.OTPLimiter, logger)
	r.Mount("/api/verify", verifyfeature.Routes(verifyHandler, mw))

	// Profiles
	seekersHandler := seekersfeature.NewHandler(db, logger)
	r.Mount("/api/users", seekersfeature.Routes(seekersHandler, mw))

	recruitersHandler := recruitersfeature.NewHandler(db, svc.Notify, logger)
	recruitersHandler.Audit = svc.Audit
	r.Mount("/api/recruiters", recruitersfeature.Routes(recruitersHandler, mw))

	// Job board
	jobsHandler := jobsfeature.NewHandler(db, logger)
	jobsHandler.Audit = svc.Audit
	r.Mount("/api/jobs", jobsfeature.Routes(jobsHandler, mw))

	// Notifications and their live channel
	notificationsHandler := notificationsfeature.NewHandler(db, svc.Notify, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler, mw))

	liveHandler := livefeature.NewHandler(svc.Hub, appCfg.WSAllowedOrigins, logger)
	r.Mount("/ws", livefeature.Routes(liveHandler, mw))

	// Admin
	activityHandler := activityfeature.NewHandler(db, logger)
	r.Mount("/api/activities", activityfeature.Routes(activityHandler, mw))

	auditHandler := auditlogfeature.NewHandler(db, logger)
	r.Mount("/api/audit", auditlogfeature.Routes(auditHandler, mw))

	return r, nil
}
