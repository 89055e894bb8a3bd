// Package credentials implements registration, login, password changes, and
// the one-time-code flows for password reset and email verification.
//
// Handlers decode and validate requests; Service owns the ordering of store
// writes, code checks, and best-effort emails. Every error it returns is an
// *apierr.Error, so handlers can pass it straight to apierr.Write.
package credentials

import (
	"context"
	"errors"
	"fmt"

	accountstore "github.com/dalemusser/jobhub/internal/app/store/accounts"
	recruiterstore "github.com/dalemusser/jobhub/internal/app/store/recruiters"
	seekerstore "github.com/dalemusser/jobhub/internal/app/store/seekers"
	"github.com/dalemusser/jobhub/internal/app/system/apierr"
	"github.com/dalemusser/jobhub/internal/app/system/auditlog"
	"github.com/dalemusser/jobhub/internal/app/system/mailer"
	"github.com/dalemusser/jobhub/internal/app/system/normalize"
	"github.com/dalemusser/jobhub/internal/app/system/otp"
	"github.com/dalemusser/jobhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost for account passwords.
const PasswordCost = 10

// MsgInvalidOTP is the only message clients see for a failed code check.
const MsgInvalidOTP = "Invalid or expired OTP"

const msgInvalidLogin = "Invalid email or password"

type Accounts interface {
	Create(ctx context.Context, a models.Account) (models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SeekerProfiles interface {
	Create(ctx context.Context, p models.JobSeekerProfile) (models.JobSeekerProfile, error)
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.JobSeekerProfile, error)
	SetEmailVerified(ctx context.Context, userID primitive.ObjectID) error
}

type RecruiterProfiles interface {
	Create(ctx context.Context, p models.RecruiterProfile) (models.RecruiterProfile, error)
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.RecruiterProfile, error)
	SetEmailVerified(ctx context.Context, userID primitive.ObjectID) error
}

type PendingMarkers interface {
	Mark(ctx context.Context, email string) error
	Clear(ctx context.Context, email string) error
}

// TokenIssuer signs session tokens. *auth.Tokens satisfies it.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// Service runs the credential flows. All fields except Audit are required;
// a nil Audit disables audit logging.
type Service struct {
	Accounts   Accounts
	Seekers    SeekerProfiles
	Recruiters RecruiterProfiles
	Pending    PendingMarkers
	OTP        *otp.Manager
	Mail       mailer.Sender
	Tokens     TokenIssuer
	Audit      *auditlog.Logger
	Log        *zap.Logger

	SiteName string
	// Cost overrides PasswordCost when non-zero.
	Cost int
}

func (s *Service) cost() int {
	if s.Cost != 0 {
		return s.Cost
	}
	return PasswordCost
}

// Registration carries the fields accepted at sign up. Seeker, when set,
// seeds the job seeker profile with any sections supplied up front.
type Registration struct {
	Email          string
	Password       string
	Role           string
	FullName       string
	MobileNumber   string
	CompanyName    string
	CompanyWebsite string
	Seeker         *models.JobSeekerProfile
}

// Register creates the account and its role profile, then clears any pending
// marker for the email. If the profile cannot be created the account is
// removed again so no account is left without a profile.
func (s *Service) Register(ctx context.Context, src auditlog.Source, in Registration) (models.Account, error) {
	if !models.IsRegistrableRole(in.Role) {
		return models.Account{}, apierr.Invalid("Role must be jobSeeker or recruiter")
	}
	email := normalize.Email(in.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return models.Account{}, apierr.Internal("Registration failed", err)
	}
	acct, err := s.Accounts.Create(ctx, models.Account{Email: email, PasswordHash: string(hash), Role: in.Role})
	if errors.Is(err, accountstore.ErrDuplicateEmail) {
		return models.Account{}, apierr.Conflict("Email already registered")
	}
	if err != nil {
		return models.Account{}, apierr.Internal("Registration failed", err)
	}

	if err := s.createProfile(ctx, acct, in); err != nil {
		if derr := s.Accounts.Delete(ctx, acct.ID); derr != nil {
			s.Log.Error("registration rollback failed; account has no profile",
				zap.String("account_id", acct.ID.Hex()), zap.Error(derr))
		}
		return models.Account{}, apierr.Internal("Registration failed", err)
	}

	if err := s.Pending.Clear(ctx, email); err != nil {
		s.Log.Warn("failed to clear pending registration", zap.String("email", email), zap.Error(err))
	}
	s.Audit.Registered(ctx, src, acct.ID, email, acct.Role)
	return acct, nil
}

func (s *Service) createProfile(ctx context.Context, acct models.Account, in Registration) error {
	switch acct.Role {
	case models.RoleJobSeeker:
		p := models.JobSeekerProfile{}
		if in.Seeker != nil {
			p = *in.Seeker
		}
		p.UserID = acct.ID
		p.FullName = in.FullName
		p.MobileNumber = in.MobileNumber
		p.EmailVerified = false
		_, err := s.Seekers.Create(ctx, p)
		return err
	case models.RoleRecruiter:
		_, err := s.Recruiters.Create(ctx, models.RecruiterProfile{
			UserID:         acct.ID,
			FullName:       in.FullName,
			Email:          acct.Email,
			PhoneNumber:    in.MobileNumber,
			CompanyName:    in.CompanyName,
			CompanyWebsite: in.CompanyWebsite,
		})
		return err
	}
	return fmt.Errorf("no profile for role %q", acct.Role)
}

// UserInfo is the account summary returned at login.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is a successful login.
type Session struct {
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
	Profile any      `json:"profile"`
}

// Login checks the credentials for the requested role and issues a token.
// An unknown email is recorded as a pending registration.
func (s *Service) Login(ctx context.Context, src auditlog.Source, email, password, role string) (*Session, error) {
	email = normalize.Email(email)

	acct, err := s.Accounts.ByEmail(ctx, email)
	if errors.Is(err, accountstore.ErrNotFound) {
		if merr := s.Pending.Mark(ctx, email); merr != nil {
			s.Log.Warn("failed to record pending registration", zap.String("email", email), zap.Error(merr))
		}
		s.Audit.LoginFailedUserNotFound(ctx, src, email)
		return nil, apierr.Invalid(msgInvalidLogin)
	}
	if err != nil {
		return nil, apierr.Internal("Login failed. Please try again.", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		s.Audit.LoginFailedWrongPassword(ctx, src, acct.ID, email)
		return nil, apierr.Invalid(msgInvalidLogin)
	}
	if acct.Role != role {
		s.Audit.LoginFailedWrongRole(ctx, src, acct.ID, email, role)
		return nil, apierr.Forbidden(fmt.Sprintf("You are not registered as a %s", role))
	}

	var profile any
	switch acct.Role {
	case models.RoleJobSeeker:
		p, err := s.Seekers.ByUserID(ctx, acct.ID)
		if errors.Is(err, seekerstore.ErrNotFound) {
			return nil, apierr.NotFound("Jobseeker profile not found")
		}
		if err != nil {
			return nil, apierr.Internal("Login failed. Please try again.", err)
		}
		profile = p
	case models.RoleRecruiter:
		p, err := s.Recruiters.ByUserID(ctx, acct.ID)
		if errors.Is(err, recruiterstore.ErrNotFound) {
			return nil, apierr.NotFound("Recruiter profile not found")
		}
		if err != nil {
			return nil, apierr.Internal("Login failed. Please try again.", err)
		}
		profile = p
	}

	token, err := s.Tokens.Issue(acct.ID.Hex(), acct.Role)
	if err != nil {
		return nil, apierr.Internal("Login failed. Please try again.", err)
	}
	s.Audit.LoginSuccess(ctx, src, acct.ID, email, acct.Role)
	return &Session{
		Token:   token,
		User:    UserInfo{ID: acct.ID.Hex(), Email: acct.Email, Role: acct.Role},
		Profile: profile,
	}, nil
}

// ChangePassword replaces the password of userID after checking current.
func (s *Service) ChangePassword(ctx context.Context, src auditlog.Source, userID primitive.ObjectID, current, next string) error {
	acct, err := s.Accounts.ByID(ctx, userID)
	if errors.Is(err, accountstore.ErrNotFound) {
		return apierr.NotFound("User not found")
	}
	if err != nil {
		return apierr.Internal("Server error", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(current)) != nil {
		return apierr.Unauthorized("Incorrect current password")
	}
	if err := s.setPassword(ctx, acct.ID, next); err != nil {
		return err
	}
	s.Audit.PasswordChanged(ctx, src, acct.ID)
	s.notifyPasswordChanged(ctx, acct)
	return nil
}

func (s *Service) setPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return apierr.Internal("Server error", err)
	}
	if err := s.Accounts.UpdatePassword(ctx, id, string(hash)); err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			return apierr.NotFound("User not found")
		}
		return apierr.Internal("Server error", err)
	}
	return nil
}

// notifyPasswordChanged emails the confirmation. Failures are logged only;
// the password has already changed.
func (s *Service) notifyPasswordChanged(ctx context.Context, acct *models.Account) {
	msg := mailer.BuildPasswordChanged(mailer.PasswordChangedData{
		SiteName: s.SiteName,
		Name:     s.displayName(ctx, acct),
	})
	msg.To = acct.Email
	if err := s.Mail.Send(ctx, msg); err != nil {
		s.Log.Warn("password change email failed",
			zap.String("account_id", acct.ID.Hex()), zap.Error(err))
	}
}

func (s *Service) displayName(ctx context.Context, acct *models.Account) string {
	switch acct.Role {
	case models.RoleJobSeeker:
		if p, err := s.Seekers.ByUserID(ctx, acct.ID); err == nil {
			return p.FullName
		}
	case models.RoleRecruiter:
		if p, err := s.Recruiters.ByUserID(ctx, acct.ID); err == nil {
			return p.FullName
		}
	}
	return ""
}

func (s *Service) codeData(code string) mailer.CodeEmailData {
	return mailer.CodeEmailData{
		SiteName:  s.SiteName,
		Code:      code,
		ExpiresIn: mailer.FormatExpiry(s.OTP.TTL()),
	}
}

// SendResetCode emails a password reset code to an existing account.
func (s *Service) SendResetCode(ctx context.Context, src auditlog.Source, email string) error {
	email = normalize.Email(email)
	if _, err := s.Accounts.ByEmail(ctx, email); err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			return apierr.NotFound("User not found")
		}
		return apierr.Internal("Failed to send OTP", err)
	}
	err := s.OTP.Issue(ctx, otp.PurposePasswordReset, email, func(ctx context.Context, code string) error {
		msg := mailer.BuildPasswordResetCode(s.codeData(code))
		msg.To = email
		return s.Mail.Send(ctx, msg)
	})
	if err != nil {
		return apierr.Internal("Failed to send OTP", err)
	}
	s.Audit.OTPSent(ctx, src, string(otp.PurposePasswordReset), email)
	return nil
}

func (s *Service) check(ctx context.Context, src auditlog.Source, p otp.Purpose, email, code string) error {
	err := s.OTP.Check(ctx, p, email, code)
	if err == nil {
		return nil
	}
	if errors.Is(err, otp.ErrInvalid) {
		s.Audit.OTPFailed(ctx, src, string(p), email, err.Error())
		return apierr.Expired(MsgInvalidOTP)
	}
	return apierr.Internal("Server error", err)
}

// consume deletes a spent code. The guarded change already happened, so a
// failure only leaves a code that will expire on its own.
func (s *Service) consume(ctx context.Context, p otp.Purpose, email string) {
	if err := s.OTP.Consume(ctx, p, email); err != nil {
		s.Log.Warn("failed to delete spent code",
			zap.String("purpose", string(p)), zap.String("email", email), zap.Error(err))
	}
}

// VerifyResetCode checks a password reset code without spending it.
func (s *Service) VerifyResetCode(ctx context.Context, src auditlog.Source, email, code string) error {
	return s.check(ctx, src, otp.PurposePasswordReset, normalize.Email(email), code)
}

// ResetPassword checks the code, sets the new password, then spends the code.
func (s *Service) ResetPassword(ctx context.Context, src auditlog.Source, email, code, password string) error {
	email = normalize.Email(email)
	if err := s.check(ctx, src, otp.PurposePasswordReset, email, code); err != nil {
		return err
	}
	acct, err := s.Accounts.ByEmail(ctx, email)
	if errors.Is(err, accountstore.ErrNotFound) {
		return apierr.NotFound("User not found")
	}
	if err != nil {
		return apierr.Internal("Failed to reset password", err)
	}
	if err := s.setPassword(ctx, acct.ID, password); err != nil {
		return err
	}
	s.consume(ctx, otp.PurposePasswordReset, email)
	s.Audit.PasswordReset(ctx, src, acct.ID, email)
	s.notifyPasswordChanged(ctx, acct)
	return nil
}

// SendVerificationCode emails an email verification code.
func (s *Service) SendVerificationCode(ctx context.Context, src auditlog.Source, email string) error {
	email = normalize.Email(email)
	if email == "" {
		return apierr.Invalid("Email is required")
	}
	err := s.OTP.Issue(ctx, otp.PurposeEmailVerify, email, func(ctx context.Context, code string) error {
		msg := mailer.BuildEmailVerification(s.codeData(code))
		msg.To = email
		return s.Mail.Send(ctx, msg)
	})
	if err != nil {
		return apierr.Internal("Could not send OTP", err)
	}
	s.Audit.OTPSent(ctx, src, string(otp.PurposeEmailVerify), email)
	return nil
}

// VerifyEmail checks the code, marks the caller's role profile verified,
// then spends the code.
func (s *Service) VerifyEmail(ctx context.Context, src auditlog.Source, userID primitive.ObjectID, email, code string) error {
	email = normalize.Email(email)
	if email == "" || code == "" {
		return apierr.Invalid("Email and OTP are required")
	}
	if err := s.check(ctx, src, otp.PurposeEmailVerify, email, code); err != nil {
		return err
	}

	acct, err := s.Accounts.ByID(ctx, userID)
	if errors.Is(err, accountstore.ErrNotFound) {
		return apierr.NotFound("User not found")
	}
	if err != nil {
		return apierr.Internal("Server error", err)
	}

	switch acct.Role {
	case models.RoleJobSeeker:
		err = s.Seekers.SetEmailVerified(ctx, acct.ID)
	case models.RoleRecruiter:
		err = s.Recruiters.SetEmailVerified(ctx, acct.ID)
	}
	if errors.Is(err, seekerstore.ErrNotFound) || errors.Is(err, recruiterstore.ErrNotFound) {
		return apierr.NotFound("Profile not found")
	}
	if err != nil {
		return apierr.Internal("Server error", err)
	}

	s.consume(ctx, otp.PurposeEmailVerify, email)
	s.Audit.EmailVerified(ctx, src, acct.ID, email)
	return nil
}

// BootstrapAdmin creates the admin account for email if no account uses it.
// It reports whether an account was created.
func (s *Service) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalize.Email(email)
	if _, err := s.Accounts.ByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, accountstore.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	acct, err := s.Accounts.Create(ctx, models.Account{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin})
	if errors.Is(err, accountstore.ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.Audit.AdminBootstrapped(ctx, acct.ID, email)
	return true, nil
}
