package mailer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/jobhub/internal/app/system/mailer"
	"go.uber.org/zap"
)

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Minute, "1 minute"},
		{3 * time.Minute, "3 minutes"},
		{time.Hour, "1 hour"},
		{3 * time.Hour, "3 hours"},
	}
	for _, tt := range tests {
		if got := mailer.FormatExpiry(tt.d); got != tt.want {
			t.Errorf("FormatExpiry(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBuildEmailVerification(t *testing.T) {
	e := mailer.BuildEmailVerification(mailer.CodeEmailData{SiteName: "JobHub", Code: "012345", ExpiresIn: "3 minutes"})

	if e.Subject != "Your Email Verification OTP" {
		t.Errorf("Subject = %q", e.Subject)
	}
	for _, body := range []string{e.TextBody, e.HTMLBody} {
		if !strings.Contains(body, "012345") {
			t.Error("body missing code")
		}
		if !strings.Contains(body, "3 minutes") {
			t.Error("body missing expiry")
		}
	}
	if e.To != "" {
		t.Error("To should be left for the caller")
	}
}

func TestBuildPasswordResetCode(t *testing.T) {
	e := mailer.BuildPasswordResetCode(mailer.CodeEmailData{SiteName: "JobHub", Code: "999999", ExpiresIn: "3 minutes"})
	if !strings.Contains(e.Subject, "Reset Your Password") {
		t.Errorf("Subject = %q", e.Subject)
	}
	if !strings.Contains(e.HTMLBody, "Password Reset Request") || !strings.Contains(e.HTMLBody, "999999") {
		t.Error("html body missing heading or code")
	}
}

func TestBuildPasswordChanged_DefaultsName(t *testing.T) {
	e := mailer.BuildPasswordChanged(mailer.PasswordChangedData{SiteName: "JobHub", Year: 2026})
	if !strings.Contains(e.TextBody, "Dear User") {
		t.Errorf("TextBody = %q", e.TextBody)
	}
	if !strings.Contains(e.HTMLBody, "2026 JobHub") {
		t.Error("html body missing footer year")
	}
}

func TestBuildPasswordChanged_EscapesName(t *testing.T) {
	e := mailer.BuildPasswordChanged(mailer.PasswordChangedData{SiteName: "JobHub", Name: "<b>x</b>"})
	if strings.Contains(e.HTMLBody, "<b>x</b>") {
		t.Error("name should be html-escaped")
	}
}

func TestSend_LogOnlyWithoutHost(t *testing.T) {
	m := mailer.New(mailer.Config{}, zap.NewNop())
	if m.Enabled() {
		t.Fatal("mailer without host should not be enabled")
	}
	if err := m.Send(context.Background(), mailer.Email{To: "a@b.com", Subject: "hi"}); err != nil {
		t.Errorf("Send: %v", err)
	}
}

func TestSend_RequiresRecipient(t *testing.T) {
	m := mailer.New(mailer.Config{}, zap.NewNop())
	if err := m.Send(context.Background(), mailer.Email{Subject: "hi"}); err == nil {
		t.Error("expected error for empty recipient")
	}
}

func TestSend_CanceledContext(t *testing.T) {
	m := mailer.New(mailer.Config{Host: "smtp.invalid"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, mailer.Email{To: "a@b.com"}); err == nil {
		t.Error("expected context error")
	}
}
