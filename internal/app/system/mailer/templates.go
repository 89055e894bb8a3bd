// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// CodeEmailData holds data for the one-time-code templates.
type CodeEmailData struct {
	SiteName  string
	Code      string
	ExpiresIn string // e.g., "3 minutes"
}

// PasswordChangedData holds data for the password-changed notice.
type PasswordChangedData struct {
	SiteName string
	Name     string
	Year     int
}

// FormatExpiry renders d the way the emails show it.
func FormatExpiry(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// BuildEmailVerification creates the email-verification code message.
func BuildEmailVerification(data CodeEmailData) Email {
	return Email{
		Subject: "Your Email Verification OTP",
		TextBody: fmt.Sprintf(
			"Thank you for using %s.\n\nYour OTP is: %s\n\nThis OTP is valid for %s.\n\nIf you did not request this, please ignore this email.\n",
			data.SiteName, data.Code, data.ExpiresIn),
		HTMLBody: render(codeHTML, codeView{
			CodeEmailData: data,
			Heading:       "Email Verification",
			Intro:         "Thank you for using " + data.SiteName + ". Your OTP is:",
		}),
	}
}

// BuildPasswordResetCode creates the password-reset code message.
func BuildPasswordResetCode(data CodeEmailData) Email {
	return Email{
		Subject: "Reset Your Password - Code Inside",
		TextBody: fmt.Sprintf(
			"We received a request to reset your %s password.\n\nYour reset code is: %s\n\nThis code expires in %s.\n\nIf you didn't request this, please ignore the email.\n",
			data.SiteName, data.Code, data.ExpiresIn),
		HTMLBody: render(codeHTML, codeView{
			CodeEmailData: data,
			Heading:       "Password Reset Request",
			Intro:         "We received a request to reset your password. Use the code below to reset it:",
		}),
	}
}

// BuildPasswordChanged creates the notice sent after a password change or reset.
func BuildPasswordChanged(data PasswordChangedData) Email {
	if data.Name == "" {
		data.Name = "User"
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	return Email{
		Subject: "Password Changed Successfully",
		TextBody: fmt.Sprintf(
			"Dear %s,\n\nYour %s account password was changed successfully.\n\nIf this was not you, please contact our support team immediately.\n",
			data.Name, data.SiteName),
		HTMLBody: render(passwordChangedHTML, data),
	}
}

type codeView struct {
	CodeEmailData
	Heading string
	Intro   string
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

var codeHTML = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Heading}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 16px; text-align: center;">
              <h2 style="margin: 0; color: #4a00e0;">{{.Heading}}</h2>
            </td>
          </tr>
          <tr>
            <td style="padding: 16px 32px 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">{{.Intro}}</p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 32px; font-weight: 700; letter-spacing: 8px; font-family: 'Courier New', monospace;">{{.Code}}</span>
              </div>
              <p style="margin: 0; font-size: 13px; color: #6b7280; text-align: center;">
                This code expires in {{.ExpiresIn}}. If you did not request it, please ignore this email.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 16px 32px; background-color: #f9fafb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">{{.SiteName}} Team</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var passwordChangedHTML = template.Must(template.New("passwordChanged").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Password Change Notification</title>
</head>
<body style="margin: 0; padding: 30px; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <div style="max-width: 500px; margin: auto; background-color: #ffffff; padding: 30px; border-radius: 10px;">
    <h2 style="color: #4a00e0; text-align: center;">Password Change Notification</h2>
    <p>Dear <strong>{{.Name}}</strong>,</p>
    <p>Your account password was changed successfully.</p>
    <p>If this was not you, please contact our support team immediately.</p>
    <p>Thank you,<br><strong>{{.SiteName}} Team</strong></p>
    <hr style="margin-top: 40px;">
    <p style="font-size: 12px; color: #888; text-align: center;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
  </div>
</body>
</html>`))
