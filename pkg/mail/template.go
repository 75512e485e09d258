package mail

import (
	"fmt"
	"html/template"
	"strings"
)

// VerificationSubject is the subject line used for OTP emails.
const VerificationSubject = "Verify your email - iVoice Chat"

var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee; border-radius: 10px; max-width: 500px; margin: auto;">
  <h2 style="color: #333; text-align: center;">Welcome to iVoice Chat!</h2>
  <p>Hi {{.Username}},</p>
  <p>Thank you for signing up. Please use the following 6-digit OTP to verify your email address:</p>
  <div style="background: #f4f4f4; padding: 15px; font-size: 24px; font-weight: bold; text-align: center; border-radius: 5px; letter-spacing: 5px; margin: 20px 0;">{{.OTP}}</div>
  <p style="color: #777; font-size: 12px; text-align: center;">This OTP is valid for 10 minutes.</p>
  <hr style="border: 0; border-top: 1px solid #eee;" />
  <p style="color: #999; font-size: 12px; text-align: center;">If you didn't sign up for iVoice, please ignore this email.</p>
</div>
`))

// VerificationEmail renders the HTML body carrying a one-time code.
func VerificationEmail(username, otp string) (string, error) {
	var buf strings.Builder
	err := verificationTemplate.Execute(&buf, struct {
		Username string
		OTP      string
	}{Username: username, OTP: otp})
	if err != nil {
		return "", fmt.Errorf("mail: render verification template: %w", err)
	}
	return buf.String(), nil
}
