package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"maintenance-genie.backend/pkg/logger"
)

// Mailer sends the transactional messages the registration and admin
// flows need.
type Mailer interface {
	SendRegistrationOTP(ctx context.Context, to, otp string) error
	SendPasswordResetOTP(ctx context.Context, to, otp string) error
	SendAdminInvitation(ctx context.Context, to, password string) error
}

// NoopMailer logs instead of sending. Used when SMTP credentials are not
// configured, so local development works without a mail account.
type NoopMailer struct{}

// NewNoopMailer creates a mailer that only logs
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

func (m *NoopMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	logger.Info(ctx, "smtp not configured, skipping registration otp email",
		zap.String("to", to), zap.String("otp", otp))
	return nil
}

func (m *NoopMailer) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	logger.Info(ctx, "smtp not configured, skipping password reset otp email",
		zap.String("to", to), zap.String("otp", otp))
	return nil
}

func (m *NoopMailer) SendAdminInvitation(ctx context.Context, to, password string) error {
	logger.Info(ctx, "smtp not configured, skipping admin invitation email",
		zap.String("to", to))
	_ = password
	return nil
}

func registrationOTPBody(otp string) (subject, body string) {
	subject = "Your Maintenance Genie verification code"
	body = fmt.Sprintf("Welcome to Maintenance Genie!\n\nYour verification code is %s. It expires in 15 minutes.\n\nIf you did not request this, you can ignore this email.", otp)
	return subject, body
}

func passwordResetOTPBody(otp string) (subject, body string) {
	subject = "Reset your Maintenance Genie password"
	body = fmt.Sprintf("A password reset was requested for your account.\n\nYour reset code is %s. It expires in 15 minutes.\n\nIf you did not request this, you can ignore this email.", otp)
	return subject, body
}

func adminInvitationBody(password string) (subject, body string) {
	subject = "You have been invited to Maintenance Genie"
	body = fmt.Sprintf("An administrator account was created for you.\n\nYour temporary password is %s. Please log in and change it right away.", password)
	return subject, body
}
