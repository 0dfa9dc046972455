package entities

import (
	"time"

	"github.com/google/uuid"
)

// OtpPurpose says why a pending OTP record exists
type OtpPurpose string

const (
	OtpPurposeRegister      OtpPurpose = "REGISTER"
	OtpPurposeResetPassword OtpPurpose = "RESET_PASSWORD"
)

// OtpTTL is how long a one-time code stays valid
const OtpTTL = 15 * time.Minute

// PendingRegistration is the short-lived record gating account creation.
// At most one live record exists per email; expired records are replaced
// lazily on the next request.
type PendingRegistration struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Otp       string     `json:"-"`
	Purpose   OtpPurpose `json:"purpose"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired reports whether the code is past its window
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// BeginRegistrationInput represents registration step 1
type BeginRegistrationInput struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOtpInput represents registration step 2
type VerifyOtpInput struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=4"`
}

// ForgotPasswordInput requests a password-reset code
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput redeems a password-reset code
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required,len=4"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
