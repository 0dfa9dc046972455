package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/domain/repositories"
	"maintenance-genie.backend/internal/infrastructure/mail"
	"maintenance-genie.backend/pkg/crypto"
	"maintenance-genie.backend/pkg/jwt"
	"maintenance-genie.backend/pkg/logger"
	"maintenance-genie.backend/pkg/redis"
)

// Registration flow messages. The frontend matches on these strings, so
// they are part of the API contract.
const (
	MsgEmailAlreadyRegistered = "Email already registered"
	MsgOtpAlreadyPending      = "An OTP has already been sent to this email. Please check your inbox or wait for expiration."
	MsgOtpExpiredResent       = "OTP expired. A new OTP has been sent to your email."
	MsgOtpSent                = "OTP sent successfully to your email. Please verify it to continue."
	MsgOtpInvalidOrExpired    = "Invalid or expired OTP"
	MsgOtpInvalid             = "Invalid OTP"
	MsgOtpMatched             = "OTP matched successfully. You can now set your name and password."
	MsgRegistrationComplete   = "Registration successful"
	MsgUserNotFound           = "User not found"
	MsgResetOtpSent           = "OTP sent successfully for password change"
	MsgPasswordReset          = "Password reset successfully"
	MsgOtpCooldown            = "Please wait before requesting another OTP"
)

// otpResendCooldown throttles reset-code requests per email. Enforced only
// when redis is available.
const otpResendCooldown = time.Minute

// RegistrationUsecase drives the three-step OTP registration flow and the
// password-reset flow that reuses the same pending-OTP machinery.
type RegistrationUsecase struct {
	pendingRepo repositories.PendingRegistrationRepository
	userRepo    repositories.UserRepository
	mailer      mail.Mailer
	jwtService  *jwt.JWTService
	now         func() time.Time
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	pendingRepo repositories.PendingRegistrationRepository,
	userRepo repositories.UserRepository,
	mailer mail.Mailer,
	jwtService *jwt.JWTService,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		jwtService:  jwtService,
		now:         time.Now,
	}
}

// BeginRegistration starts step 1: reject registered emails, keep a live
// OTP pending, replace an expired one, or send a fresh code.
func (u *RegistrationUsecase) BeginRegistration(ctx context.Context, input *entities.BeginRegistrationInput) (string, error) {
	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return "", err
	}
	if existing != nil && existing.ProfileComplete() {
		return "", domainerrors.BadRequest(MsgEmailAlreadyRegistered)
	}

	pending, err := u.pendingRepo.GetByEmail(ctx, input.Email, entities.OtpPurposeRegister)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return "", err
	}

	if pending != nil {
		if !pending.Expired(u.now()) {
			return "", domainerrors.BadRequest(MsgOtpAlreadyPending)
		}
		if err := u.pendingRepo.Delete(ctx, pending.ID); err != nil {
			return "", err
		}
		if err := u.issueOtp(ctx, input.Email, entities.OtpPurposeRegister); err != nil {
			return "", err
		}
		return MsgOtpExpiredResent, nil
	}

	if err := u.issueOtp(ctx, input.Email, entities.OtpPurposeRegister); err != nil {
		return "", err
	}
	return MsgOtpSent, nil
}

// VerifyOtp is step 2: on success the email is anchored as an account
// without credentials and a scoped profile-completion token is returned.
func (u *RegistrationUsecase) VerifyOtp(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error) {
	pending, err := u.pendingRepo.GetByEmail(ctx, input.Email, entities.OtpPurposeRegister)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest(MsgOtpInvalidOrExpired)
		}
		return nil, err
	}

	// Expiry is checked before the code itself
	if pending.Expired(u.now()) {
		return nil, domainerrors.ErrOtpExpired
	}
	if pending.Otp != input.Otp {
		return nil, domainerrors.ErrOtpMismatch
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user = &entities.User{
			Email:  input.Email,
			Type:   entities.AccountTypeUser,
			Role:   entities.UserRoleNormal,
			Status: entities.AccountStatusActive,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.ProfileComplete() {
		return nil, domainerrors.BadRequest(MsgEmailAlreadyRegistered)
	}

	if err := u.pendingRepo.Delete(ctx, pending.ID); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateProfileToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// CompleteProfile is step 3: set name and password on the anchored account
func (u *RegistrationUsecase) CompleteProfile(ctx context.Context, userID uuid.UUID, input *entities.CompleteProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("Email is not registered")
		}
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user.Name = null.StringFrom(input.Name)
	user.PasswordHash = null.StringFrom(hash)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ForgotPassword issues a reset-purpose OTP for an existing account
func (u *RegistrationUsecase) ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest(MsgUserNotFound)
		}
		return err
	}

	if redis.Available() {
		ok, err := redis.SetNX(ctx, "otp:cooldown:"+user.Email, 1, otpResendCooldown)
		if err != nil {
			logger.Warn(ctx, "otp cooldown check failed", zap.Error(err))
		} else if !ok {
			return domainerrors.BadRequest(MsgOtpCooldown)
		}
	}

	// Any previous reset code is superseded
	pending, err := u.pendingRepo.GetByEmail(ctx, user.Email, entities.OtpPurposeResetPassword)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if pending != nil {
		if err := u.pendingRepo.Delete(ctx, pending.ID); err != nil {
			return err
		}
	}

	return u.issueOtp(ctx, user.Email, entities.OtpPurposeResetPassword)
}

// ResetPassword redeems a reset-purpose OTP and stores the new password
func (u *RegistrationUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	pending, err := u.pendingRepo.GetByEmail(ctx, input.Email, entities.OtpPurposeResetPassword)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest(MsgOtpInvalidOrExpired)
		}
		return err
	}

	if pending.Expired(u.now()) {
		return domainerrors.ErrOtpExpired
	}
	if pending.Otp != input.Otp {
		return domainerrors.ErrOtpMismatch
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest(MsgUserNotFound)
		}
		return err
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = null.StringFrom(hash)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return u.pendingRepo.Delete(ctx, pending.ID)
}

func (u *RegistrationUsecase) issueOtp(ctx context.Context, email string, purpose entities.OtpPurpose) error {
	otp, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	pending := &entities.PendingRegistration{
		Email:     email,
		Otp:       otp,
		Purpose:   purpose,
		ExpiresAt: u.now().Add(entities.OtpTTL),
	}
	if err := u.pendingRepo.Create(ctx, pending); err != nil {
		return err
	}

	switch purpose {
	case entities.OtpPurposeResetPassword:
		err = u.mailer.SendPasswordResetOTP(ctx, email, otp)
	default:
		err = u.mailer.SendRegistrationOTP(ctx, email, otp)
	}
	if err != nil {
		// the code is stored; the caller may retry via the resend path
		logger.Error(ctx, "failed to send otp email", zap.String("email", email), zap.Error(err))
	}
	return nil
}
