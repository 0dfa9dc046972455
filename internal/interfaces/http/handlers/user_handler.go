package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/interfaces/http/response"
	"maintenance-genie.backend/internal/usecases"
)

type RegistrationService interface {
	BeginRegistration(ctx context.Context, input *entities.BeginRegistrationInput) (string, error)
	VerifyOtp(ctx context.Context, input *entities.VerifyOtpInput) (*entities.AuthResponse, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, input *entities.CompleteProfileInput) (*entities.User, error)
	ForgotPassword(ctx context.Context, input *entities.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
}

type AuthService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

type SupportService interface {
	SubmitMail(ctx context.Context, input *entities.CreateMailInput) (*entities.Mail, error)
}

// UserHandler handles registration, login and account endpoints
type UserHandler struct {
	registrationUsecase RegistrationService
	authUsecase         AuthService
	supportUsecase      SupportService
}

// NewUserHandler creates a new user handler
func NewUserHandler(registrationUsecase RegistrationService, authUsecase AuthService, supportUsecase SupportService) *UserHandler {
	return &UserHandler{
		registrationUsecase: registrationUsecase,
		authUsecase:         authUsecase,
		supportUsecase:      supportUsecase,
	}
}

// RegisterStep1 starts OTP registration
// POST /api/users/register-step1
func (h *UserHandler) RegisterStep1(c *gin.Context) {
	var input entities.BeginRegistrationInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	message, err := h.registrationUsecase.BeginRegistration(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "message": message})
}

// VerifyOtp redeems the registration OTP
// POST /api/users/verify-otp
func (h *UserHandler) VerifyOtp(c *gin.Context) {
	var input entities.VerifyOtpInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.registrationUsecase.VerifyOtp(c.Request.Context(), &input)
	if err != nil {
		// an expired code tells the client to request a fresh one
		if errors.Is(err, domainerrors.ErrOtpExpired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":         false,
				"message":         "OTP expired. Please request a new one.",
				"shouldResendOtp": true,
			})
			return
		}
		if errors.Is(err, domainerrors.ErrOtpMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": usecases.MsgOtpInvalid,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": usecases.MsgOtpMatched,
		"token":   auth.Token,
		"user": gin.H{
			"id":    auth.User.ID,
			"email": auth.User.Email,
		},
	})
}

// CompleteProfile finishes registration with name and password
// POST /api/users/register-step3
func (h *UserHandler) CompleteProfile(c *gin.Context) {
	var input entities.CompleteProfileInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.registrationUsecase.CompleteProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": usecases.MsgRegistrationComplete,
		"user":    user,
	})
}

// Login authenticates an end user
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// ForgotPassword issues a password-reset OTP
// POST /api/users/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.registrationUsecase.ForgotPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "message": usecases.MsgResetOtpSent})
}

// ResetPassword redeems a password-reset OTP
// POST /api/users/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.registrationUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		if errors.Is(err, domainerrors.ErrOtpExpired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":         false,
				"message":         "OTP expired. Please request a new one.",
				"shouldResendOtp": true,
			})
			return
		}
		if errors.Is(err, domainerrors.ErrOtpMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": usecases.MsgOtpInvalid,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "message": usecases.MsgPasswordReset})
}

// Me returns the authenticated user
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound(usecases.MsgUserNotFound))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Contact stores a support message
// POST /api/users/contact
func (h *UserHandler) Contact(c *gin.Context) {
	var input entities.CreateMailInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	mail, err := h.supportUsecase.SubmitMail(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"success": true, "mail": mail})
}
