package usecases

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/domain/repositories"
	"maintenance-genie.backend/pkg/crypto"
	"maintenance-genie.backend/pkg/jwt"
)

// AuthUsecase handles login and session introspection for both account types
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login authenticates a USER account. Unknown email and wrong password are
// indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmailAndType(ctx, input.Email, entities.AccountTypeUser)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	return u.authenticate(user, input.Password)
}

// AdminLogin authenticates an ADMIN account. Unlike the user flow, an
// unknown admin email is reported as such.
func (u *AuthUsecase) AdminLogin(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	admin, err := u.userRepo.GetByEmailAndType(ctx, input.Email, entities.AccountTypeAdmin)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("You are not registered as an admin")
		}
		return nil, err
	}
	return u.authenticate(admin, input.Password)
}

func (u *AuthUsecase) authenticate(user *entities.User, password string) (*entities.AuthResponse, error) {
	// an account without credentials never finished registration
	if !user.ProfileComplete() {
		return nil, invalidCredentials()
	}
	if !crypto.CheckPassword(password, user.PasswordHash.String) {
		return nil, invalidCredentials()
	}
	if user.Status == entities.AccountStatusSuspended {
		return nil, domainerrors.Forbidden("Account is suspended")
	}

	token, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role), string(user.Type))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// GetUserByID returns the account behind a token
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func invalidCredentials() *domainerrors.AppError {
	return domainerrors.NewAppError(
		http.StatusUnauthorized,
		domainerrors.CodeInvalidCredentials,
		"Invalid email or password",
		domainerrors.ErrInvalidCredentials,
	)
}
