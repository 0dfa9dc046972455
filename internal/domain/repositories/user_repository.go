package repositories

import (
	"context"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
)

// UserRepository defines user/admin data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByEmailAndType(ctx context.Context, email string, accountType entities.AccountType) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListByType(ctx context.Context, accountType entities.AccountType) ([]*entities.User, error)
	ListByTypePaged(ctx context.Context, accountType entities.AccountType, offset, limit int) ([]*entities.User, error)
	CountByType(ctx context.Context, accountType entities.AccountType) (int64, error)
}

// PendingRegistrationRepository defines OTP record operations
type PendingRegistrationRepository interface {
	Create(ctx context.Context, pending *entities.PendingRegistration) error
	GetByEmail(ctx context.Context, email string, purpose entities.OtpPurpose) (*entities.PendingRegistration, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
