package repositories

import (
	"context"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
)

// MailRepository defines support-message operations
type MailRepository interface {
	Create(ctx context.Context, mail *entities.Mail) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Mail, error)
	List(ctx context.Context) ([]*entities.Mail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MailStatus) error
}
