package repositories

import (
	"context"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
)

// ServiceRepository defines purchasable plan operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	List(ctx context.Context) ([]*entities.Service, error)
}

// SubscriptionRepository defines subscription operations
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entities.Subscription) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error)
}

// PaymentTransactionRepository records processed payments
type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *entities.PaymentTransaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentTransaction, error)
}

// WebhookEventRepository is the dedup ledger for provider events.
// Create returns domainerrors.ErrDuplicateEvent when the provider event id
// was already recorded.
type WebhookEventRepository interface {
	Create(ctx context.Context, event *entities.WebhookEvent) error
}
