package repositories

import (
	"context"

	"github.com/google/uuid"
	"maintenance-genie.backend/internal/domain/entities"
)

// ItemRepository defines item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entities.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error)
	UpdateRecommendations(ctx context.Context, id uuid.UUID, serviceIntervals, forumSuggestions []string) error
}
