package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/domain/repositories"
	"maintenance-genie.backend/pkg/logger"
)

// MsgEnrichmentFailed is returned when the item is stored but the AI
// enrichment could not run.
const MsgEnrichmentFailed = "Failed to generate additional data for item"

// Recommender produces maintenance recommendations for an item
type Recommender interface {
	GenerateItemRecommendations(ctx context.Context, item *entities.Item, premium bool) (serviceIntervals, forumSuggestions []string, err error)
}

// UploadRemover deletes a stored upload by name
type UploadRemover interface {
	Remove(name string) error
}

// ItemUsecase handles item tracking and AI enrichment
type ItemUsecase struct {
	itemRepo    repositories.ItemRepository
	userRepo    repositories.UserRepository
	recommender Recommender
	uploads     UploadRemover
}

// NewItemUsecase creates a new item usecase
func NewItemUsecase(
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	recommender Recommender,
	uploads UploadRemover,
) *ItemUsecase {
	return &ItemUsecase{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		recommender: recommender,
		uploads:     uploads,
	}
}

// AddItem persists the item first, then enriches it with recommendations.
// The row survives an enrichment failure; the caller gets an error so the
// client knows the generated fields are missing. imageName is the stored
// upload filename ("" when no file was sent) and is cleaned up if the row
// itself cannot be written.
func (u *ItemUsecase) AddItem(ctx context.Context, userID uuid.UUID, input *entities.CreateItemInput, imageName string) (*entities.Item, error) {
	item := &entities.Item{
		UserID:   userID,
		Name:     input.Name,
		Brand:    input.Brand,
		Model:    input.Model,
		Category: input.Category,
		Image:    optionalString(imageName),
		VIN:      optionalString(input.VIN),
	}
	if input.TotalMileage > 0 {
		item.TotalMileage = null.Float64From(input.TotalMileage)
	}
	item.LastServiceName = optionalString(input.LastServiceName)

	var err error
	if item.PurchaseDate, err = parseOptionalDate(input.PurchaseDate); err != nil {
		return nil, domainerrors.BadRequest("Invalid purchase_date")
	}
	if item.LastServiceDate, err = parseOptionalDate(input.LastServiceDate); err != nil {
		return nil, domainerrors.BadRequest("Invalid last_service_date")
	}

	if err := u.itemRepo.Create(ctx, item); err != nil {
		if removeErr := u.uploads.Remove(imageName); removeErr != nil {
			logger.Error(ctx, "failed to remove upload after item create failure", zap.Error(removeErr))
		}
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	premium := user.Role == entities.UserRolePremium

	intervals, forums, err := u.recommender.GenerateItemRecommendations(ctx, item, premium)
	if err != nil {
		logger.Error(ctx, "item enrichment failed",
			zap.String("item_id", item.ID.String()), zap.Error(err))
		return nil, domainerrors.ExternalService(MsgEnrichmentFailed, err)
	}

	if err := u.itemRepo.UpdateRecommendations(ctx, item.ID, intervals, forums); err != nil {
		return nil, err
	}
	item.ServiceIntervals = intervals
	item.ForumSuggestions = forums

	return item, nil
}

// ListItems returns the caller's items
func (u *ItemUsecase) ListItems(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error) {
	return u.itemRepo.ListByUserID(ctx, userID)
}

// GetItem returns one of the caller's items. Items belonging to someone
// else are indistinguishable from missing ones.
func (u *ItemUsecase) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*entities.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return item, nil
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// parseOptionalDate accepts the date-only form the frontend sends and
// full RFC 3339 timestamps.
func parseOptionalDate(s string) (null.Time, error) {
	if s == "" {
		return null.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return null.TimeFrom(t), nil
		}
	}
	return null.Time{}, domainerrors.ErrInvalidInput
}
