package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/models"
)

// ItemRepository implements item data operations
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, item *entities.Item) error {
	m := &models.Item{
		ID:               item.ID,
		UserID:           item.UserID,
		Name:             item.Name,
		Brand:            item.Brand,
		Model:            item.Model,
		Category:         item.Category,
		VIN:              item.VIN.Ptr(),
		PurchaseDate:     item.PurchaseDate.Ptr(),
		TotalMileage:     item.TotalMileage.Ptr(),
		LastServiceDate:  item.LastServiceDate.Ptr(),
		LastServiceName:  item.LastServiceName.Ptr(),
		Image:            item.Image.Ptr(),
		ServiceIntervals: encodeStringList(item.ServiceIntervals),
		ForumSuggestions: encodeStringList(item.ForumSuggestions),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	var m models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return itemToEntity(&m), nil
}

// ListByUserID lists a user's items, newest first
func (r *ItemRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error) {
	var itemModels []models.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}

	var items []*entities.Item
	for _, m := range itemModels {
		model := m
		items = append(items, itemToEntity(&model))
	}
	return items, nil
}

// UpdateRecommendations stores the enricher output on an existing item
func (r *ItemRepository) UpdateRecommendations(ctx context.Context, id uuid.UUID, serviceIntervals, forumSuggestions []string) error {
	updates := map[string]interface{}{
		"service_intervals": encodeStringList(serviceIntervals),
		"forum_suggestions": encodeStringList(forumSuggestions),
		"updated_at":        time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func itemToEntity(m *models.Item) *entities.Item {
	return &entities.Item{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		Brand:            m.Brand,
		Model:            m.Model,
		Category:         m.Category,
		VIN:              null.StringFromPtr(m.VIN),
		PurchaseDate:     null.TimeFromPtr(m.PurchaseDate),
		TotalMileage:     null.Float64FromPtr(m.TotalMileage),
		LastServiceDate:  null.TimeFromPtr(m.LastServiceDate),
		LastServiceName:  null.StringFromPtr(m.LastServiceName),
		Image:            null.StringFromPtr(m.Image),
		ServiceIntervals: decodeStringList(m.ServiceIntervals),
		ForumSuggestions: decodeStringList(m.ForumSuggestions),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func encodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}
