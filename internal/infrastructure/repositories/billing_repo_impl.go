package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/models"
)

// ServiceRepository implements purchasable plan operations
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create creates a new service
func (r *ServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	m := &models.Service{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		Price:       service.Price,
		Features:    encodeStringList(service.Features),
		Plan:        string(service.Plan),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	service.ID = m.ID
	service.CreatedAt = m.CreatedAt
	service.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a service by ID
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return serviceToEntity(&m), nil
}

// List lists all services, newest first
func (r *ServiceRepository) List(ctx context.Context) ([]*entities.Service, error) {
	var serviceModels []models.Service
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	var services []*entities.Service
	for _, m := range serviceModels {
		model := m
		services = append(services, serviceToEntity(&model))
	}
	return services, nil
}

func serviceToEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Features:    decodeStringList(m.Features),
		Plan:        entities.PlanKind(m.Plan),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SubscriptionRepository implements subscription operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entities.Subscription) error {
	m := &models.Subscription{
		ID:        subscription.ID,
		UserID:    subscription.UserID,
		ServiceID: subscription.ServiceID,
		Plan:      string(subscription.Plan),
		StartDate: subscription.StartDate,
		EndDate:   subscription.EndDate,
		Status:    subscription.Status,
		Price:     subscription.Price,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	subscription.ID = m.ID
	subscription.CreatedAt = m.CreatedAt
	return nil
}

// GetByUserID lists a user's subscriptions, newest first
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error) {
	var subModels []models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subModels).Error
	if err != nil {
		return nil, err
	}

	var subscriptions []*entities.Subscription
	for _, m := range subModels {
		subscriptions = append(subscriptions, &entities.Subscription{
			ID:        m.ID,
			UserID:    m.UserID,
			ServiceID: m.ServiceID,
			Plan:      entities.PlanKind(m.Plan),
			StartDate: m.StartDate,
			EndDate:   m.EndDate,
			Status:    m.Status,
			Price:     m.Price,
			CreatedAt: m.CreatedAt,
		})
	}
	return subscriptions, nil
}

// PaymentTransactionRepository records processed payments
type PaymentTransactionRepository struct {
	db *gorm.DB
}

// NewPaymentTransactionRepository creates a new payment transaction repository
func NewPaymentTransactionRepository(db *gorm.DB) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{db: db}
}

// Create records a processed payment
func (r *PaymentTransactionRepository) Create(ctx context.Context, tx *entities.PaymentTransaction) error {
	m := &models.PaymentTransaction{
		ID:             tx.ID,
		UserID:         tx.UserID,
		SubscriptionID: tx.SubscriptionID,
		Amount:         tx.Amount,
		Currency:       tx.Currency,
		PaymentMethod:  tx.PaymentMethod,
		Status:         tx.Status,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	return nil
}

// ListByUserID lists a user's payment transactions, newest first
func (r *PaymentTransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentTransaction, error) {
	var txModels []models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}

	var transactions []*entities.PaymentTransaction
	for _, m := range txModels {
		transactions = append(transactions, &entities.PaymentTransaction{
			ID:             m.ID,
			UserID:         m.UserID,
			SubscriptionID: m.SubscriptionID,
			Amount:         m.Amount,
			Currency:       m.Currency,
			PaymentMethod:  m.PaymentMethod,
			Status:         m.Status,
			CreatedAt:      m.CreatedAt,
		})
	}
	return transactions, nil
}

// WebhookEventRepository is the dedup ledger for provider events
type WebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Create records a provider event id. The unique index on event_id makes
// concurrent redeliveries lose the race and surface as ErrDuplicateEvent.
func (r *WebhookEventRepository) Create(ctx context.Context, event *entities.WebhookEvent) error {
	m := &models.WebhookEvent{
		ID:      event.ID,
		EventID: event.EventID,
		Type:    event.Type,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEvent
		}
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}

// isUniqueViolation matches unique-constraint failures across postgres and
// the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
