package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"maintenance-genie.backend/internal/domain/entities"
	"maintenance-genie.backend/internal/infrastructure/payments"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailAndType(ctx context.Context, email string, accountType entities.AccountType) (*entities.User, error) {
	args := m.Called(ctx, email, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListByType(ctx context.Context, accountType entities.AccountType) ([]*entities.User, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListByTypePaged(ctx context.Context, accountType entities.AccountType, offset, limit int) ([]*entities.User, error) {
	args := m.Called(ctx, accountType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) CountByType(ctx context.Context, accountType entities.AccountType) (int64, error) {
	args := m.Called(ctx, accountType)
	return args.Get(0).(int64), args.Error(1)
}

// Mock PendingRegistrationRepository
type MockPendingRegistrationRepository struct {
	mock.Mock
}

func (m *MockPendingRegistrationRepository) Create(ctx context.Context, pending *entities.PendingRegistration) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *MockPendingRegistrationRepository) GetByEmail(ctx context.Context, email string, purpose entities.OtpPurpose) (*entities.PendingRegistration, error) {
	args := m.Called(ctx, email, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PendingRegistration), args.Error(1)
}

func (m *MockPendingRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Item), args.Error(1)
}

func (m *MockItemRepository) UpdateRecommendations(ctx context.Context, id uuid.UUID, serviceIntervals, forumSuggestions []string) error {
	args := m.Called(ctx, id, serviceIntervals, forumSuggestions)
	return args.Error(0)
}

// Mock ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	args := m.Called(ctx, service)
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]*entities.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Service), args.Error(1)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *entities.Subscription) error {
	args := m.Called(ctx, subscription)
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Subscription), args.Error(1)
}

// Mock PaymentTransactionRepository
type MockPaymentTransactionRepository struct {
	mock.Mock
}

func (m *MockPaymentTransactionRepository) Create(ctx context.Context, tx *entities.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentTransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentTransaction), args.Error(1)
}

// Mock WebhookEventRepository
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) Create(ctx context.Context, event *entities.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Mock MailRepository
type MockMailRepository struct {
	mock.Mock
}

func (m *MockMailRepository) Create(ctx context.Context, mail *entities.Mail) error {
	args := m.Called(ctx, mail)
	if mail.ID == uuid.Nil {
		mail.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockMailRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Mail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Mail), args.Error(1)
}

func (m *MockMailRepository) List(ctx context.Context) ([]*entities.Mail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Mail), args.Error(1)
}

func (m *MockMailRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MailStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	args := m.Called(ctx, to, otp)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	args := m.Called(ctx, to, otp)
	return args.Error(0)
}

func (m *MockMailer) SendAdminInvitation(ctx context.Context, to, password string) error {
	args := m.Called(ctx, to, password)
	return args.Error(0)
}

// Mock Recommender
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) GenerateItemRecommendations(ctx context.Context, item *entities.Item, premium bool) ([]string, []string, error) {
	args := m.Called(ctx, item, premium)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

// Mock UploadRemover
type MockUploadRemover struct {
	mock.Mock
}

func (m *MockUploadRemover) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// Mock PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, params payments.CreateIntentParams) (*payments.Intent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Intent), args.Error(1)
}
