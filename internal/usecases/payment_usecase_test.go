package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/infrastructure/payments"
	"maintenance-genie.backend/internal/usecases"
)

type paymentFixture struct {
	uc          *usecases.PaymentUsecase
	serviceRepo *MockServiceRepository
	userRepo    *MockUserRepository
	subRepo     *MockSubscriptionRepository
	txRepo      *MockPaymentTransactionRepository
	eventRepo   *MockWebhookEventRepository
	gateway     *MockPaymentGateway
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		serviceRepo: new(MockServiceRepository),
		userRepo:    new(MockUserRepository),
		subRepo:     new(MockSubscriptionRepository),
		txRepo:      new(MockPaymentTransactionRepository),
		eventRepo:   new(MockWebhookEventRepository),
		gateway:     new(MockPaymentGateway),
	}
	f.uc = usecases.NewPaymentUsecase(f.serviceRepo, f.userRepo, f.subRepo, f.txRepo, f.eventRepo, f.gateway)
	return f
}

func halfYearlyService() *entities.Service {
	return &entities.Service{
		ID:    uuid.New(),
		Name:  "Premium Half Year",
		Price: 49.99,
		Plan:  entities.PlanHalfYearly,
	}
}

func TestCreateIntent_Success(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	user := completeUser("a@genie.io")
	service := halfYearlyService()

	f.serviceRepo.On("GetByID", ctx, service.ID).Return(service, nil)
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.gateway.On("CreatePaymentIntent", ctx, mock.MatchedBy(func(p payments.CreateIntentParams) bool {
		return p.Amount == 4999 &&
			p.Currency == "usd" &&
			p.Metadata["user_id"] == user.ID.String() &&
			p.Metadata["service_id"] == service.ID.String() &&
			p.Metadata["plan"] == "HalfYearly"
	})).Return(&payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Status: "requires_confirmation"}, nil)

	secret, err := f.uc.CreateIntent(ctx, user.ID, &entities.CreatePaymentIntentInput{
		ServiceID:       service.ID.String(),
		PaymentMethodID: "pm_card",
		Currency:        "usd",
	})
	require.NoError(t, err)
	require.Equal(t, "pi_1_secret", secret)
	f.gateway.AssertExpectations(t)
}

func TestCreateIntent_UnknownService(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	serviceID := uuid.New()

	f.serviceRepo.On("GetByID", ctx, serviceID).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.CreateIntent(ctx, uuid.New(), &entities.CreatePaymentIntentInput{
		ServiceID:       serviceID.String(),
		PaymentMethodID: "pm_card",
		Currency:        "usd",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Status)
}

func TestCreateIntent_GatewayFailure(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	user := completeUser("a@genie.io")
	service := halfYearlyService()

	f.serviceRepo.On("GetByID", ctx, service.ID).Return(service, nil)
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.gateway.On("CreatePaymentIntent", ctx, mock.Anything).Return(nil, errors.New("gateway timeout"))

	_, err := f.uc.CreateIntent(ctx, user.ID, &entities.CreatePaymentIntentInput{
		ServiceID:       service.ID.String(),
		PaymentMethodID: "pm_card",
		Currency:        "usd",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, domainerrors.CodeExternalService, appErr.Code)
}

func succeededEvent(user *entities.User, service *entities.Service) *payments.Event {
	event := &payments.Event{ID: "evt_1", Type: payments.EventPaymentSucceeded}
	event.Data.Object = payments.PaymentIntent{
		ID:            "pi_1",
		Amount:        4999,
		Currency:      "usd",
		Status:        "succeeded",
		PaymentMethod: "pm_card",
		Metadata: map[string]string{
			"user_id":    user.ID.String(),
			"service_id": service.ID.String(),
			"plan":       string(service.Plan),
		},
	}
	return event
}

func TestProcessEvent_PaymentSucceeded(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	user := completeUser("a@genie.io")
	service := halfYearlyService()

	f.eventRepo.On("Create", ctx, mock.MatchedBy(func(e *entities.WebhookEvent) bool {
		return e.EventID == "evt_1"
	})).Return(nil)
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.UserRolePremium && u.IsSubscribed
	})).Return(nil)
	f.serviceRepo.On("GetByID", ctx, service.ID).Return(service, nil)

	var createdSub *entities.Subscription
	f.subRepo.On("Create", ctx, mock.AnythingOfType("*entities.Subscription")).
		Run(func(args mock.Arguments) {
			createdSub = args.Get(1).(*entities.Subscription)
		}).Return(nil)
	f.txRepo.On("Create", ctx, mock.MatchedBy(func(tx *entities.PaymentTransaction) bool {
		return tx.Amount == 4999 && tx.Currency == "usd" && tx.Status == "succeeded"
	})).Return(nil)

	require.NoError(t, f.uc.ProcessEvent(ctx, succeededEvent(user, service)))

	require.NotNil(t, createdSub)
	require.Equal(t, entities.PlanHalfYearly, createdSub.Plan)
	require.WithinDuration(t, createdSub.StartDate.AddDate(0, 6, 0), createdSub.EndDate, time.Second)
	f.txRepo.AssertExpectations(t)
}

func TestProcessEvent_DuplicateEventIsNoop(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	user := completeUser("a@genie.io")
	service := halfYearlyService()

	f.eventRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrDuplicateEvent)

	require.NoError(t, f.uc.ProcessEvent(ctx, succeededEvent(user, service)))
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessEvent_PaymentFailedLogsOnly(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	f.eventRepo.On("Create", ctx, mock.Anything).Return(nil)

	event := &payments.Event{ID: "evt_2", Type: payments.EventPaymentFailed}
	event.Data.Object.Metadata = map[string]string{"user_id": uuid.New().String()}

	require.NoError(t, f.uc.ProcessEvent(ctx, event))
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessEvent_UnknownTypeAcked(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	f.eventRepo.On("Create", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.uc.ProcessEvent(ctx, &payments.Event{ID: "evt_3", Type: "charge.refunded"}))
}

func TestProcessEvent_MissingMetadata(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	f.eventRepo.On("Create", ctx, mock.Anything).Return(nil)

	event := &payments.Event{ID: "evt_4", Type: payments.EventPaymentSucceeded}
	require.Error(t, f.uc.ProcessEvent(ctx, event))
}

func TestProcessEvent_YearlyPlanEndDate(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	user := completeUser("a@genie.io")
	service := halfYearlyService()
	service.Plan = entities.PlanYearly

	f.eventRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	f.userRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.serviceRepo.On("GetByID", ctx, service.ID).Return(service, nil)

	var createdSub *entities.Subscription
	f.subRepo.On("Create", ctx, mock.AnythingOfType("*entities.Subscription")).
		Run(func(args mock.Arguments) {
			createdSub = args.Get(1).(*entities.Subscription)
		}).Return(nil)
	f.txRepo.On("Create", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.uc.ProcessEvent(ctx, succeededEvent(user, service)))
	require.WithinDuration(t, createdSub.StartDate.AddDate(1, 0, 0), createdSub.EndDate, time.Second)
}
