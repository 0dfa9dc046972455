package usecases

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"maintenance-genie.backend/internal/domain/entities"
	domainerrors "maintenance-genie.backend/internal/domain/errors"
	"maintenance-genie.backend/internal/domain/repositories"
	"maintenance-genie.backend/internal/infrastructure/payments"
	"maintenance-genie.backend/pkg/logger"
)

var timeNow = time.Now

// PaymentGateway starts payments with the card provider
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, params payments.CreateIntentParams) (*payments.Intent, error)
}

// PaymentUsecase handles checkout and webhook reconciliation
type PaymentUsecase struct {
	serviceRepo repositories.ServiceRepository
	userRepo    repositories.UserRepository
	subRepo     repositories.SubscriptionRepository
	txRepo      repositories.PaymentTransactionRepository
	eventRepo   repositories.WebhookEventRepository
	gateway     PaymentGateway
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	serviceRepo repositories.ServiceRepository,
	userRepo repositories.UserRepository,
	subRepo repositories.SubscriptionRepository,
	txRepo repositories.PaymentTransactionRepository,
	eventRepo repositories.WebhookEventRepository,
	gateway PaymentGateway,
) *PaymentUsecase {
	return &PaymentUsecase{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		subRepo:     subRepo,
		txRepo:      txRepo,
		eventRepo:   eventRepo,
		gateway:     gateway,
	}
}

// ListServices lists the purchasable plans
func (u *PaymentUsecase) ListServices(ctx context.Context) ([]*entities.Service, error) {
	return u.serviceRepo.List(ctx)
}

// CreateIntent starts a checkout for a plan and returns the client secret.
// The metadata round-trips through the provider so the webhook can
// reconcile without any local pending state.
func (u *PaymentUsecase) CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentIntentInput) (string, error) {
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return "", domainerrors.BadRequest("Invalid service ID")
	}

	service, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("Service not found")
		}
		return "", err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	intent, err := u.gateway.CreatePaymentIntent(ctx, payments.CreateIntentParams{
		Amount:          int64(math.Round(service.Price * 100)),
		Currency:        input.Currency,
		PaymentMethodID: input.PaymentMethodID,
		Metadata: map[string]string{
			"user_id":    user.ID.String(),
			"user_email": user.Email,
			"user_role":  string(user.Role),
			"user_type":  string(user.Type),
			"service_id": service.ID.String(),
			"plan":       string(service.Plan),
		},
	})
	if err != nil {
		return "", domainerrors.ExternalService("Failed to create payment intent", err)
	}

	return intent.ClientSecret, nil
}

// ProcessEvent applies a verified webhook event. Every error here is
// logged and swallowed by the handler; the provider always gets a 200 so
// it stops redelivering.
func (u *PaymentUsecase) ProcessEvent(ctx context.Context, event *payments.Event) error {
	if err := u.eventRepo.Create(ctx, &entities.WebhookEvent{
		EventID: event.ID,
		Type:    event.Type,
	}); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEvent) {
			logger.Info(ctx, "duplicate webhook event, acknowledging",
				zap.String("event_id", event.ID))
			return nil
		}
		return err
	}

	switch event.Type {
	case payments.EventPaymentSucceeded:
		return u.applyPaymentSucceeded(ctx, &event.Data.Object)
	case payments.EventPaymentFailed:
		logger.Warn(ctx, "payment failed",
			zap.String("user_id", event.Data.Object.Metadata["user_id"]),
			zap.String("status", event.Data.Object.Status))
		return nil
	default:
		logger.Info(ctx, "unhandled webhook event type", zap.String("type", event.Type))
		return nil
	}
}

func (u *PaymentUsecase) applyPaymentSucceeded(ctx context.Context, intent *payments.PaymentIntent) error {
	userID, err := uuid.Parse(intent.Metadata["user_id"])
	if err != nil {
		return errors.New("payment intent metadata missing user_id")
	}
	serviceID, err := uuid.Parse(intent.Metadata["service_id"])
	if err != nil {
		return errors.New("payment intent metadata missing service_id")
	}
	plan := entities.PlanKind(intent.Metadata["plan"])

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Role = entities.UserRolePremium
	user.IsSubscribed = true
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	service, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}

	start := timeNow()
	subscription := &entities.Subscription{
		UserID:    user.ID,
		ServiceID: service.ID,
		Plan:      plan,
		StartDate: start,
		EndDate:   plan.SubscriptionEnd(start),
		Status:    "active",
		Price:     service.Price,
	}
	if err := u.subRepo.Create(ctx, subscription); err != nil {
		return err
	}

	if err := u.txRepo.Create(ctx, &entities.PaymentTransaction{
		UserID:         user.ID,
		SubscriptionID: subscription.ID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		PaymentMethod:  intent.PaymentMethod,
		Status:         intent.Status,
	}); err != nil {
		return err
	}

	logger.Info(ctx, "subscription activated",
		zap.String("user_id", user.ID.String()),
		zap.String("plan", string(plan)))
	return nil
}
