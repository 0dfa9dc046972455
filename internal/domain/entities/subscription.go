package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a user to a purchased service plan. Created only
// once the payment provider confirms the payment.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ServiceID uuid.UUID `json:"serviceId"`
	Plan      PlanKind  `json:"plan"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentTransaction is the immutable record of a processed payment event
type PaymentTransaction struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	Amount         int64     `json:"amount"` // provider minor units
	Currency       string    `json:"currency"`
	PaymentMethod  string    `json:"paymentMethod"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WebhookEvent records a processed provider event id so at-least-once
// deliveries are applied exactly once.
type WebhookEvent struct {
	ID        uuid.UUID `json:"id"`
	EventID   string    `json:"eventId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePaymentIntentInput represents input for starting a checkout
type CreatePaymentIntentInput struct {
	ServiceID       string `json:"service_id" binding:"required,uuid"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
	Currency        string `json:"currency" binding:"required"`
}
