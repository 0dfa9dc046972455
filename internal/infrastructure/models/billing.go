package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Price       float64   `gorm:"not null"`
	Features    string    `gorm:"type:text"` // JSON-encoded string list
	Plan        string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Plan      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Price     float64   `gorm:"not null"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID"`
	Service Service `gorm:"foreignKey:ServiceID"`
}

type PaymentTransaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount         int64     `gorm:"not null"`
	Currency       string    `gorm:"type:varchar(10);not null"`
	PaymentMethod  string    `gorm:"type:varchar(100)"`
	Status         string    `gorm:"type:varchar(50);not null"`
	CreatedAt      time.Time

	Subscription Subscription `gorm:"foreignKey:SubscriptionID"`
}

type WebhookEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Type      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}
