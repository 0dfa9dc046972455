package models

import (
	"time"

	"github.com/google/uuid"
)

type PendingRegistration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_pending_email_purpose"`
	Purpose   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_pending_email_purpose"`
	Otp       string    `gorm:"type:varchar(8);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
