package models

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Brand           string    `gorm:"type:varchar(100);not null"`
	Model           string    `gorm:"type:varchar(100);not null"`
	Category        string    `gorm:"type:varchar(100);not null"`
	VIN             *string   `gorm:"type:varchar(100)"`
	PurchaseDate    *time.Time
	TotalMileage    *float64
	LastServiceDate *time.Time
	LastServiceName *string `gorm:"type:varchar(255)"`
	Image           *string `gorm:"type:varchar(255)"`
	// JSON-encoded string lists filled by the enricher
	ServiceIntervals string `gorm:"type:text"`
	ForumSuggestions string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User User `gorm:"foreignKey:UserID"`
}
