package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         *string   `gorm:"type:varchar(100)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	Type         string    `gorm:"type:varchar(20);not null;default:'USER'"`
	Role         string    `gorm:"type:varchar(20);not null;default:'normal'"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"`
	IsSubscribed bool      `gorm:"not null;default:false"`
	Avatar       *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
