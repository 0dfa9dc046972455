package entities

import (
	"time"

	"github.com/google/uuid"
)

// MailStatus tracks whether a support message has been handled
type MailStatus string

const (
	MailStatusPending MailStatus = "Pending"
	MailStatusSolved  MailStatus = "Solved"
)

// Toggle flips between the two statuses
func (s MailStatus) Toggle() MailStatus {
	if s == MailStatusPending {
		return MailStatusSolved
	}
	return MailStatusPending
}

// Mail is a user-submitted support message
type Mail struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    MailStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CreateMailInput represents input for submitting a support message
type CreateMailInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
