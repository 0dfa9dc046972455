package entities

import (
	"time"

	"github.com/google/uuid"
)

// PlanKind is the duration class of a purchasable plan
type PlanKind string

const (
	PlanHalfYearly PlanKind = "HalfYearly"
	PlanYearly     PlanKind = "Yearly"
)

// SubscriptionEnd computes the subscription end date for a plan. Anything
// other than HalfYearly runs a full year, matching the billing contract.
func (p PlanKind) SubscriptionEnd(start time.Time) time.Time {
	if p == PlanHalfYearly {
		return start.AddDate(0, 6, 0)
	}
	return start.AddDate(1, 0, 0)
}

// Service is a purchasable plan definition
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Features    []string  `json:"features"`
	Plan        PlanKind  `json:"plan"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateServiceInput represents input for creating a plan
type CreateServiceInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Features    []string `json:"features" binding:"required"`
	Plan        PlanKind `json:"plan" binding:"required,oneof=HalfYearly Yearly"`
}
