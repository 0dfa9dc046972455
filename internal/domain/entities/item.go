package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Item is a tracked piece of equipment owned by a user. The two list
// fields are filled by the recommendation enricher after the row is
// persisted.
type Item struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"userId"`
	Name             string       `json:"name"`
	Brand            string       `json:"brand"`
	Model            string       `json:"model"`
	Category         string       `json:"category"`
	VIN              null.String  `json:"vin"`
	PurchaseDate     null.Time    `json:"purchaseDate"`
	TotalMileage     null.Float64 `json:"totalMileage"`
	LastServiceDate  null.Time    `json:"lastServiceDate"`
	LastServiceName  null.String  `json:"lastServiceName"`
	Image            null.String  `json:"image"`
	ServiceIntervals []string     `json:"serviceIntervals"`
	ForumSuggestions []string     `json:"forumSuggestions"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// CreateItemInput is bound from the multipart form; the optional image
// file is handled separately by the handler.
type CreateItemInput struct {
	Name            string  `form:"name" binding:"required"`
	Brand           string  `form:"brand" binding:"required"`
	Model           string  `form:"model" binding:"required"`
	Category        string  `form:"category" binding:"required"`
	VIN             string  `form:"vin"`
	PurchaseDate    string  `form:"purchase_date"`
	TotalMileage    float64 `form:"total_mileage"`
	LastServiceDate string  `form:"last_service_date"`
	LastServiceName string  `form:"last_service_name"`
}
