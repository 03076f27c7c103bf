package model

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem represents a dish on a restaurant's menu. Orders snapshot
// name and price from here at creation time.
type MenuItem struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	RestaurantID       uuid.UUID `json:"restaurantId" db:"restaurant_id"`
	Name               string    `json:"name" db:"name"`
	Description        string    `json:"description,omitempty" db:"description"`
	Price              float64   `json:"price" db:"price"`
	Category           string    `json:"category" db:"category"`
	Available          bool      `json:"available" db:"available"`
	PreparationMinutes int       `json:"preparationMinutes,omitempty" db:"preparation_minutes"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// CreateMenuItemRequest is the payload for adding a dish to a menu.
type CreateMenuItemRequest struct {
	RestaurantID       uuid.UUID `json:"restaurantId"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Price              float64   `json:"price"`
	Category           string    `json:"category"`
	PreparationMinutes int       `json:"preparationMinutes,omitempty"`
}
