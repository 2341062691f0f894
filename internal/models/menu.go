package models

import (
	"fmt"
	"strings"
	"time"
)

// MenuItem represents a purchasable catalog entry. The POS flow treats
// catalog data as read-only; line items capture name and price at add time.
type MenuItem struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Available   bool      `json:"available" db:"available"`
	Popular     bool      `json:"popular" db:"popular"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// MenuItemRequest is the payload for creating or updating a menu item
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
	Popular     bool    `json:"popular"`
}

// Validate checks a menu item request
func (req *MenuItemRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("category is required")
	}
	return nil
}
