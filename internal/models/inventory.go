package models

import (
	"fmt"
	"strings"
	"time"
)

// StockLevel classifies an inventory item's quantity against its threshold
type StockLevel string

const (
	StockInStock StockLevel = "in_stock"
	StockLow     StockLevel = "low_stock"
	StockOut     StockLevel = "out_of_stock"
)

// InventoryItem represents a tracked stock item
type InventoryItem struct {
	ID           string     `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Quantity     float64    `json:"quantity" db:"quantity"`
	Unit         string     `json:"unit" db:"unit"`
	MinThreshold float64    `json:"min_threshold" db:"min_threshold"`
	StockLevel   StockLevel `json:"stock_level"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty" db:"updated_at"`
}

// ClassifyStock derives the stock level from quantity and threshold
func (i *InventoryItem) ClassifyStock() StockLevel {
	if i.Quantity <= 0 {
		return StockOut
	}
	if i.Quantity < i.MinThreshold {
		return StockLow
	}
	return StockInStock
}

// InventoryActivity represents one restock or usage event
type InventoryActivity struct {
	ID         string    `json:"id" db:"id"`
	ItemID     string    `json:"item_id" db:"item_id"`
	ItemName   string    `json:"item_name" db:"item_name"`
	Kind       string    `json:"kind" db:"kind"`
	Delta      float64   `json:"delta" db:"delta"`
	Remaining  float64   `json:"remaining" db:"remaining"`
	RecordedBy string    `json:"recorded_by" db:"recorded_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// InventoryItemRequest is the payload for creating or updating stock
type InventoryItemRequest struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	MinThreshold float64 `json:"min_threshold"`
}

// Validate checks an inventory item request
func (req *InventoryItemRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if req.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if req.MinThreshold < 0 {
		return fmt.Errorf("min_threshold must not be negative")
	}
	if strings.TrimSpace(req.Unit) == "" {
		return fmt.Errorf("unit is required")
	}
	return nil
}
