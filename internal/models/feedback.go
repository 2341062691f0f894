package models

import (
	"fmt"
	"strings"
	"time"
)

// Feedback represents one customer feedback entry
type Feedback struct {
	ID           string    `json:"id" db:"id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// FeedbackRequest is the payload for submitting feedback
type FeedbackRequest struct {
	CustomerName string `json:"customer_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Validate checks a feedback request
func (req *FeedbackRequest) Validate() error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("customer_name is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(req.Comment) > 1000 {
		return fmt.Errorf("comment must not exceed 1000 characters")
	}
	return nil
}
