package models

import (
	"fmt"
	"time"
)

// OrderMessage represents a placed order dispatched to kitchen workers
type OrderMessage struct {
	OrderNumber  string           `json:"order_number"`
	Channel      string           `json:"channel"`
	CustomerName *string          `json:"customer_name,omitempty"`
	Items        []QueueOrderItem `json:"items"`
	TotalAmount  float64          `json:"total_amount"`
	Priority     int              `json:"priority"`
}

// StatusUpdateMessage represents a queue order status change notification
type StatusUpdateMessage struct {
	OrderNumber    string     `json:"order_number"`
	OldStatus      string     `json:"old_status"`
	NewStatus      string     `json:"new_status"`
	ChangedBy      string     `json:"changed_by"`
	Timestamp      time.Time  `json:"timestamp"`
	EstimatedReady *time.Time `json:"estimated_ready,omitempty"`
}

// NewOrderMessage builds the kitchen dispatch message for a placed order
func NewOrderMessage(req *PlaceOrderRequest, orderNumber string, priority int) *OrderMessage {
	return &OrderMessage{
		OrderNumber:  orderNumber,
		Channel:      req.Channel,
		CustomerName: req.CustomerName,
		Items:        req.Items,
		TotalAmount:  req.CalculateTotalAmount(),
		Priority:     priority,
	}
}

// NewStatusUpdateMessage builds a notification for an order status change
func NewStatusUpdateMessage(orderNumber, oldStatus, newStatus, changedBy string, estimatedReady *time.Time) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber:    orderNumber,
		OldStatus:      oldStatus,
		NewStatus:      newStatus,
		ChangedBy:      changedBy,
		Timestamp:      time.Now().UTC(),
		EstimatedReady: estimatedReady,
	}
}

// GetPrepTime returns the simulated preparation duration per channel
func GetPrepTime(channel string) time.Duration {
	switch channel {
	case "walk_in":
		return 8 * time.Second
	case "online":
		return 12 * time.Second
	default:
		return 10 * time.Second
	}
}

// GenerateRoutingKey generates a routing key for order dispatch messages
func GenerateRoutingKey(channel string, priority int) string {
	return fmt.Sprintf("kitchen.%s.%d", channel, priority)
}
