package models

import (
	"fmt"
	"time"
)

// OrderChannel represents the source channel of a queue order
type OrderChannel string

const (
	ChannelWalkIn OrderChannel = "walk_in"
	ChannelOnline OrderChannel = "online"
)

// QueueOrderStatus represents the fulfillment status of a queue order
type QueueOrderStatus string

const (
	StatusPending   QueueOrderStatus = "pending"
	StatusPreparing QueueOrderStatus = "preparing"
	StatusReady     QueueOrderStatus = "ready"
	StatusCompleted QueueOrderStatus = "completed"
	StatusCancelled QueueOrderStatus = "cancelled"
)

// ParseQueueOrderStatus validates that the given value is a known status.
// Transitions between statuses are deliberately unchecked; only membership
// in the fixed set is enforced.
func ParseQueueOrderStatus(value string) (QueueOrderStatus, error) {
	switch QueueOrderStatus(value) {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return QueueOrderStatus(value), nil
	default:
		return "", fmt.Errorf("status must be one of: pending, preparing, ready, completed, cancelled")
	}
}

// QueueOrderItem is a detached snapshot of an ordered line. It shares no
// references with any live POS cart.
type QueueOrderItem struct {
	ID         string  `json:"id,omitempty" db:"id"`
	OrderID    string  `json:"order_id,omitempty" db:"order_id"`
	MenuItemID string  `json:"menu_item_id" db:"menu_item_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	Price      float64 `json:"price" db:"price"`
}

// QueueOrder represents a tracked walk-in or online order, independent of
// any active POS cart. Orders are never deleted within a session; completed
// and cancelled orders remain in the collection.
type QueueOrder struct {
	ID           string           `json:"id" db:"id"`
	Number       string           `json:"order_number" db:"number"`
	Channel      OrderChannel     `json:"channel" db:"channel"`
	CustomerName *string          `json:"customer_name,omitempty" db:"customer_name"`
	Items        []QueueOrderItem `json:"items"`
	TotalAmount  float64          `json:"total_amount" db:"total_amount"`
	Priority     int              `json:"priority" db:"priority"`
	Status       QueueOrderStatus `json:"status" db:"status"`
	ProcessedBy  *string          `json:"processed_by,omitempty" db:"processed_by"`
	ReceivedAt   time.Time        `json:"received_at" db:"received_at"`
	UpdatedAt    time.Time        `json:"updated_at,omitempty" db:"updated_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
}

// PlaceOrderRequest represents the request to place a new queue order
type PlaceOrderRequest struct {
	Channel      string           `json:"channel"`
	CustomerName *string          `json:"customer_name,omitempty"`
	Items        []QueueOrderItem `json:"items"`
}

// PlaceOrderResponse represents the response after placing an order
type PlaceOrderResponse struct {
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    QueueOrderStatus `json:"status" db:"status"`
	ChangedBy string           `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time        `json:"timestamp" db:"changed_at"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
}

// OrderTrackingResponse represents the response for order tracking
type OrderTrackingResponse struct {
	OrderNumber    string     `json:"order_number"`
	CurrentStatus  string     `json:"current_status"`
	UpdatedAt      time.Time  `json:"updated_at"`
	EstimatedReady *time.Time `json:"estimated_ready,omitempty"`
	ProcessedBy    *string    `json:"processed_by,omitempty"`
}

// Validate validates the place order request
func (req *PlaceOrderRequest) Validate() error {
	if _, err := parseChannel(req.Channel); err != nil {
		return err
	}

	if req.CustomerName != nil {
		if *req.CustomerName == "" {
			return fmt.Errorf("customer_name must not be empty when present")
		}
		if len(*req.CustomerName) > 100 {
			return fmt.Errorf("customer_name must not exceed 100 characters")
		}
	}

	return validateItems(req.Items)
}

// CalculateTotalAmount calculates the total amount for the order
func (req *PlaceOrderRequest) CalculateTotalAmount() float64 {
	total := 0.0
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CalculatePriority calculates the dispatch priority based on total amount
func (req *PlaceOrderRequest) CalculatePriority() int {
	total := req.CalculateTotalAmount()
	if total > 100.0 {
		return 10
	}
	if total >= 50.0 {
		return 5
	}
	return 1
}

// GenerateOrderNumber generates an order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}

func parseChannel(channel string) (OrderChannel, error) {
	switch OrderChannel(channel) {
	case ChannelWalkIn, ChannelOnline:
		return OrderChannel(channel), nil
	default:
		return "", fmt.Errorf("channel must be one of: walk_in, online")
	}
}

func validateItems(items []QueueOrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if len(items) > 20 {
		return fmt.Errorf("items array cannot contain more than 20 items")
	}

	for i, item := range items {
		if err := validateItem(item, i); err != nil {
			return err
		}
	}

	return nil
}

func validateItem(item QueueOrderItem, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if len(item.Name) == 0 {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if len(item.Name) > 50 {
		return fmt.Errorf("%s.name must not exceed 50 characters", prefix)
	}
	if item.Quantity < 1 || item.Quantity > 10 {
		return fmt.Errorf("%s.quantity must be between 1 and 10", prefix)
	}
	if item.Price < 0.01 || item.Price > 999.99 {
		return fmt.Errorf("%s.price must be between 0.01 and 999.99", prefix)
	}

	return nil
}
