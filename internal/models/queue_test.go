package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderItems(quantity int, price float64) []QueueOrderItem {
	return []QueueOrderItem{{MenuItemID: "menu-1", Name: "Pad Thai", Quantity: quantity, Price: price}}
}

func TestPlaceOrderRequestValidate(t *testing.T) {
	longName := strings.Repeat("x", 101)
	emptyName := ""

	tests := []struct {
		name    string
		request PlaceOrderRequest
		wantErr string
	}{
		{
			name:    "valid walk-in",
			request: PlaceOrderRequest{Channel: "walk_in", Items: orderItems(2, 12.50)},
		},
		{
			name:    "valid online",
			request: PlaceOrderRequest{Channel: "online", Items: orderItems(1, 5.00)},
		},
		{
			name:    "unknown channel",
			request: PlaceOrderRequest{Channel: "drive_through", Items: orderItems(1, 5.00)},
			wantErr: "channel must be one of",
		},
		{
			name:    "empty items",
			request: PlaceOrderRequest{Channel: "walk_in"},
			wantErr: "items array cannot be empty",
		},
		{
			name:    "too many items",
			request: PlaceOrderRequest{Channel: "walk_in", Items: make([]QueueOrderItem, 21)},
			wantErr: "more than 20 items",
		},
		{
			name:    "quantity out of range",
			request: PlaceOrderRequest{Channel: "walk_in", Items: orderItems(11, 5.00)},
			wantErr: "quantity must be between 1 and 10",
		},
		{
			name:    "price out of range",
			request: PlaceOrderRequest{Channel: "walk_in", Items: orderItems(1, 1000.00)},
			wantErr: "price must be between 0.01 and 999.99",
		},
		{
			name:    "empty customer name",
			request: PlaceOrderRequest{Channel: "walk_in", CustomerName: &emptyName, Items: orderItems(1, 5.00)},
			wantErr: "customer_name must not be empty",
		},
		{
			name:    "long customer name",
			request: PlaceOrderRequest{Channel: "walk_in", CustomerName: &longName, Items: orderItems(1, 5.00)},
			wantErr: "customer_name must not exceed 100 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCalculatePriority(t *testing.T) {
	tests := []struct {
		name     string
		items    []QueueOrderItem
		expected int
	}{
		{"small order", orderItems(1, 10.00), 1},
		{"just below medium", orderItems(1, 49.99), 1},
		{"medium boundary", orderItems(1, 50.00), 5},
		{"exactly one hundred", orderItems(2, 50.00), 5},
		{"large order", orderItems(2, 60.00), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PlaceOrderRequest{Channel: "walk_in", Items: tt.items}
			assert.Equal(t, tt.expected, req.CalculatePriority())
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	date := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD_20260314_001", GenerateOrderNumber(date, 1))
	assert.Equal(t, "ORD_20260314_042", GenerateOrderNumber(date, 42))
	assert.Equal(t, "ORD_20260314_1000", GenerateOrderNumber(date, 1000))
}

func TestParseQueueOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "preparing", "ready", "completed", "cancelled"} {
		status, err := ParseQueueOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, QueueOrderStatus(valid), status)
	}

	_, err := ParseQueueOrderStatus("delivered")
	assert.Error(t, err)
}

func TestGenerateRoutingKey(t *testing.T) {
	assert.Equal(t, "kitchen.walk_in.1", GenerateRoutingKey("walk_in", 1))
	assert.Equal(t, "kitchen.online.10", GenerateRoutingKey("online", 10))
}

func TestGetPrepTime(t *testing.T) {
	assert.Equal(t, 8*time.Second, GetPrepTime("walk_in"))
	assert.Equal(t, 12*time.Second, GetPrepTime("online"))
	assert.Equal(t, 10*time.Second, GetPrepTime("unknown"))
}
