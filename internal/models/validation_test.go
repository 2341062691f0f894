package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemRequestValidate(t *testing.T) {
	valid := MenuItemRequest{Name: "Pad Thai", Price: 12.00, Category: "mains"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		request MenuItemRequest
		wantErr string
	}{
		{"missing name", MenuItemRequest{Price: 12.00, Category: "mains"}, "name is required"},
		{"negative price", MenuItemRequest{Name: "Pad Thai", Price: -1, Category: "mains"}, "price must not be negative"},
		{"missing category", MenuItemRequest{Name: "Pad Thai", Price: 12.00}, "category is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInventoryItemRequestValidate(t *testing.T) {
	valid := InventoryItemRequest{Name: "Rice", Quantity: 10, Unit: "kg", MinThreshold: 5}
	assert.NoError(t, valid.Validate())

	negative := InventoryItemRequest{Name: "Rice", Quantity: -1, Unit: "kg"}
	assert.Error(t, negative.Validate())

	noUnit := InventoryItemRequest{Name: "Rice", Quantity: 10}
	assert.Error(t, noUnit.Validate())
}

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name     string
		item     InventoryItem
		expected StockLevel
	}{
		{"above threshold", InventoryItem{Quantity: 10, MinThreshold: 5}, StockInStock},
		{"at threshold", InventoryItem{Quantity: 5, MinThreshold: 5}, StockInStock},
		{"below threshold", InventoryItem{Quantity: 4, MinThreshold: 5}, StockLow},
		{"zero", InventoryItem{Quantity: 0, MinThreshold: 5}, StockOut},
		{"negative", InventoryItem{Quantity: -2, MinThreshold: 5}, StockOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.ClassifyStock())
		})
	}
}

func TestScheduleEntryRequestValidate(t *testing.T) {
	valid := ScheduleEntryRequest{EmployeeID: "emp-1", ShiftDate: "2026-03-14", StartTime: "08:00", EndTime: "16:00"}
	assert.NoError(t, valid.Validate())

	badDate := ScheduleEntryRequest{EmployeeID: "emp-1", ShiftDate: "14/03/2026", StartTime: "08:00", EndTime: "16:00"}
	assert.Error(t, badDate.Validate())

	badTime := ScheduleEntryRequest{EmployeeID: "emp-1", ShiftDate: "2026-03-14", StartTime: "8am", EndTime: "16:00"}
	assert.Error(t, badTime.Validate())
}

func TestUserRequestValidate(t *testing.T) {
	valid := UserRequest{Username: "manager1", Password: "supersecret", Role: "manager"}
	assert.NoError(t, valid.Validate(true))

	shortPassword := UserRequest{Username: "manager1", Password: "short", Role: "manager"}
	assert.Error(t, shortPassword.Validate(true))

	// Updates may omit the password entirely, but a short one is rejected.
	noPassword := UserRequest{Username: "manager1", Role: "admin"}
	assert.NoError(t, noPassword.Validate(false))
	shortOnUpdate := UserRequest{Username: "manager1", Password: "short", Role: "admin"}
	assert.Error(t, shortOnUpdate.Validate(false))

	badRole := UserRequest{Username: "manager1", Password: "supersecret", Role: "owner"}
	assert.Error(t, badRole.Validate(true))
}

func TestFeedbackRequestValidate(t *testing.T) {
	valid := FeedbackRequest{CustomerName: "Alex", Rating: 4, Comment: "Great food"}
	assert.NoError(t, valid.Validate())

	for _, rating := range []int{0, 6, -1} {
		invalid := FeedbackRequest{CustomerName: "Alex", Rating: rating}
		assert.Error(t, invalid.Validate())
	}

	noName := FeedbackRequest{Rating: 4}
	assert.Error(t, noName.Validate())
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range []string{"cash", "card", "mobile"} {
		assert.True(t, ValidPaymentMethod(method))
	}
	assert.False(t, ValidPaymentMethod("check"))
	assert.False(t, ValidPaymentMethod(""))
}
