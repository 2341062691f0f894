package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"canteen-system/internal/models"
)

func TestFormatNotification(t *testing.T) {
	timestamp := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	estimatedReady := timestamp.Add(8 * time.Second)

	tests := []struct {
		name     string
		update   models.StatusUpdateMessage
		expected string
	}{
		{
			name: "preparing with estimate",
			update: models.StatusUpdateMessage{
				OrderNumber:    "ORD_20260314_001",
				OldStatus:      "pending",
				NewStatus:      "preparing",
				ChangedBy:      "chef-1",
				Timestamp:      timestamp,
				EstimatedReady: &estimatedReady,
			},
			expected: "🍳 [2026-03-14 12:30:00] Order ORD_20260314_001 is now being prepared by chef-1. Estimated ready: 12:30:08",
		},
		{
			name: "preparing without estimate",
			update: models.StatusUpdateMessage{
				OrderNumber: "ORD_20260314_001",
				NewStatus:   "preparing",
				ChangedBy:   "chef-1",
				Timestamp:   timestamp,
			},
			expected: "🍳 [2026-03-14 12:30:00] Order ORD_20260314_001 is now being prepared by chef-1.",
		},
		{
			name: "ready",
			update: models.StatusUpdateMessage{
				OrderNumber: "ORD_20260314_001",
				NewStatus:   "ready",
				ChangedBy:   "chef-1",
				Timestamp:   timestamp,
			},
			expected: "✅ [2026-03-14 12:30:00] Order ORD_20260314_001 is ready for pickup! Prepared by chef-1.",
		},
		{
			name: "completed",
			update: models.StatusUpdateMessage{
				OrderNumber: "ORD_20260314_001",
				NewStatus:   "completed",
				Timestamp:   timestamp,
			},
			expected: "🎉 [2026-03-14 12:30:00] Order ORD_20260314_001 has been picked up. Thank you!",
		},
		{
			name: "cancelled",
			update: models.StatusUpdateMessage{
				OrderNumber: "ORD_20260314_001",
				NewStatus:   "cancelled",
				Timestamp:   timestamp,
			},
			expected: "❌ [2026-03-14 12:30:00] Order ORD_20260314_001 has been cancelled.",
		},
		{
			name: "unknown transition",
			update: models.StatusUpdateMessage{
				OrderNumber: "ORD_20260314_001",
				OldStatus:   "ready",
				NewStatus:   "pending",
				ChangedBy:   "manager",
				Timestamp:   timestamp,
			},
			expected: "📋 [2026-03-14 12:30:00] Order ORD_20260314_001 status changed from 'ready' to 'pending' by manager.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNotification(&tt.update))
		})
	}
}
