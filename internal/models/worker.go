package models

import (
	"strings"
	"time"
)

// WorkerStatus represents the status of a kitchen worker
type WorkerStatus string

const (
	WorkerOnline  WorkerStatus = "online"
	WorkerOffline WorkerStatus = "offline"
)

// Worker represents a kitchen worker processing queue orders
type Worker struct {
	ID              int          `json:"id,omitempty" db:"id"`
	CreatedAt       time.Time    `json:"created_at,omitempty" db:"created_at"`
	Name            string       `json:"worker_name" db:"name"`
	Channels        string       `json:"channels,omitempty" db:"channels"`
	Status          WorkerStatus `json:"status" db:"status"`
	LastSeen        time.Time    `json:"last_seen" db:"last_seen"`
	OrdersProcessed int          `json:"orders_processed" db:"orders_processed"`
}

// WorkerStatusResponse represents the response for worker status queries
type WorkerStatusResponse struct {
	WorkerName      string    `json:"worker_name"`
	Status          string    `json:"status"`
	OrdersProcessed int       `json:"orders_processed"`
	LastSeen        time.Time `json:"last_seen"`
}

// ParseChannels parses a comma-separated string of order channels
func ParseChannels(channelsStr string) []OrderChannel {
	if channelsStr == "" {
		return nil
	}

	var channels []OrderChannel
	for _, part := range strings.Split(channelsStr, ",") {
		switch strings.TrimSpace(part) {
		case "walk_in":
			channels = append(channels, ChannelWalkIn)
		case "online":
			channels = append(channels, ChannelOnline)
		}
	}

	return channels
}

// CanHandleChannel checks if a worker can process orders from a channel.
// A worker with no specializations handles every channel.
func CanHandleChannel(channel OrderChannel, specializations []OrderChannel) bool {
	if len(specializations) == 0 {
		return true
	}

	for _, specialization := range specializations {
		if specialization == channel {
			return true
		}
	}

	return false
}

// IsOnline checks if a worker is considered online based on heartbeat age
func (w *Worker) IsOnline(heartbeatInterval time.Duration) bool {
	if w.Status == WorkerOffline {
		return false
	}

	return time.Since(w.LastSeen) <= 2*heartbeatInterval
}
