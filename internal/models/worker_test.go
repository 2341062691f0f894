package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseChannels(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []OrderChannel
	}{
		{"empty", "", nil},
		{"single", "walk_in", []OrderChannel{ChannelWalkIn}},
		{"both with spaces", "walk_in, online", []OrderChannel{ChannelWalkIn, ChannelOnline}},
		{"unknown values dropped", "walk_in,delivery", []OrderChannel{ChannelWalkIn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseChannels(tt.input))
		})
	}
}

func TestCanHandleChannel(t *testing.T) {
	assert.True(t, CanHandleChannel(ChannelOnline, nil))
	assert.True(t, CanHandleChannel(ChannelWalkIn, []OrderChannel{ChannelWalkIn, ChannelOnline}))
	assert.False(t, CanHandleChannel(ChannelOnline, []OrderChannel{ChannelWalkIn}))
}

func TestWorkerIsOnline(t *testing.T) {
	interval := 30 * time.Second

	fresh := Worker{Status: WorkerOnline, LastSeen: time.Now()}
	assert.True(t, fresh.IsOnline(interval))

	stale := Worker{Status: WorkerOnline, LastSeen: time.Now().Add(-2 * time.Minute)}
	assert.False(t, stale.IsOnline(interval))

	offline := Worker{Status: WorkerOffline, LastSeen: time.Now()}
	assert.False(t, offline.IsOnline(interval))
}
