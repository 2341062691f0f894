package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"canteen-system/internal/logger"
	"canteen-system/internal/messaging"
	"canteen-system/internal/models"
)

// Subscriber listens for order status updates and prints them for
// front-of-house staff.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start begins consuming notifications until shutdown
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleNotification); err != nil {
			s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleNotification processes one status update message
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var statusUpdate models.StatusUpdateMessage
	if err := json.Unmarshal(body, &statusUpdate); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status update notification", requestID, map[string]interface{}{
		"order_number": statusUpdate.OrderNumber,
		"new_status":   statusUpdate.NewStatus,
		"changed_by":   statusUpdate.ChangedBy,
	})

	fmt.Println(FormatNotification(&statusUpdate))

	s.logger.Info("notification_displayed", "Notification displayed", "", map[string]interface{}{
		"order_number": statusUpdate.OrderNumber,
		"old_status":   statusUpdate.OldStatus,
		"new_status":   statusUpdate.NewStatus,
		"changed_by":   statusUpdate.ChangedBy,
	})

	return nil
}

// FormatNotification renders a status update as a human-readable line
func FormatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")

	switch statusUpdate.NewStatus {
	case "preparing":
		if statusUpdate.EstimatedReady != nil {
			return fmt.Sprintf(
				"🍳 [%s] Order %s is now being prepared by %s. Estimated ready: %s",
				timestamp,
				statusUpdate.OrderNumber,
				statusUpdate.ChangedBy,
				statusUpdate.EstimatedReady.Format("15:04:05"),
			)
		}
		return fmt.Sprintf(
			"🍳 [%s] Order %s is now being prepared by %s.",
			timestamp,
			statusUpdate.OrderNumber,
			statusUpdate.ChangedBy,
		)
	case "ready":
		return fmt.Sprintf(
			"✅ [%s] Order %s is ready for pickup! Prepared by %s.",
			timestamp,
			statusUpdate.OrderNumber,
			statusUpdate.ChangedBy,
		)
	case "completed":
		return fmt.Sprintf(
			"🎉 [%s] Order %s has been picked up. Thank you!",
			timestamp,
			statusUpdate.OrderNumber,
		)
	case "cancelled":
		return fmt.Sprintf(
			"❌ [%s] Order %s has been cancelled.",
			timestamp,
			statusUpdate.OrderNumber,
		)
	default:
		return fmt.Sprintf(
			"📋 [%s] Order %s status changed from '%s' to '%s' by %s.",
			timestamp,
			statusUpdate.OrderNumber,
			statusUpdate.OldStatus,
			statusUpdate.NewStatus,
			statusUpdate.ChangedBy,
		)
	}
}

// gracefulShutdown stops consuming notifications
func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
