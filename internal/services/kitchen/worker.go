package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canteen-system/internal/database"
	"canteen-system/internal/logger"
	"canteen-system/internal/messaging"
	"canteen-system/internal/models"
)

const getOrderIDSQL = `SELECT id FROM queue_orders WHERE number = $1`

// Worker consumes placed orders from the kitchen queue and moves them
// through preparation.
type Worker struct {
	name              string
	channels          []models.OrderChannel
	heartbeatInterval time.Duration
	prefetch          int

	db        *database.DB
	consumer  *messaging.Consumer
	publisher *messaging.Publisher
	logger    *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewWorker creates a new kitchen worker
func NewWorker(name string, channels []models.OrderChannel, heartbeatInterval time.Duration, prefetch int,
	db *database.DB, consumer *messaging.Consumer, publisher *messaging.Publisher, log *logger.Logger) *Worker {

	return &Worker{
		name:              name,
		channels:          channels,
		heartbeatInterval: heartbeatInterval,
		prefetch:          prefetch,
		db:                db,
		consumer:          consumer,
		publisher:         publisher,
		logger:            log,
		shutdown:          make(chan os.Signal, 1),
		done:              make(chan bool, 1),
	}
}

// Start registers the worker and begins consuming orders until shutdown
func (w *Worker) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	if err := w.register(ctx, requestID); err != nil {
		return fmt.Errorf("failed to register worker: %w", err)
	}

	signal.Notify(w.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go w.heartbeatLoop(ctx)

	go func() {
		if err := w.consumer.StartConsuming(ctx, w.handleMessage); err != nil {
			w.logger.Error("consumer_failed", "Message consumer failed", requestID, err, nil)
		}
		w.done <- true
	}()

	w.logger.Info("worker_started", fmt.Sprintf("Kitchen worker %s started", w.name), requestID, map[string]interface{}{
		"worker_name":        w.name,
		"channels":           w.channels,
		"heartbeat_interval": w.heartbeatInterval.Seconds(),
		"prefetch":           w.prefetch,
	})

	select {
	case <-w.shutdown:
		w.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return w.gracefulShutdown(ctx, requestID)
	case <-w.done:
		return nil
	}
}

// register records the worker in the database; two online workers may
// not share a name.
func (w *Worker) register(ctx context.Context, requestID string) error {
	var count int
	err := w.db.QueryRow(ctx, database.CheckWorkerOnlineSQL, w.name).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check worker status: %w", err)
	}

	if count > 0 {
		w.logger.Error("worker_registration_failed", "Worker with same name is already online", requestID, nil, map[string]interface{}{
			"worker_name": w.name,
		})
		return fmt.Errorf("worker %s is already online", w.name)
	}

	channelsStr := "all"
	if len(w.channels) > 0 {
		channelsStr = ""
		for i, channel := range w.channels {
			if i > 0 {
				channelsStr += ","
			}
			channelsStr += string(channel)
		}
	}

	var workerID int
	err = w.db.QueryRow(ctx, database.InsertWorkerSQL, w.name, channelsStr).Scan(&workerID)
	if err != nil {
		return fmt.Errorf("failed to register worker: %w", err)
	}

	w.logger.Info("worker_registered", fmt.Sprintf("Worker %s registered successfully", w.name), requestID, map[string]interface{}{
		"worker_id":   workerID,
		"worker_name": w.name,
		"channels":    channelsStr,
	})

	return nil
}

// handleMessage processes one order message from the kitchen queue
func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var orderMsg models.OrderMessage
	if err := json.Unmarshal(body, &orderMsg); err != nil {
		w.logger.Error("message_parsing_failed", "Failed to parse order message", requestID, err, nil)
		return fmt.Errorf("failed to parse message: %w", err)
	}

	w.logger.Debug("order_processing_started", fmt.Sprintf("Processing order %s", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number": orderMsg.OrderNumber,
		"channel":      orderMsg.Channel,
		"total_amount": orderMsg.TotalAmount,
	})

	if !models.CanHandleChannel(models.OrderChannel(orderMsg.Channel), w.channels) {
		w.logger.Debug("order_rejected", fmt.Sprintf("Worker %s cannot handle channel %s", w.name, orderMsg.Channel), requestID, map[string]interface{}{
			"order_number": orderMsg.OrderNumber,
			"channel":      orderMsg.Channel,
		})
		// Nack so the message is requeued for a worker that can.
		return fmt.Errorf("worker cannot handle channel %s", orderMsg.Channel)
	}

	return w.processOrder(ctx, &orderMsg, requestID)
}

// processOrder moves one order from pending to preparing to ready
func (w *Worker) processOrder(ctx context.Context, orderMsg *models.OrderMessage, requestID string) error {
	if err := w.setPreparing(ctx, orderMsg.OrderNumber); err != nil {
		return fmt.Errorf("failed to update order status to preparing: %w", err)
	}

	prepTime := models.GetPrepTime(orderMsg.Channel)
	estimatedReady := time.Now().UTC().Add(prepTime)
	statusUpdate := models.NewStatusUpdateMessage(
		orderMsg.OrderNumber,
		string(models.StatusPending),
		string(models.StatusPreparing),
		w.name,
		&estimatedReady,
	)

	if err := w.publisher.PublishNotification(ctx, statusUpdate); err != nil {
		w.logger.Error("notification_publish_failed", "Failed to publish preparing notification", requestID, err, map[string]interface{}{
			"order_number": orderMsg.OrderNumber,
		})
	}

	w.logger.Debug("preparation_started", fmt.Sprintf("Preparing order %s for %v", orderMsg.OrderNumber, prepTime), requestID, map[string]interface{}{
		"order_number":      orderMsg.OrderNumber,
		"prep_time_seconds": prepTime.Seconds(),
	})

	time.Sleep(prepTime)

	if err := w.setReady(ctx, orderMsg.OrderNumber); err != nil {
		return fmt.Errorf("failed to update order status to ready: %w", err)
	}

	readyUpdate := models.NewStatusUpdateMessage(
		orderMsg.OrderNumber,
		string(models.StatusPreparing),
		string(models.StatusReady),
		w.name,
		nil,
	)

	if err := w.publisher.PublishNotification(ctx, readyUpdate); err != nil {
		w.logger.Error("notification_publish_failed", "Failed to publish ready notification", requestID, err, map[string]interface{}{
			"order_number": orderMsg.OrderNumber,
		})
	}

	w.logger.Debug("order_ready", fmt.Sprintf("Order %s is ready", orderMsg.OrderNumber), requestID, map[string]interface{}{
		"order_number": orderMsg.OrderNumber,
		"processed_by": w.name,
	})

	return nil
}

// setPreparing marks the order as preparing and logs the change
func (w *Worker) setPreparing(ctx context.Context, orderNumber string) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, database.UpdateOrderStatusSQL, models.StatusPreparing, w.name, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	var orderID string
	if err = tx.QueryRow(ctx, getOrderIDSQL, orderNumber).Scan(&orderID); err != nil {
		return fmt.Errorf("failed to get order ID: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		orderID, models.StatusPreparing, w.name, fmt.Sprintf("preparation started by %s", w.name))
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

// setReady marks the order as ready and credits the worker
func (w *Worker) setReady(ctx context.Context, orderNumber string) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, database.UpdateOrderStatusSQL, models.StatusReady, w.name, orderNumber)
	if err != nil {
		return fmt.Errorf("failed to update order to ready: %w", err)
	}

	var orderID string
	if err = tx.QueryRow(ctx, getOrderIDSQL, orderNumber).Scan(&orderID); err != nil {
		return fmt.Errorf("failed to get order ID: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		orderID, models.StatusReady, w.name, "order ready for pickup")
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	_, err = tx.Exec(ctx, database.IncrementWorkerProcessedSQL, 1, w.name)
	if err != nil {
		return fmt.Errorf("failed to update worker processed count: %w", err)
	}

	return tx.Commit(ctx)
}

// heartbeatLoop periodically refreshes the worker's last_seen timestamp
func (w *Worker) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.db.Exec(ctx, database.UpdateWorkerStatusSQL, models.WorkerOnline, w.name); err != nil {
				w.logger.Error("heartbeat_failed", "Failed to send heartbeat", "", err, nil)
			} else {
				w.logger.Debug("heartbeat_sent", "Heartbeat sent successfully", "", nil)
			}
		}
	}
}

// gracefulShutdown marks the worker offline and stops consuming
func (w *Worker) gracefulShutdown(ctx context.Context, requestID string) error {
	w.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if err := w.db.Exec(ctx, database.UpdateWorkerStatusSQL, models.WorkerOffline, w.name); err != nil {
		w.logger.Error("shutdown_failed", "Failed to update worker status to offline", requestID, err, nil)
	}

	if w.consumer != nil {
		w.consumer.Close()
	}

	w.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
