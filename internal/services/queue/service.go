package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
)

// Publisher is the messaging surface the queue service needs
type Publisher interface {
	PublishOrder(ctx context.Context, orderMsg interface{}, routingKey string, priority uint8) error
	PublishNotification(ctx context.Context, notificationMsg interface{}) error
}

// Service implements placing and tracking queue orders
type Service struct {
	store     Store
	publisher Publisher
	logger    *logger.Logger
}

// NewService creates a new queue service
func NewService(store Store, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// PlaceOrder validates and persists a new queue order, then dispatches it
// to the kitchen.
func (s *Service) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest, requestID string) (*models.PlaceOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sequence, err := s.store.NextOrderSequence(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.QueueOrder{
		ID:           uuid.NewString(),
		Number:       models.GenerateOrderNumber(time.Now().UTC(), sequence),
		Channel:      models.OrderChannel(req.Channel),
		CustomerName: req.CustomerName,
		TotalAmount:  req.CalculateTotalAmount(),
		Priority:     req.CalculatePriority(),
		Status:       models.StatusPending,
	}

	// Item snapshots are detached copies; they never share state with a
	// live POS cart.
	for _, item := range req.Items {
		order.Items = append(order.Items, models.QueueOrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	msg := models.NewOrderMessage(req, order.Number, order.Priority)
	routingKey := models.GenerateRoutingKey(req.Channel, order.Priority)
	if err := s.publisher.PublishOrder(ctx, msg, routingKey, uint8(order.Priority)); err != nil {
		return nil, err
	}

	s.logger.Info("order_placed", "Queue order placed", requestID, map[string]interface{}{
		"order_number": order.Number,
		"channel":      order.Channel,
		"total_amount": order.TotalAmount,
		"priority":     order.Priority,
	})

	return &models.PlaceOrderResponse{
		OrderNumber: order.Number,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	}, nil
}

// GetOrder returns one queue order with its item snapshots
func (s *Service) GetOrder(ctx context.Context, number string) (*models.QueueOrder, error) {
	return s.store.GetOrderByNumber(ctx, number)
}

// ListOrders returns all queue orders
func (s *Service) ListOrders(ctx context.Context) ([]models.QueueOrder, error) {
	return s.store.ListOrders(ctx)
}

// GetOrderStatus returns the tracking view of one order
func (s *Service) GetOrderStatus(ctx context.Context, number string) (*models.OrderTrackingResponse, error) {
	order, err := s.store.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	var estimatedReady *time.Time
	if order.Status == models.StatusPreparing {
		estimated := order.UpdatedAt.Add(models.GetPrepTime(string(order.Channel)))
		estimatedReady = &estimated
	}

	return &models.OrderTrackingResponse{
		OrderNumber:    order.Number,
		CurrentStatus:  string(order.Status),
		UpdatedAt:      order.UpdatedAt,
		EstimatedReady: estimatedReady,
		ProcessedBy:    order.ProcessedBy,
	}, nil
}

// GetOrderHistory returns the complete status history of one order
func (s *Service) GetOrderHistory(ctx context.Context, number string) ([]models.OrderStatusHistory, error) {
	return s.store.GetStatusHistory(ctx, number)
}

// UpdateStatus replaces an order's status. The new status must belong to
// the fixed status set, but any status may be set from any other; no
// transition graph is enforced. All other order fields stay untouched.
func (s *Service) UpdateStatus(ctx context.Context, number, newStatus, changedBy, requestID string) (*models.OrderTrackingResponse, error) {
	status, err := models.ParseQueueOrderStatus(newStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.store.GetOrderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	if changedBy == "" {
		changedBy = "queue-service"
	}

	if err := s.store.SetOrderStatus(ctx, number, status, changedBy, "status changed via queue service"); err != nil {
		return nil, err
	}

	update := models.NewStatusUpdateMessage(number, string(oldStatus), string(status), changedBy, nil)
	if err := s.publisher.PublishNotification(ctx, update); err != nil {
		// The status change is already committed; a lost notification is
		// logged rather than surfaced to the caller.
		s.logger.Error("notification_publish_failed", "Failed to publish status update", requestID, err, map[string]interface{}{
			"order_number": number,
		})
	}

	s.logger.Info("status_updated", "Queue order status updated", requestID, map[string]interface{}{
		"order_number": number,
		"old_status":   oldStatus,
		"new_status":   status,
		"changed_by":   changedBy,
	})

	return s.GetOrderStatus(ctx, number)
}

// GetWorkerStatus returns the effective status of all kitchen workers
func (s *Service) GetWorkerStatus(ctx context.Context) ([]models.WorkerStatusResponse, error) {
	workers, err := s.store.ListWorkers(ctx)
	if err != nil {
		return nil, err
	}

	heartbeatInterval := 30 * time.Second

	responses := make([]models.WorkerStatusResponse, 0, len(workers))
	for _, worker := range workers {
		status := string(worker.Status)
		if !worker.IsOnline(heartbeatInterval) {
			status = string(models.WorkerOffline)
		}

		responses = append(responses, models.WorkerStatusResponse{
			WorkerName:      worker.Name,
			Status:          status,
			OrdersProcessed: worker.OrdersProcessed,
			LastSeen:        worker.LastSeen,
		})
	}

	return responses, nil
}

// HealthCheck checks the health of the service's dependencies
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Store ping failed", "", err, nil)
		return false
	}
	return true
}
