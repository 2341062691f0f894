package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
)

type fakeStore struct {
	orders   map[string]*models.QueueOrder
	history  map[string][]models.OrderStatusHistory
	workers  []models.Worker
	sequence int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:  make(map[string]*models.QueueOrder),
		history: make(map[string][]models.OrderStatusHistory),
	}
}

func (s *fakeStore) NextOrderSequence(ctx context.Context) (int, error) {
	s.sequence++
	return s.sequence, nil
}

func (s *fakeStore) CreateOrder(ctx context.Context, order *models.QueueOrder) error {
	order.ReceivedAt = time.Now().UTC()
	order.UpdatedAt = order.ReceivedAt
	s.orders[order.Number] = order
	s.history[order.Number] = []models.OrderStatusHistory{
		{Status: order.Status, ChangedBy: "queue-service", ChangedAt: order.ReceivedAt},
	}
	return nil
}

func (s *fakeStore) GetOrderByNumber(ctx context.Context, number string) (*models.QueueOrder, error) {
	order, ok := s.orders[number]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeStore) ListOrders(ctx context.Context) ([]models.QueueOrder, error) {
	orders := make([]models.QueueOrder, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *fakeStore) SetOrderStatus(ctx context.Context, number string, status models.QueueOrderStatus, changedBy, notes string) error {
	order, ok := s.orders[number]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	s.history[number] = append(s.history[number], models.OrderStatusHistory{
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: order.UpdatedAt,
	})
	return nil
}

func (s *fakeStore) GetStatusHistory(ctx context.Context, number string) ([]models.OrderStatusHistory, error) {
	history, ok := s.history[number]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return history, nil
}

func (s *fakeStore) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	return s.workers, nil
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return nil
}

type fakePublisher struct {
	orders        []string
	notifications int
	failNotify    bool
}

func (p *fakePublisher) PublishOrder(ctx context.Context, orderMsg interface{}, routingKey string, priority uint8) error {
	p.orders = append(p.orders, routingKey)
	return nil
}

func (p *fakePublisher) PublishNotification(ctx context.Context, notificationMsg interface{}) error {
	if p.failNotify {
		return fmt.Errorf("broker unavailable")
	}
	p.notifications++
	return nil
}

func newTestService() (*Service, *fakeStore, *fakePublisher) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	return NewService(store, publisher, logger.New("queue-service-test")), store, publisher
}

func placeOrderRequest(prices ...float64) *models.PlaceOrderRequest {
	items := make([]models.QueueOrderItem, 0, len(prices))
	for i, price := range prices {
		items = append(items, models.QueueOrderItem{
			MenuItemID: fmt.Sprintf("menu-%d", i),
			Name:       fmt.Sprintf("Item %d", i),
			Quantity:   1,
			Price:      price,
		})
	}
	return &models.PlaceOrderRequest{Channel: "walk_in", Items: items}
}

func TestPlaceOrder(t *testing.T) {
	service, store, publisher := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50, 8.00), "req-1")
	require.NoError(t, err)

	expectedNumber := models.GenerateOrderNumber(time.Now().UTC(), 1)
	assert.Equal(t, expectedNumber, response.OrderNumber)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, 20.50, response.TotalAmount)

	order, err := store.GetOrderByNumber(context.Background(), response.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	require.Len(t, publisher.orders, 1)
	assert.Equal(t, "kitchen.walk_in.1", publisher.orders[0])
}

func TestPlaceOrderSequenceAdvances(t *testing.T) {
	service, _, _ := newTestService()

	first, err := service.PlaceOrder(context.Background(), placeOrderRequest(5.00), "req-1")
	require.NoError(t, err)
	second, err := service.PlaceOrder(context.Background(), placeOrderRequest(5.00), "req-2")
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

func TestPlaceOrderPriorityRouting(t *testing.T) {
	tests := []struct {
		name       string
		prices     []float64
		routingKey string
	}{
		{"low total", []float64{10.00}, "kitchen.walk_in.1"},
		{"medium total", []float64{60.00}, "kitchen.walk_in.5"},
		{"high total", []float64{120.00}, "kitchen.walk_in.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, publisher := newTestService()

			_, err := service.PlaceOrder(context.Background(), placeOrderRequest(tt.prices...), "req-1")
			require.NoError(t, err)

			require.Len(t, publisher.orders, 1)
			assert.Equal(t, tt.routingKey, publisher.orders[0])
		})
	}
}

func TestPlaceOrderRejectsInvalidRequest(t *testing.T) {
	service, _, publisher := newTestService()

	_, err := service.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		Channel: "drive_through",
		Items:   placeOrderRequest(5.00).Items,
	}, "req-1")
	require.Error(t, err)
	assert.Empty(t, publisher.orders)
}

func TestUpdateStatusChangesOnlyStatus(t *testing.T) {
	service, store, _ := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	before, err := store.GetOrderByNumber(context.Background(), response.OrderNumber)
	require.NoError(t, err)

	tracking, err := service.UpdateStatus(context.Background(), response.OrderNumber, "ready", "chef-1", "req-2")
	require.NoError(t, err)
	assert.Equal(t, "ready", tracking.CurrentStatus)

	after, err := store.GetOrderByNumber(context.Background(), response.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, after.Status)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Number, after.Number)
	assert.Equal(t, before.Channel, after.Channel)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
	assert.Equal(t, before.Priority, after.Priority)
	assert.Equal(t, before.ReceivedAt, after.ReceivedAt)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	service, _, _ := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	// No transition graph: completed can go straight back to pending.
	for _, status := range []string{"completed", "pending", "cancelled", "preparing"} {
		tracking, err := service.UpdateStatus(context.Background(), response.OrderNumber, status, "chef-1", "req-2")
		require.NoError(t, err)
		assert.Equal(t, status, tracking.CurrentStatus)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	service, _, _ := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), response.OrderNumber, "delivered", "chef-1", "req-2")
	require.Error(t, err)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.UpdateStatus(context.Background(), "ORD_20260101_001", "ready", "chef-1", "req-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusSurvivesNotificationFailure(t *testing.T) {
	service, _, publisher := newTestService()
	publisher.failNotify = true

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	tracking, err := service.UpdateStatus(context.Background(), response.OrderNumber, "ready", "chef-1", "req-2")
	require.NoError(t, err)
	assert.Equal(t, "ready", tracking.CurrentStatus)
}

func TestGetOrderStatusEstimatesReadyWhilePreparing(t *testing.T) {
	service, _, _ := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	tracking, err := service.GetOrderStatus(context.Background(), response.OrderNumber)
	require.NoError(t, err)
	assert.Nil(t, tracking.EstimatedReady)

	tracking, err = service.UpdateStatus(context.Background(), response.OrderNumber, "preparing", "chef-1", "req-2")
	require.NoError(t, err)
	require.NotNil(t, tracking.EstimatedReady)
	assert.Equal(t, tracking.UpdatedAt.Add(models.GetPrepTime("walk_in")), *tracking.EstimatedReady)
}

func TestGetOrderHistory(t *testing.T) {
	service, _, _ := newTestService()

	response, err := service.PlaceOrder(context.Background(), placeOrderRequest(12.50), "req-1")
	require.NoError(t, err)

	_, err = service.UpdateStatus(context.Background(), response.OrderNumber, "preparing", "chef-1", "req-2")
	require.NoError(t, err)
	_, err = service.UpdateStatus(context.Background(), response.OrderNumber, "ready", "chef-1", "req-3")
	require.NoError(t, err)

	history, err := service.GetOrderHistory(context.Background(), response.OrderNumber)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, models.StatusPending, history[0].Status)
	assert.Equal(t, models.StatusPreparing, history[1].Status)
	assert.Equal(t, models.StatusReady, history[2].Status)
}

func TestGetWorkerStatusMarksStaleWorkersOffline(t *testing.T) {
	service, store, _ := newTestService()
	store.workers = []models.Worker{
		{Name: "chef-1", Status: models.WorkerOnline, LastSeen: time.Now().UTC()},
		{Name: "chef-2", Status: models.WorkerOnline, LastSeen: time.Now().UTC().Add(-5 * time.Minute)},
	}

	workers, err := service.GetWorkerStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, "online", workers[0].Status)
	assert.Equal(t, "offline", workers[1].Status)
}
