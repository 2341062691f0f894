package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"canteen-system/internal/database"
	"canteen-system/internal/models"
)

// ErrOrderNotFound is returned for lookups of unknown order numbers.
var ErrOrderNotFound = errors.New("order not found")

// Store abstracts queue order persistence so the service logic does not
// depend on PostgreSQL directly.
type Store interface {
	NextOrderSequence(ctx context.Context) (int, error)
	CreateOrder(ctx context.Context, order *models.QueueOrder) error
	GetOrderByNumber(ctx context.Context, number string) (*models.QueueOrder, error)
	ListOrders(ctx context.Context) ([]models.QueueOrder, error)
	SetOrderStatus(ctx context.Context, number string, status models.QueueOrderStatus, changedBy, notes string) error
	GetStatusHistory(ctx context.Context, number string) ([]models.OrderStatusHistory, error)
	ListWorkers(ctx context.Context) ([]models.Worker, error)
	Ping(ctx context.Context) error
}

// PostgresStore is the production Store backed by the shared pool
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a PostgreSQL-backed queue store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NextOrderSequence returns the next per-day order sequence number
func (s *PostgresStore) NextOrderSequence(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, database.GetTodayOrderCountSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count today's orders: %w", err)
	}
	return count + 1, nil
}

// CreateOrder persists the order, its item snapshots, and the initial
// status log entry in a single transaction.
func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.QueueOrder) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertQueueOrderSQL,
		order.ID, order.Number, order.Channel, order.CustomerName,
		order.TotalAmount, order.Priority, order.Status,
	).Scan(&order.ReceivedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, database.InsertQueueOrderItemSQL,
			item.ID, order.ID, item.MenuItemID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL,
		order.ID, order.Status, "queue-service", "order placed")
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

// GetOrderByNumber returns one order with its item snapshots
func (s *PostgresStore) GetOrderByNumber(ctx context.Context, number string) (*models.QueueOrder, error) {
	var order models.QueueOrder
	err := s.db.QueryRow(ctx, database.GetQueueOrderByNumberSQL, number).Scan(
		&order.ID, &order.Number, &order.Channel, &order.CustomerName,
		&order.TotalAmount, &order.Priority, &order.Status,
		&order.ProcessedBy, &order.ReceivedAt, &order.UpdatedAt, &order.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := s.orderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// ListOrders returns all queue orders in arrival order
func (s *PostgresStore) ListOrders(ctx context.Context) ([]models.QueueOrder, error) {
	rows, err := s.db.Query(ctx, database.ListQueueOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.QueueOrder
	for rows.Next() {
		var order models.QueueOrder
		err := rows.Scan(
			&order.ID, &order.Number, &order.Channel, &order.CustomerName,
			&order.TotalAmount, &order.Priority, &order.Status,
			&order.ProcessedBy, &order.ReceivedAt, &order.UpdatedAt, &order.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// SetOrderStatus replaces the status of one order and appends a status
// log row. Only the status column (and bookkeeping timestamps) change.
func (s *PostgresStore) SetOrderStatus(ctx context.Context, number string, status models.QueueOrderStatus, changedBy, notes string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID string
	err = tx.QueryRow(ctx, "SELECT id FROM queue_orders WHERE number = $1", number).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to resolve order: %w", err)
	}

	if status == models.StatusCompleted {
		_, err = tx.Exec(ctx, database.UpdateOrderCompletedSQL, status, number)
	} else {
		_, err = tx.Exec(ctx, "UPDATE queue_orders SET status = $1, updated_at = NOW() WHERE number = $2", status, number)
	}
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	_, err = tx.Exec(ctx, database.InsertOrderStatusLogSQL, orderID, status, changedBy, notes)
	if err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

// GetStatusHistory returns the full status log of one order
func (s *PostgresStore) GetStatusHistory(ctx context.Context, number string) ([]models.OrderStatusHistory, error) {
	if _, err := s.GetOrderByNumber(ctx, number); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, database.GetOrderStatusHistorySQL, number)
	if err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	var history []models.OrderStatusHistory
	for rows.Next() {
		var entry models.OrderStatusHistory
		if err := rows.Scan(&entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// ListWorkers returns all registered kitchen workers
func (s *PostgresStore) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	rows, err := s.db.Query(ctx, database.GetAllWorkersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []models.Worker
	for rows.Next() {
		var worker models.Worker
		err := rows.Scan(
			&worker.Name, &worker.Channels, &worker.Status,
			&worker.OrdersProcessed, &worker.LastSeen, &worker.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, worker)
	}

	return workers, rows.Err()
}

// Ping checks the underlying database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) orderItems(ctx context.Context, orderID string) ([]models.QueueOrderItem, error) {
	rows, err := s.db.Query(ctx, database.GetQueueOrderItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.QueueOrderItem
	for rows.Next() {
		var item models.QueueOrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
