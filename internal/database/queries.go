package database

// Menu catalog queries
const (
	ListMenuItemsSQL = `
		SELECT id, name, description, price, category, available, popular, created_at, updated_at
		FROM menu_items
		ORDER BY category, name`

	GetMenuItemSQL = `
		SELECT id, name, description, price, category, available, popular, created_at, updated_at
		FROM menu_items WHERE id = $1`

	InsertMenuItemSQL = `
		INSERT INTO menu_items (id, name, description, price, category, available, popular)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, available = $6, popular = $7, updated_at = NOW()
		WHERE id = $1`

	DeleteMenuItemSQL = `DELETE FROM menu_items WHERE id = $1`
)

// Queue order queries
const (
	InsertQueueOrderSQL = `
		INSERT INTO queue_orders (id, number, channel, customer_name, total_amount, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING received_at`

	InsertQueueOrderItemSQL = `
		INSERT INTO queue_order_items (id, order_id, menu_item_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by, notes)
		VALUES ($1, $2, $3, $4)`

	UpdateOrderStatusSQL = `
		UPDATE queue_orders SET status = $1, processed_by = $2, updated_at = NOW()
		WHERE number = $3`

	UpdateOrderCompletedSQL = `
		UPDATE queue_orders SET status = $1, completed_at = NOW(), updated_at = NOW()
		WHERE number = $2`

	GetQueueOrderByNumberSQL = `
		SELECT id, number, channel, customer_name, total_amount, priority, status,
		       processed_by, received_at, updated_at, completed_at
		FROM queue_orders WHERE number = $1`

	ListQueueOrdersSQL = `
		SELECT id, number, channel, customer_name, total_amount, priority, status,
		       processed_by, received_at, updated_at, completed_at
		FROM queue_orders
		ORDER BY received_at ASC`

	GetQueueOrderItemsSQL = `
		SELECT id, order_id, menu_item_id, name, quantity, price
		FROM queue_order_items WHERE order_id = $1`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = (SELECT id FROM queue_orders WHERE number = $1)
		ORDER BY changed_at ASC`

	GetTodayOrderCountSQL = `
		SELECT COUNT(*) FROM queue_orders WHERE DATE(received_at) = CURRENT_DATE`
)

// Kitchen worker queries
const (
	InsertWorkerSQL = `
		INSERT INTO workers (name, channels, status)
		VALUES ($1, $2, 'online')
		ON CONFLICT (name) DO UPDATE SET
			status = 'online',
			last_seen = NOW()
		RETURNING id`

	UpdateWorkerStatusSQL = `
		UPDATE workers SET status = $1, last_seen = NOW()
		WHERE name = $2`

	IncrementWorkerProcessedSQL = `
		UPDATE workers SET last_seen = NOW(), orders_processed = orders_processed + $1
		WHERE name = $2`

	GetAllWorkersSQL = `
		SELECT name, channels, status, orders_processed, last_seen, created_at
		FROM workers
		ORDER BY created_at ASC`

	CheckWorkerOnlineSQL = `
		SELECT COUNT(*) FROM workers WHERE name = $1 AND status = 'online'`
)

// Inventory queries
const (
	ListInventorySQL = `
		SELECT id, name, quantity, unit, min_threshold, updated_at
		FROM inventory
		ORDER BY name`

	GetInventoryItemSQL = `
		SELECT id, name, quantity, unit, min_threshold, updated_at
		FROM inventory WHERE id = $1`

	InsertInventoryItemSQL = `
		INSERT INTO inventory (id, name, quantity, unit, min_threshold)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING updated_at`

	UpdateInventoryItemSQL = `
		UPDATE inventory
		SET name = $2, quantity = $3, unit = $4, min_threshold = $5, updated_at = NOW()
		WHERE id = $1`

	DeleteInventoryItemSQL = `DELETE FROM inventory WHERE id = $1`

	InsertInventoryActivitySQL = `
		INSERT INTO inventory_activities (id, item_id, item_name, kind, delta, remaining, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ListInventoryActivitiesSQL = `
		SELECT id, item_id, item_name, kind, delta, remaining, recorded_by, created_at
		FROM inventory_activities
		ORDER BY created_at DESC
		LIMIT 200`

	CountLowStockSQL = `
		SELECT COUNT(*) FROM inventory WHERE quantity < min_threshold`
)

// Staff queries
const (
	ListEmployeesSQL = `
		SELECT id, name, role, email, phone, hired_at, created_at
		FROM employees
		ORDER BY name`

	GetEmployeeSQL = `
		SELECT id, name, role, email, phone, hired_at, created_at
		FROM employees WHERE id = $1`

	InsertEmployeeSQL = `
		INSERT INTO employees (id, name, role, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING hired_at, created_at`

	UpdateEmployeeSQL = `
		UPDATE employees SET name = $2, role = $3, email = $4, phone = $5
		WHERE id = $1`

	DeleteEmployeeSQL = `DELETE FROM employees WHERE id = $1`

	ListScheduleSQL = `
		SELECT id, employee_id, shift_date, start_time, end_time, station
		FROM schedule_entries
		ORDER BY shift_date, start_time`

	InsertScheduleEntrySQL = `
		INSERT INTO schedule_entries (id, employee_id, shift_date, start_time, end_time, station)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// Feedback queries
const (
	ListFeedbackSQL = `
		SELECT id, customer_name, rating, comment, created_at
		FROM feedback
		ORDER BY created_at DESC`

	InsertFeedbackSQL = `
		INSERT INTO feedback (id, customer_name, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
)

// User and activity log queries
const (
	ListUsersSQL = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		ORDER BY username`

	GetUserSQL = `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE id = $1`

	InsertUserSQL = `
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	UpdateUserSQL = `
		UPDATE users SET username = $2, password_hash = $3, role = $4
		WHERE id = $1`

	DeleteUserSQL = `DELETE FROM users WHERE id = $1`

	InsertActivityLogSQL = `
		INSERT INTO activity_logs (id, username, action, details)
		VALUES ($1, $2, $3, $4)`

	ListActivityLogsSQL = `
		SELECT id, username, action, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT 200`
)

// Sales and dashboard queries
const (
	InsertSaleSQL = `
		INSERT INTO sales (id, session_id, subtotal, discount_amount, total, method, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ListSalesSQL = `
		SELECT id, session_id, subtotal, discount_amount, total, method, paid_at
		FROM sales
		ORDER BY paid_at DESC`

	GetRevenueTodaySQL = `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales WHERE DATE(paid_at) = CURRENT_DATE`

	GetOrderCountsByStatusSQL = `
		SELECT status, COUNT(*) FROM queue_orders GROUP BY status`

	GetTopItemsSQL = `
		SELECT name, SUM(quantity) AS qty, SUM(quantity * price) AS revenue
		FROM queue_order_items
		GROUP BY name
		ORDER BY qty DESC
		LIMIT 5`
)
