package backoffice

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"canteen-system/internal/database"
	"canteen-system/internal/models"
)

// ErrNotFound is returned for lookups of unknown record IDs.
var ErrNotFound = errors.New("record not found")

// Store abstracts backoffice persistence so handlers and tests do not
// depend on PostgreSQL directly.
type Store interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	InsertMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id string) error
	InsertInventoryActivity(ctx context.Context, activity *models.InventoryActivity) error
	ListInventoryActivities(ctx context.Context) ([]models.InventoryActivity, error)
	CountLowStock(ctx context.Context) (int, error)

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	InsertEmployee(ctx context.Context, employee *models.Employee) error
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error)
	InsertScheduleEntry(ctx context.Context, entry *models.ScheduleEntry) error

	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	InsertFeedback(ctx context.Context, feedback *models.Feedback) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	InsertActivityLog(ctx context.Context, log *models.ActivityLog) error
	ListActivityLogs(ctx context.Context) ([]models.ActivityLog, error)

	ListSales(ctx context.Context) ([]models.Sale, error)
	RevenueToday(ctx context.Context) (float64, int, error)
	OrderCountsByStatus(ctx context.Context) (map[string]int, error)
	TopItems(ctx context.Context) ([]models.TopItem, error)

	Ping(ctx context.Context) error
}

// PostgresStore is the production Store backed by the shared pool
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a PostgreSQL-backed backoffice store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, database.ListMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &item.Available, &item.Popular, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Category, &item.Available, &item.Popular, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

func (s *PostgresStore) InsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	err := s.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.ID, item.Name, item.Description, item.Price,
		item.Category, item.Available, item.Popular,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return s.db.Exec(ctx, database.UpdateMenuItemSQL,
		item.ID, item.Name, item.Description, item.Price,
		item.Category, item.Available, item.Popular)
}

func (s *PostgresStore) DeleteMenuItem(ctx context.Context, id string) error {
	return s.db.Exec(ctx, database.DeleteMenuItemSQL, id)
}

func (s *PostgresStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.db.Query(ctx, database.ListInventorySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit,
			&item.MinThreshold, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.QueryRow(ctx, database.GetInventoryItemSQL, id).Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.MinThreshold, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (s *PostgresStore) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	err := s.db.QueryRow(ctx, database.InsertInventoryItemSQL,
		item.ID, item.Name, item.Quantity, item.Unit, item.MinThreshold,
	).Scan(&item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	return s.db.Exec(ctx, database.UpdateInventoryItemSQL,
		item.ID, item.Name, item.Quantity, item.Unit, item.MinThreshold)
}

func (s *PostgresStore) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.db.Exec(ctx, database.DeleteInventoryItemSQL, id)
}

func (s *PostgresStore) InsertInventoryActivity(ctx context.Context, activity *models.InventoryActivity) error {
	return s.db.Exec(ctx, database.InsertInventoryActivitySQL,
		activity.ID, activity.ItemID, activity.ItemName, activity.Kind,
		activity.Delta, activity.Remaining, activity.RecordedBy)
}

func (s *PostgresStore) ListInventoryActivities(ctx context.Context) ([]models.InventoryActivity, error) {
	rows, err := s.db.Query(ctx, database.ListInventoryActivitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory activities: %w", err)
	}
	defer rows.Close()

	activities := []models.InventoryActivity{}
	for rows.Next() {
		var activity models.InventoryActivity
		if err := rows.Scan(&activity.ID, &activity.ItemID, &activity.ItemName,
			&activity.Kind, &activity.Delta, &activity.Remaining,
			&activity.RecordedBy, &activity.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory activity: %w", err)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (s *PostgresStore) CountLowStock(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, database.CountLowStockSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low stock: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.Query(ctx, database.ListEmployeesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var employee models.Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Role,
			&employee.Email, &employee.Phone, &employee.HiredAt, &employee.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *PostgresStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.QueryRow(ctx, database.GetEmployeeSQL, id).Scan(
		&employee.ID, &employee.Name, &employee.Role,
		&employee.Email, &employee.Phone, &employee.HiredAt, &employee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

func (s *PostgresStore) InsertEmployee(ctx context.Context, employee *models.Employee) error {
	err := s.db.QueryRow(ctx, database.InsertEmployeeSQL,
		employee.ID, employee.Name, employee.Role, employee.Email, employee.Phone,
	).Scan(&employee.HiredAt, &employee.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	return s.db.Exec(ctx, database.UpdateEmployeeSQL,
		employee.ID, employee.Name, employee.Role, employee.Email, employee.Phone)
}

func (s *PostgresStore) DeleteEmployee(ctx context.Context, id string) error {
	return s.db.Exec(ctx, database.DeleteEmployeeSQL, id)
}

func (s *PostgresStore) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := s.db.Query(ctx, database.ListScheduleSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	defer rows.Close()

	entries := []models.ScheduleEntry{}
	for rows.Next() {
		var entry models.ScheduleEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.ShiftDate,
			&entry.StartTime, &entry.EndTime, &entry.Station); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) InsertScheduleEntry(ctx context.Context, entry *models.ScheduleEntry) error {
	return s.db.Exec(ctx, database.InsertScheduleEntrySQL,
		entry.ID, entry.EmployeeID, entry.ShiftDate, entry.StartTime, entry.EndTime, entry.Station)
}

func (s *PostgresStore) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	rows, err := s.db.Query(ctx, database.ListFeedbackSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	entries := []models.Feedback{}
	for rows.Next() {
		var entry models.Feedback
		if err := rows.Scan(&entry.ID, &entry.CustomerName, &entry.Rating,
			&entry.Comment, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) InsertFeedback(ctx context.Context, feedback *models.Feedback) error {
	err := s.db.QueryRow(ctx, database.InsertFeedbackSQL,
		feedback.ID, feedback.CustomerName, feedback.Rating, feedback.Comment,
	).Scan(&feedback.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Query(ctx, database.ListUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash,
			&user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, database.GetUserSQL, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) InsertUser(ctx context.Context, user *models.User) error {
	err := s.db.QueryRow(ctx, database.InsertUserSQL,
		user.ID, user.Username, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	return s.db.Exec(ctx, database.UpdateUserSQL,
		user.ID, user.Username, user.PasswordHash, user.Role)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	return s.db.Exec(ctx, database.DeleteUserSQL, id)
}

func (s *PostgresStore) InsertActivityLog(ctx context.Context, log *models.ActivityLog) error {
	return s.db.Exec(ctx, database.InsertActivityLogSQL,
		log.ID, log.Username, log.Action, log.Details)
}

func (s *PostgresStore) ListActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	rows, err := s.db.Query(ctx, database.ListActivityLogsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	logs := []models.ActivityLog{}
	for rows.Next() {
		var log models.ActivityLog
		if err := rows.Scan(&log.ID, &log.Username, &log.Action,
			&log.Details, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (s *PostgresStore) ListSales(ctx context.Context) ([]models.Sale, error) {
	rows, err := s.db.Query(ctx, database.ListSalesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.SessionID, &sale.Subtotal,
			&sale.DiscountAmount, &sale.Total, &sale.Method, &sale.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *PostgresStore) RevenueToday(ctx context.Context) (float64, int, error) {
	var revenue float64
	var count int
	if err := s.db.QueryRow(ctx, database.GetRevenueTodaySQL).Scan(&revenue, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to get today's revenue: %w", err)
	}
	return revenue, count, nil
}

func (s *PostgresStore) OrderCountsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.Query(ctx, database.GetOrderCountsByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStore) TopItems(ctx context.Context) ([]models.TopItem, error) {
	rows, err := s.db.Query(ctx, database.GetTopItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to get top items: %w", err)
	}
	defer rows.Close()

	items := []models.TopItem{}
	for rows.Next() {
		var item models.TopItem
		if err := rows.Scan(&item.Name, &item.Quantity, &item.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
