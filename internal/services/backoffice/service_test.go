package backoffice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
)

type memoryStore struct {
	menuItems  map[string]models.MenuItem
	inventory  map[string]models.InventoryItem
	activities []models.InventoryActivity
	employees  map[string]models.Employee
	schedule   []models.ScheduleEntry
	feedback   []models.Feedback
	users      map[string]models.User
	logs       []models.ActivityLog
	sales      []models.Sale
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		menuItems: make(map[string]models.MenuItem),
		inventory: make(map[string]models.InventoryItem),
		employees: make(map[string]models.Employee),
		users:     make(map[string]models.User),
	}
}

func (s *memoryStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	for _, item := range s.menuItems {
		items = append(items, item)
	}
	return items, nil
}

func (s *memoryStore) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, ok := s.menuItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *memoryStore) InsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	s.menuItems[item.ID] = *item
	return nil
}

func (s *memoryStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	s.menuItems[item.ID] = *item
	return nil
}

func (s *memoryStore) DeleteMenuItem(ctx context.Context, id string) error {
	delete(s.menuItems, id)
	return nil
}

func (s *memoryStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for _, item := range s.inventory {
		items = append(items, item)
	}
	return items, nil
}

func (s *memoryStore) GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, ok := s.inventory[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (s *memoryStore) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()
	s.inventory[item.ID] = *item
	return nil
}

func (s *memoryStore) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	s.inventory[item.ID] = *item
	return nil
}

func (s *memoryStore) DeleteInventoryItem(ctx context.Context, id string) error {
	delete(s.inventory, id)
	return nil
}

func (s *memoryStore) InsertInventoryActivity(ctx context.Context, activity *models.InventoryActivity) error {
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *memoryStore) ListInventoryActivities(ctx context.Context) ([]models.InventoryActivity, error) {
	return s.activities, nil
}

func (s *memoryStore) CountLowStock(ctx context.Context) (int, error) {
	count := 0
	for _, item := range s.inventory {
		if item.Quantity < item.MinThreshold {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees := []models.Employee{}
	for _, employee := range s.employees {
		employees = append(employees, employee)
	}
	return employees, nil
}

func (s *memoryStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	employee, ok := s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &employee, nil
}

func (s *memoryStore) InsertEmployee(ctx context.Context, employee *models.Employee) error {
	employee.HiredAt = time.Now().UTC()
	employee.CreatedAt = employee.HiredAt
	s.employees[employee.ID] = *employee
	return nil
}

func (s *memoryStore) UpdateEmployee(ctx context.Context, employee *models.Employee) error {
	s.employees[employee.ID] = *employee
	return nil
}

func (s *memoryStore) DeleteEmployee(ctx context.Context, id string) error {
	delete(s.employees, id)
	return nil
}

func (s *memoryStore) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	return s.schedule, nil
}

func (s *memoryStore) InsertScheduleEntry(ctx context.Context, entry *models.ScheduleEntry) error {
	s.schedule = append(s.schedule, *entry)
	return nil
}

func (s *memoryStore) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.feedback, nil
}

func (s *memoryStore) InsertFeedback(ctx context.Context, feedback *models.Feedback) error {
	feedback.CreatedAt = time.Now().UTC()
	s.feedback = append(s.feedback, *feedback)
	return nil
}

func (s *memoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *memoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *memoryStore) InsertUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *memoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *memoryStore) DeleteUser(ctx context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func (s *memoryStore) InsertActivityLog(ctx context.Context, log *models.ActivityLog) error {
	s.logs = append(s.logs, *log)
	return nil
}

func (s *memoryStore) ListActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return s.logs, nil
}

func (s *memoryStore) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.sales, nil
}

func (s *memoryStore) RevenueToday(ctx context.Context) (float64, int, error) {
	revenue := 0.0
	for _, sale := range s.sales {
		revenue += sale.Total
	}
	return revenue, len(s.sales), nil
}

func (s *memoryStore) OrderCountsByStatus(ctx context.Context) (map[string]int, error) {
	return map[string]int{"pending": 2, "ready": 1}, nil
}

func (s *memoryStore) TopItems(ctx context.Context) ([]models.TopItem, error) {
	return []models.TopItem{{Name: "Pad Thai", Quantity: 12, Revenue: 144.00}}, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func newTestService() (*Service, *memoryStore) {
	store := newMemoryStore()
	return NewService(store, logger.New("backoffice-test")), store
}

func TestMenuItemLifecycle(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	item, err := service.CreateMenuItem(ctx, &models.MenuItemRequest{
		Name: "Pad Thai", Price: 12.00, Category: "mains", Available: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	updated, err := service.UpdateMenuItem(ctx, item.ID, &models.MenuItemRequest{
		Name: "Pad Thai", Price: 13.50, Category: "mains", Available: false,
	})
	require.NoError(t, err)
	assert.Equal(t, 13.50, updated.Price)
	assert.False(t, updated.Available)

	require.NoError(t, service.DeleteMenuItem(ctx, item.ID))

	_, err = service.GetMenuItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMenuItemUnknownID(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpdateMenuItem(context.Background(), "missing", &models.MenuItemRequest{
		Name: "Pad Thai", Price: 12.00, Category: "mains",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryStockClassification(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		quantity float64
		expected models.StockLevel
	}{
		{"above threshold", 20, models.StockInStock},
		{"below threshold", 3, models.StockLow},
		{"zero", 0, models.StockOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := service.CreateInventoryItem(ctx, &models.InventoryItemRequest{
				Name: tt.name, Quantity: tt.quantity, Unit: "kg", MinThreshold: 5,
			}, "tester")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, item.StockLevel)
		})
	}
}

func TestInventoryQuantityChangeRecordsActivity(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	item, err := service.CreateInventoryItem(ctx, &models.InventoryItemRequest{
		Name: "Rice", Quantity: 10, Unit: "kg", MinThreshold: 5,
	}, "tester")
	require.NoError(t, err)
	require.Len(t, store.activities, 1)
	assert.Equal(t, "restock", store.activities[0].Kind)
	assert.Equal(t, 10.0, store.activities[0].Delta)

	_, err = service.UpdateInventoryItem(ctx, item.ID, &models.InventoryItemRequest{
		Name: "Rice", Quantity: 4, Unit: "kg", MinThreshold: 5,
	}, "tester")
	require.NoError(t, err)
	require.Len(t, store.activities, 2)
	assert.Equal(t, "usage", store.activities[1].Kind)
	assert.Equal(t, -6.0, store.activities[1].Delta)
	assert.Equal(t, 4.0, store.activities[1].Remaining)

	// Same quantity: no activity row.
	_, err = service.UpdateInventoryItem(ctx, item.ID, &models.InventoryItemRequest{
		Name: "Jasmine Rice", Quantity: 4, Unit: "kg", MinThreshold: 5,
	}, "tester")
	require.NoError(t, err)
	assert.Len(t, store.activities, 2)
}

func TestScheduleEntryRequiresEmployee(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.CreateScheduleEntry(ctx, &models.ScheduleEntryRequest{
		EmployeeID: "missing", ShiftDate: "2026-03-14", StartTime: "08:00", EndTime: "16:00", Station: "grill",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	employee, err := service.CreateEmployee(ctx, &models.EmployeeRequest{Name: "Dana", Role: "cook"})
	require.NoError(t, err)

	entry, err := service.CreateScheduleEntry(ctx, &models.ScheduleEntryRequest{
		EmployeeID: employee.ID, ShiftDate: "2026-03-14", StartTime: "08:00", EndTime: "16:00", Station: "grill",
	})
	require.NoError(t, err)
	assert.Equal(t, employee.ID, entry.EmployeeID)
	assert.Equal(t, "2026-03-14", entry.ShiftDate.Format("2006-01-02"))
}

func TestCreateUserHashesPassword(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.UserRequest{
		Username: "manager1", Password: "supersecret", Role: "manager",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	require.Len(t, store.logs, 1)
	assert.Equal(t, "user_created", store.logs[0].Action)
	assert.Equal(t, "manager1", store.logs[0].Username)
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.UserRequest{
		Username: "cashier1", Password: "supersecret", Role: "cashier",
	})
	require.NoError(t, err)
	originalHash := user.PasswordHash

	updated, err := service.UpdateUser(ctx, user.ID, &models.UserRequest{
		Username: "cashier1", Password: "", Role: "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestDeleteUserAppendsLog(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, &models.UserRequest{
		Username: "temp", Password: "supersecret", Role: "cashier",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(ctx, user.ID))
	require.Len(t, store.logs, 2)
	assert.Equal(t, "user_deleted", store.logs[1].Action)
}

func TestDashboardStats(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	store.sales = []models.Sale{
		{Total: 25.00}, {Total: 17.50},
	}
	_, err := service.CreateInventoryItem(ctx, &models.InventoryItemRequest{
		Name: "Rice", Quantity: 2, Unit: "kg", MinThreshold: 5,
	}, "tester")
	require.NoError(t, err)

	stats, err := service.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.50, stats.RevenueToday)
	assert.Equal(t, 2, stats.SalesToday)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, map[string]int{"pending": 2, "ready": 1}, stats.OrdersByStatus)
	require.Len(t, stats.TopItems, 1)
	assert.Equal(t, "Pad Thai", stats.TopItems[0].Name)
}
