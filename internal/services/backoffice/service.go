package backoffice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"canteen-system/internal/logger"
	"canteen-system/internal/models"
)

// Service implements the backoffice dashboard operations
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new backoffice service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// ListMenuItems returns the full catalog
func (s *Service) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

// GetMenuItem returns one catalog entry
func (s *Service) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}

// CreateMenuItem adds a new catalog entry
func (s *Service) CreateMenuItem(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   req.Available,
		Popular:     req.Popular,
	}
	if err := s.store.InsertMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem replaces a catalog entry's fields
func (s *Service) UpdateMenuItem(ctx context.Context, id string, req *models.MenuItemRequest) (*models.MenuItem, error) {
	item, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	item.Available = req.Available
	item.Popular = req.Popular

	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a catalog entry
func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	if _, err := s.store.GetMenuItem(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteMenuItem(ctx, id)
}

// ListInventory returns all stock items with their computed stock level
func (s *Service) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].StockLevel = items[i].ClassifyStock()
	}
	return items, nil
}

// CreateInventoryItem adds a new stock item and records the initial restock
func (s *Service) CreateInventoryItem(ctx context.Context, req *models.InventoryItemRequest, recordedBy string) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		MinThreshold: req.MinThreshold,
	}
	if err := s.store.InsertInventoryItem(ctx, item); err != nil {
		return nil, err
	}
	item.StockLevel = item.ClassifyStock()

	if req.Quantity > 0 {
		if err := s.recordActivity(ctx, item, "restock", req.Quantity, recordedBy); err != nil {
			s.logger.Error("activity_record_failed", "Failed to record inventory activity", "", err, map[string]interface{}{
				"item_id": item.ID,
			})
		}
	}
	return item, nil
}

// UpdateInventoryItem replaces a stock item's fields; any quantity change
// is appended to the activity log as a restock or usage event.
func (s *Service) UpdateInventoryItem(ctx context.Context, id string, req *models.InventoryItemRequest, recordedBy string) (*models.InventoryItem, error) {
	item, err := s.store.GetInventoryItem(ctx, id)
	if err != nil {
		return nil, err
	}
	delta := req.Quantity - item.Quantity

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.MinThreshold = req.MinThreshold

	if err := s.store.UpdateInventoryItem(ctx, item); err != nil {
		return nil, err
	}
	item.StockLevel = item.ClassifyStock()

	if delta != 0 {
		kind := "restock"
		if delta < 0 {
			kind = "usage"
		}
		if err := s.recordActivity(ctx, item, kind, delta, recordedBy); err != nil {
			s.logger.Error("activity_record_failed", "Failed to record inventory activity", "", err, map[string]interface{}{
				"item_id": item.ID,
			})
		}
	}
	return item, nil
}

// DeleteInventoryItem removes a stock item
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) error {
	if _, err := s.store.GetInventoryItem(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteInventoryItem(ctx, id)
}

// ListInventoryActivities returns the restock/usage log, newest first
func (s *Service) ListInventoryActivities(ctx context.Context) ([]models.InventoryActivity, error) {
	return s.store.ListInventoryActivities(ctx)
}

func (s *Service) recordActivity(ctx context.Context, item *models.InventoryItem, kind string, delta float64, recordedBy string) error {
	if recordedBy == "" {
		recordedBy = "backoffice"
	}
	return s.store.InsertInventoryActivity(ctx, &models.InventoryActivity{
		ID:         uuid.NewString(),
		ItemID:     item.ID,
		ItemName:   item.Name,
		Kind:       kind,
		Delta:      delta,
		Remaining:  item.Quantity,
		RecordedBy: recordedBy,
	})
}

// ListEmployees returns all staff records
func (s *Service) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// GetEmployee returns one staff record
func (s *Service) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// CreateEmployee adds a staff record
func (s *Service) CreateEmployee(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error) {
	employee := &models.Employee{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Role:  req.Role,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.store.InsertEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// UpdateEmployee replaces a staff record's fields
func (s *Service) UpdateEmployee(ctx context.Context, id string, req *models.EmployeeRequest) (*models.Employee, error) {
	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	employee.Name = req.Name
	employee.Role = req.Role
	employee.Email = req.Email
	employee.Phone = req.Phone

	if err := s.store.UpdateEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee removes a staff record
func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.store.GetEmployee(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteEmployee(ctx, id)
}

// ListSchedule returns all shift entries in date order
func (s *Service) ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error) {
	return s.store.ListSchedule(ctx)
}

// CreateScheduleEntry adds a shift entry for an existing employee
func (s *Service) CreateScheduleEntry(ctx context.Context, req *models.ScheduleEntryRequest) (*models.ScheduleEntry, error) {
	if _, err := s.store.GetEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	shiftDate, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return nil, fmt.Errorf("shift_date must use YYYY-MM-DD format")
	}

	entry := &models.ScheduleEntry{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		ShiftDate:  shiftDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Station:    req.Station,
	}
	if err := s.store.InsertScheduleEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListFeedback returns customer feedback, newest first
func (s *Service) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.store.ListFeedback(ctx)
}

// CreateFeedback records a customer feedback entry
func (s *Service) CreateFeedback(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {
	feedback := &models.Feedback{
		ID:           uuid.NewString(),
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := s.store.InsertFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ListUsers returns all dashboard user accounts
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// CreateUser adds a user account with a bcrypt-hashed password
func (s *Service) CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.UserRole(req.Role),
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.appendUserLog(ctx, user.Username, "user_created", fmt.Sprintf("role %s", user.Role))
	return user, nil
}

// UpdateUser replaces a user's fields; an empty password leaves the
// stored hash unchanged.
func (s *Service) UpdateUser(ctx context.Context, id string, req *models.UserRequest) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Role = models.UserRole(req.Role)
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.appendUserLog(ctx, user.Username, "user_updated", fmt.Sprintf("role %s", user.Role))
	return user, nil
}

// DeleteUser removes a user account
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.appendUserLog(ctx, user.Username, "user_deleted", "")
	return nil
}

// ListActivityLogs returns the user management audit trail
func (s *Service) ListActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return s.store.ListActivityLogs(ctx)
}

func (s *Service) appendUserLog(ctx context.Context, username, action, details string) {
	err := s.store.InsertActivityLog(ctx, &models.ActivityLog{
		ID:       uuid.NewString(),
		Username: username,
		Action:   action,
		Details:  details,
	})
	if err != nil {
		s.logger.Error("activity_log_failed", "Failed to append activity log", "", err, map[string]interface{}{
			"username": username,
			"action":   action,
		})
	}
}

// ListSales returns finalized POS payments, newest first
func (s *Service) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.store.ListSales(ctx)
}

// DashboardStats aggregates the headline dashboard numbers
func (s *Service) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	revenue, salesCount, err := s.store.RevenueToday(ctx)
	if err != nil {
		return nil, err
	}
	ordersByStatus, err := s.store.OrderCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.store.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	topItems, err := s.store.TopItems(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		RevenueToday:   revenue,
		SalesToday:     salesCount,
		OrdersByStatus: ordersByStatus,
		LowStockCount:  lowStock,
		TopItems:       topItems,
		GeneratedAt:    time.Now().UTC(),
	}, nil
}

// HealthCheck checks the health of the service's dependencies
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "Store ping failed", "", err, nil)
		return false
	}
	return true
}
