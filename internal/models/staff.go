package models

import (
	"fmt"
	"strings"
	"time"
)

// Employee represents a canteen staff member
type Employee struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	HiredAt   time.Time `json:"hired_at" db:"hired_at"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// EmployeeRequest is the payload for creating or updating an employee
type EmployeeRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks an employee request
func (req *EmployeeRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	if strings.TrimSpace(req.Role) == "" {
		return fmt.Errorf("role is required")
	}
	return nil
}

// ScheduleEntry represents one shift assignment
type ScheduleEntry struct {
	ID         string    `json:"id" db:"id"`
	EmployeeID string    `json:"employee_id" db:"employee_id"`
	ShiftDate  time.Time `json:"shift_date" db:"shift_date"`
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
	Station    string    `json:"station" db:"station"`
}

// ScheduleEntryRequest is the payload for creating a shift entry
type ScheduleEntryRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftDate  string `json:"shift_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Station    string `json:"station"`
}

// Validate checks a schedule entry request
func (req *ScheduleEntryRequest) Validate() error {
	if req.EmployeeID == "" {
		return fmt.Errorf("employee_id is required")
	}
	if _, err := time.Parse("2006-01-02", req.ShiftDate); err != nil {
		return fmt.Errorf("shift_date must use YYYY-MM-DD format")
	}
	for _, field := range []struct{ name, value string }{
		{"start_time", req.StartTime},
		{"end_time", req.EndTime},
	} {
		if _, err := time.Parse("15:04", field.value); err != nil {
			return fmt.Errorf("%s must use HH:MM format", field.name)
		}
	}
	return nil
}
