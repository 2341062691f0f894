package models

import (
	"fmt"
	"strings"
	"time"
)

// UserRole represents the dashboard role assigned to a user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"
)

// User represents a dashboard user account. The password hash never
// leaves the server.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
}

// UserRequest is the payload for creating or updating a user
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks a user request; requirePassword is false for updates
// where the password is left unchanged when empty.
func (req *UserRequest) Validate(requirePassword bool) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(req.Username) > 50 {
		return fmt.Errorf("username must not exceed 50 characters")
	}
	if requirePassword && len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !requirePassword && req.Password != "" && len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	switch UserRole(req.Role) {
	case RoleAdmin, RoleManager, RoleCashier:
		return nil
	default:
		return fmt.Errorf("role must be one of: admin, manager, cashier")
	}
}

// ActivityLog represents one audit entry for user management actions
type ActivityLog struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
