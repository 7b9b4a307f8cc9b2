package models

import "time"

// EmployeeRole represents the available roles for the RBAC system.
type EmployeeRole string

const (
	RoleAdmin     EmployeeRole = "ADMIN"
	RoleHRManager EmployeeRole = "HR_MANAGER"
	RoleEmployee  EmployeeRole = "EMPLOYEE"
)

// Employee represents a principal stored in the employees table. Employees
// both author payroll configuration and act as approvers.
type Employee struct {
	ID           string       `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	FullName     string       `db:"full_name" json:"full_name"`
	Role         EmployeeRole `db:"role" json:"role"`
	Position     *string      `db:"position" json:"position,omitempty"`
	Active       bool         `db:"active" json:"active"`
	LastLogin    *time.Time   `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
