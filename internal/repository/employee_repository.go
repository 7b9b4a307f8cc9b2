package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/payroll-admin-api/internal/models"
)

const employeeColumns = `id, email, password_hash, full_name, role, position, active, last_login, created_at, updated_at`

// EmployeeRepository persists employee principals.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FindByID fetches a single employee. sql.ErrNoRows passes through so the
// approver-validation path can distinguish "no such principal".
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, id); err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail fetches an employee by email, compared case-insensitively.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE LOWER(email) = LOWER($1)`, employeeColumns)
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, email); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateLastLogin stamps the last successful login.
func (r *EmployeeRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE employees SET last_login = $1, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
