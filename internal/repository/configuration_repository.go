package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/payroll-admin-api/internal/models"
)

const configColumns = `id, kind, name, status, attributes, created_by, approved_by, approved_at, rejection_reason, created_at, updated_at`

// ConfigurationRepository persists governed configuration items of every
// kind in a single table with a kind discriminator.
type ConfigurationRepository struct {
	db *sqlx.DB
}

// NewConfigurationRepository constructs the repository.
func NewConfigurationRepository(db *sqlx.DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

// Create inserts a new DRAFT item.
func (r *ConfigurationRepository) Create(ctx context.Context, item *models.ConfigItem) error {
	const query = `INSERT INTO payroll_configurations
(id, kind, name, status, attributes, created_by, created_at, updated_at)
VALUES (:id, :kind, :name, :status, :attributes, :created_by, :created_at, :updated_at)`
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create %s configuration: %w", item.Kind, err)
	}
	return nil
}

// FindByID fetches a single item of the given kind. sql.ErrNoRows is
// passed through for the service layer to translate.
func (r *ConfigurationRepository) FindByID(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM payroll_configurations WHERE kind = $1 AND id = $2`, configColumns)
	var item models.ConfigItem
	if err := r.db.GetContext(ctx, &item, query, kind, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// NameTaken reports whether another item of the kind already uses the
// name, compared case-insensitively. excludeID skips the item itself on
// rename checks and may be empty.
func (r *ConfigurationRepository) NameTaken(ctx context.Context, kind models.ConfigKind, name, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (
SELECT 1 FROM payroll_configurations
WHERE kind = $1 AND LOWER(name) = LOWER($2) AND ($3 = '' OR id <> $3))`
	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, kind, name, excludeID); err != nil {
		return false, fmt.Errorf("check %s name: %w", kind, err)
	}
	return taken, nil
}

// List returns items of a kind, optionally filtered by status, newest first.
func (r *ConfigurationRepository) List(ctx context.Context, kind models.ConfigKind, status *models.ApprovalStatus, limit, offset int) ([]models.ConfigItem, int, error) {
	countQuery := `SELECT COUNT(*) FROM payroll_configurations WHERE kind = $1 AND ($2::text IS NULL OR status = $2)`
	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, kind, statusArg); err != nil {
		return nil, 0, fmt.Errorf("count %s configurations: %w", kind, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM payroll_configurations
WHERE kind = $1 AND ($2::text IS NULL OR status = $2)
ORDER BY created_at DESC LIMIT $3 OFFSET $4`, configColumns)
	var items []models.ConfigItem
	if err := r.db.SelectContext(ctx, &items, query, kind, statusArg, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list %s configurations: %w", kind, err)
	}
	return items, total, nil
}

// ListApproved returns every APPROVED item of a kind. This is the read
// path the calculation engine consumes.
func (r *ConfigurationRepository) ListApproved(ctx context.Context, kind models.ConfigKind) ([]models.ConfigItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM payroll_configurations
WHERE kind = $1 AND status = $2 ORDER BY name ASC`, configColumns)
	var items []models.ConfigItem
	if err := r.db.SelectContext(ctx, &items, query, kind, models.StatusApproved); err != nil {
		return nil, fmt.Errorf("list approved %s configurations: %w", kind, err)
	}
	return items, nil
}

// UpdateDraft rewrites name and attributes while the row is still DRAFT.
// It reports false when the row was not DRAFT anymore (or disappeared),
// making the check-then-write race observable to the caller.
func (r *ConfigurationRepository) UpdateDraft(ctx context.Context, item *models.ConfigItem) (bool, error) {
	const query = `UPDATE payroll_configurations
SET name = $1, attributes = $2, updated_at = $3
WHERE kind = $4 AND id = $5 AND status = $6`
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, item.Name, item.Attributes, item.UpdatedAt, item.Kind, item.ID, models.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("update %s configuration: %w", item.Kind, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s configuration rows: %w", item.Kind, err)
	}
	return affected == 1, nil
}

// Decide transitions DRAFT to the terminal status as a compare-and-swap:
// the UPDATE only lands if the row is still DRAFT, so two concurrent
// decisions cannot both succeed.
func (r *ConfigurationRepository) Decide(ctx context.Context, kind models.ConfigKind, id string, to models.ApprovalStatus, approverID string, reason *string, at time.Time) (bool, error) {
	const query = `UPDATE payroll_configurations
SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = $3
WHERE kind = $5 AND id = $6 AND status = $7`
	result, err := r.db.ExecContext(ctx, query, to, approverID, at, reason, kind, id, models.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("decide %s configuration: %w", kind, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decide %s configuration rows: %w", kind, err)
	}
	return affected == 1, nil
}

// DeleteDraft removes the row only while it is DRAFT, mirroring the
// update rule.
func (r *ConfigurationRepository) DeleteDraft(ctx context.Context, kind models.ConfigKind, id string) (bool, error) {
	const query = `DELETE FROM payroll_configurations WHERE kind = $1 AND id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, kind, id, models.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("delete %s configuration: %w", kind, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s configuration rows: %w", kind, err)
	}
	return affected == 1, nil
}
