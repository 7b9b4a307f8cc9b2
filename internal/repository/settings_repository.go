package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/payroll-admin-api/internal/models"
)

const settingsColumns = `id, pay_date, time_zone, currency, status, updated_by, approved_by, approved_at, created_at, updated_at`

// SettingsRepository persists the company-wide settings singleton.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the singleton row. sql.ErrNoRows passes through; the
// service materializes defaults lazily on first read.
func (r *SettingsRepository) Get(ctx context.Context) (*models.CompanySettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM company_settings WHERE id = $1`, settingsColumns)
	var settings models.CompanySettings
	if err := r.db.GetContext(ctx, &settings, query, models.CompanySettingsID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Insert materializes the singleton. ON CONFLICT DO NOTHING keeps
// concurrent first reads idempotent.
func (r *SettingsRepository) Insert(ctx context.Context, settings *models.CompanySettings) error {
	const query = `INSERT INTO company_settings
(id, pay_date, time_zone, currency, status, updated_by, created_at, updated_at)
VALUES (:id, :pay_date, :time_zone, :currency, :status, :updated_by, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`
	now := time.Now().UTC()
	settings.ID = models.CompanySettingsID
	settings.CreatedAt = now
	settings.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("insert company settings: %w", err)
	}
	return nil
}

// UpdateDraft merge-updates the row while it is still DRAFT. Reports
// false when the row is no longer DRAFT.
func (r *SettingsRepository) UpdateDraft(ctx context.Context, settings *models.CompanySettings) (bool, error) {
	const query = `UPDATE company_settings
SET pay_date = $1, time_zone = $2, currency = $3, updated_by = $4, updated_at = $5
WHERE id = $6 AND status = $7`
	settings.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		settings.PayDate, settings.TimeZone, settings.Currency, settings.UpdatedBy, settings.UpdatedAt,
		models.CompanySettingsID, models.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("update company settings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update company settings rows: %w", err)
	}
	return affected == 1, nil
}

// Decide transitions the settings row DRAFT -> terminal status with the
// same compare-and-swap shape as configuration items.
func (r *SettingsRepository) Decide(ctx context.Context, to models.ApprovalStatus, approverID string, at time.Time) (bool, error) {
	const query = `UPDATE company_settings
SET status = $1, approved_by = $2, approved_at = $3, updated_at = $3
WHERE id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, to, approverID, at, models.CompanySettingsID, models.StatusDraft)
	if err != nil {
		return false, fmt.Errorf("decide company settings: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decide company settings rows: %w", err)
	}
	return affected == 1, nil
}
