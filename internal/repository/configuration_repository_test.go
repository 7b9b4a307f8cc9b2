package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/payroll-admin-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var configRows = []string{"id", "kind", "name", "status", "attributes", "created_by", "approved_by", "approved_at", "rejection_reason", "created_at", "updated_at"}

func TestConfigurationRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payroll_configurations")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.ConfigItem{
		ID:         "cfg-1",
		Kind:       models.KindInsuranceBracket,
		Name:       "Standard Bracket",
		Status:     models.StatusDraft,
		Attributes: []byte(`{"min_salary":5000,"max_salary":15000,"employee_rate":11,"employer_rate":18.75}`),
		CreatedBy:  "emp-1",
	}
	require.NoError(t, repo.Create(context.Background(), item))
	require.False(t, item.CreatedAt.IsZero())

	rows := sqlmock.NewRows(configRows).
		AddRow(item.ID, item.Kind, item.Name, item.Status, item.Attributes, item.CreatedBy, nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, name, status, attributes")).
		WithArgs(models.KindInsuranceBracket, item.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), models.KindInsuranceBracket, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.Name, found.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, name, status, attributes")).
		WithArgs(models.KindTaxRule, "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), models.KindTaxRule, "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepositoryNameTaken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(models.KindInsuranceBracket, "standard bracket", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.NameTaken(context.Background(), models.KindInsuranceBracket, "standard bracket", "")
	require.NoError(t, err)
	require.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepositoryListWithStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	status := models.StatusApproved

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM payroll_configurations")).
		WithArgs(models.KindAllowance, "APPROVED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	rows := sqlmock.NewRows(configRows).
		AddRow("cfg-2", models.KindAllowance, "Housing", status, []byte(`{"amount":1500,"taxable":false}`), "emp-1", "emp-2", time.Now(), nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, name, status, attributes")).
		WithArgs(models.KindAllowance, "APPROVED", 50, 0).
		WillReturnRows(rows)

	items, total, err := repo.List(context.Background(), models.KindAllowance, &status, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "Housing", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepositoryDecideCAS(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payroll_configurations")).
		WithArgs(models.StatusApproved, "emp-2", at, nil, models.KindInsuranceBracket, "cfg-1", models.StatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Decide(context.Background(), models.KindInsuranceBracket, "cfg-1", models.StatusApproved, "emp-2", nil, at)
	require.NoError(t, err)
	require.True(t, ok)

	// The row already left DRAFT: zero rows affected, no error.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE payroll_configurations")).
		WithArgs(models.StatusRejected, "emp-2", at, nil, models.KindInsuranceBracket, "cfg-1", models.StatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.Decide(context.Background(), models.KindInsuranceBracket, "cfg-1", models.StatusRejected, "emp-2", nil, at)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepositoryDeleteDraftCAS(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewConfigurationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM payroll_configurations")).
		WithArgs(models.KindSigningBonus, "cfg-3", models.StatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteDraft(context.Background(), models.KindSigningBonus, "cfg-3")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
