package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type settingsStoreStub struct {
	row *models.CompanySettings
}

func (s *settingsStoreStub) Get(ctx context.Context) (*models.CompanySettings, error) {
	if s.row == nil {
		return nil, sql.ErrNoRows
	}
	copied := *s.row
	return &copied, nil
}

func (s *settingsStoreStub) Insert(ctx context.Context, settings *models.CompanySettings) error {
	if s.row != nil {
		return nil
	}
	copied := *settings
	copied.ID = models.CompanySettingsID
	s.row = &copied
	return nil
}

func (s *settingsStoreStub) UpdateDraft(ctx context.Context, settings *models.CompanySettings) (bool, error) {
	if s.row == nil || s.row.Status != models.StatusDraft {
		return false, nil
	}
	copied := *settings
	s.row = &copied
	return true, nil
}

func (s *settingsStoreStub) Decide(ctx context.Context, to models.ApprovalStatus, approverID string, at time.Time) (bool, error) {
	if s.row == nil || s.row.Status != models.StatusDraft {
		return false, nil
	}
	s.row.Status = to
	s.row.ApprovedBy = &approverID
	s.row.ApprovedAt = &at
	return true, nil
}

func settingsFixture(t *testing.T) (*SettingsService, *settingsStoreStub, *auditStub) {
	t.Helper()
	store := &settingsStoreStub{}
	audit := &auditStub{}
	principals := principalStub{employees: map[string]*models.Employee{
		authorID:   {ID: authorID, Role: models.RoleHRManager, Active: true},
		approverID: {ID: approverID, Role: models.RoleAdmin, Active: true},
	}}
	svc := NewSettingsService(store, principals, audit, nil, nil, SettingsDefaults{
		PayDate: 25, TimeZone: "UTC", Currency: "USD",
	})
	return svc, store, audit
}

func intPtr(v int) *int { return &v }

func TestSettingsGetMaterializesDefaults(t *testing.T) {
	svc, store, _ := settingsFixture(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, settings.PayDate)
	assert.Equal(t, "UTC", settings.TimeZone)
	assert.Equal(t, "USD", settings.Currency)
	assert.Equal(t, models.StatusDraft, settings.Status)
	require.NotNil(t, store.row)

	// Second read is idempotent.
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.PayDate, again.PayDate)
}

func TestSettingsUpdateMergesWhileDraft(t *testing.T) {
	svc, _, audit := settingsFixture(t)

	updated, err := svc.Update(context.Background(), dto.UpdateCompanySettingsRequest{
		PayDate:  intPtr(28),
		TimeZone: strPtr("Asia/Riyadh"),
	}, actorClaims())
	require.NoError(t, err)
	assert.Equal(t, 28, updated.PayDate)
	assert.Equal(t, "Asia/Riyadh", updated.TimeZone)
	// Untouched field keeps its default.
	assert.Equal(t, "USD", updated.Currency)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, authorID, *updated.UpdatedBy)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionSettingsUpdate, audit.logs[0].Action)
}

func TestSettingsUpdateRejectsUnknownTimeZone(t *testing.T) {
	svc, _, _ := settingsFixture(t)
	_, err := svc.Update(context.Background(), dto.UpdateCompanySettingsRequest{
		TimeZone: strPtr("Mars/Olympus_Mons"),
	}, actorClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsApproveFreezesRow(t *testing.T) {
	svc, store, _ := settingsFixture(t)
	_, err := svc.Update(context.Background(), dto.UpdateCompanySettingsRequest{PayDate: intPtr(28)}, actorClaims())
	require.NoError(t, err)

	decided, err := svc.Approve(context.Background(), dto.DecisionRequest{ApproverEmployeeID: approverID}, actorClaims())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)
	assert.Equal(t, models.StatusApproved, store.row.Status)

	_, err = svc.Update(context.Background(), dto.UpdateCompanySettingsRequest{PayDate: intPtr(5)}, actorClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)

	_, err = svc.Reject(context.Background(), dto.DecisionRequest{ApproverEmployeeID: approverID}, actorClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestSettingsSelfApprovalByLastEditor(t *testing.T) {
	svc, _, _ := settingsFixture(t)
	_, err := svc.Update(context.Background(), dto.UpdateCompanySettingsRequest{PayDate: intPtr(28)}, actorClaims())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), dto.DecisionRequest{ApproverEmployeeID: authorID}, actorClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSelfApproval.Code, appErrors.FromError(err).Code)
}

func TestSettingsApproveUnknownApprover(t *testing.T) {
	svc, _, _ := settingsFixture(t)
	_, err := svc.Approve(context.Background(), dto.DecisionRequest{ApproverEmployeeID: "not-a-uuid"}, actorClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidApprover.Code, appErrors.FromError(err).Code)
}
