package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type settingsStore interface {
	Get(ctx context.Context) (*models.CompanySettings, error)
	Insert(ctx context.Context, settings *models.CompanySettings) error
	UpdateDraft(ctx context.Context, settings *models.CompanySettings) (bool, error)
	Decide(ctx context.Context, to models.ApprovalStatus, approverID string, at time.Time) (bool, error)
}

// SettingsDefaults seeds the singleton on first read.
type SettingsDefaults struct {
	PayDate  int
	TimeZone string
	Currency string
}

// SettingsService governs the company-wide settings singleton. The
// approval status is persisted on the row and follows the same
// DRAFT -> APPROVED/REJECTED workflow as configuration items.
type SettingsService struct {
	store      settingsStore
	principals principalLookup
	audit      auditRecorder
	validator  *validator.Validate
	logger     *zap.Logger
	defaults   SettingsDefaults
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(store settingsStore, principals principalLookup, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, defaults SettingsDefaults) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.PayDate < 1 || defaults.PayDate > 31 {
		defaults.PayDate = 25
	}
	if defaults.TimeZone == "" {
		defaults.TimeZone = "UTC"
	}
	if defaults.Currency == "" {
		defaults.Currency = "USD"
	}
	return &SettingsService{
		store:      store,
		principals: principals,
		audit:      audit,
		validator:  validate,
		logger:     logger,
		defaults:   defaults,
	}
}

// Get returns the settings, materializing the default record on first read.
func (s *SettingsService) Get(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := s.store.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch company settings")
	}

	seeded := &models.CompanySettings{
		PayDate:  s.defaults.PayDate,
		TimeZone: s.defaults.TimeZone,
		Currency: s.defaults.Currency,
		Status:   models.StatusDraft,
	}
	if err := s.store.Insert(ctx, seeded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to materialize company settings")
	}
	// Re-read so a concurrent first write wins over our defaults.
	settings, err = s.store.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch company settings")
	}
	return settings, nil
}

// Update merge-updates the settings while they are in DRAFT.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateCompanySettingsRequest, actor *models.JWTClaims) (*models.CompanySettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Status != models.StatusDraft {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "company settings are no longer in DRAFT")
	}

	before := *settings

	if req.PayDate != nil {
		settings.PayDate = *req.PayDate
	}
	if req.TimeZone != nil {
		if _, err := time.LoadLocation(*req.TimeZone); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown time zone")
		}
		settings.TimeZone = *req.TimeZone
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	settings.UpdatedBy = &actor.EmployeeID

	ok, err := s.store.UpdateDraft(ctx, settings)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update company settings")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "company settings are no longer in DRAFT")
	}

	s.emitAudit(actor, models.AuditActionSettingsUpdate, &before, settings)
	return settings, nil
}

// Approve transitions the settings to APPROVED.
func (s *SettingsService) Approve(ctx context.Context, req dto.DecisionRequest, actor *models.JWTClaims) (*models.CompanySettings, error) {
	return s.decide(ctx, models.StatusApproved, req, actor)
}

// Reject transitions the settings to REJECTED.
func (s *SettingsService) Reject(ctx context.Context, req dto.DecisionRequest, actor *models.JWTClaims) (*models.CompanySettings, error) {
	return s.decide(ctx, models.StatusRejected, req, actor)
}

func (s *SettingsService) decide(ctx context.Context, to models.ApprovalStatus, req dto.DecisionRequest, actor *models.JWTClaims) (*models.CompanySettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Status != models.StatusDraft {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "company settings have already been decided")
	}

	// The last editor stands in for the creator in the self-approval ban.
	var editor string
	if settings.UpdatedBy != nil {
		editor = *settings.UpdatedBy
	}
	if err := validateApprover(ctx, s.principals, req.ApproverEmployeeID, editor); err != nil {
		return nil, err
	}

	before := *settings
	decidedAt := time.Now().UTC()

	ok, err := s.store.Decide(ctx, to, req.ApproverEmployeeID, decidedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record settings decision")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "company settings have already been decided")
	}

	settings.Status = to
	settings.ApprovedBy = &req.ApproverEmployeeID
	settings.ApprovedAt = &decidedAt
	settings.UpdatedAt = decidedAt

	s.emitAudit(actor, models.AuditActionSettingsDecide, &before, settings)
	return settings, nil
}

func (s *SettingsService) emitAudit(actor *models.JWTClaims, action string, before, after *models.CompanySettings) {
	if s.audit == nil {
		return
	}
	oldBytes, _ := json.Marshal(before)
	newBytes, _ := json.Marshal(after)
	var employeeID *string
	if actor != nil && actor.EmployeeID != "" {
		employeeID = &actor.EmployeeID
	}
	resourceID := "company-settings"
	s.audit.Record(&models.AuditLog{
		EmployeeID: employeeID,
		Action:     action,
		Resource:   "company_settings",
		ResourceID: &resourceID,
		OldValues:  oldBytes,
		NewValues:  newBytes,
		IPAddress:  "system",
		UserAgent:  "settings-service",
	})
}
