package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/payroll-admin-api/internal/dto"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

type configStore interface {
	Create(ctx context.Context, item *models.ConfigItem) error
	FindByID(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error)
	NameTaken(ctx context.Context, kind models.ConfigKind, name, excludeID string) (bool, error)
	List(ctx context.Context, kind models.ConfigKind, status *models.ApprovalStatus, limit, offset int) ([]models.ConfigItem, int, error)
	ListApproved(ctx context.Context, kind models.ConfigKind) ([]models.ConfigItem, error)
	UpdateDraft(ctx context.Context, item *models.ConfigItem) (bool, error)
	Decide(ctx context.Context, kind models.ConfigKind, id string, to models.ApprovalStatus, approverID string, reason *string, at time.Time) (bool, error)
	DeleteDraft(ctx context.Context, kind models.ConfigKind, id string) (bool, error)
}

// principalLookup resolves approver identities. Kept narrow so the
// lifecycle manager stays free of any particular identity store.
type principalLookup interface {
	FindByID(ctx context.Context, id string) (*models.Employee, error)
}

type auditRecorder interface {
	Record(log *models.AuditLog)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

// LifecycleService owns the create -> review -> decide state machine for
// every configuration kind, with identical policy regardless of kind.
type LifecycleService struct {
	store      configStore
	principals principalLookup
	audit      auditRecorder
	cache      snapshotCache
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewLifecycleService constructs a LifecycleService.
func NewLifecycleService(store configStore, principals principalLookup, audit auditRecorder, cache snapshotCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LifecycleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		store:      store,
		principals: principals,
		audit:      audit,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// Create persists a new DRAFT item of the given kind.
func (s *LifecycleService) Create(ctx context.Context, kind models.ConfigKind, req dto.CreateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	spec, err := s.requireKind(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid configuration payload")
	}
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}

	taken, err := s.store.NameTaken(ctx, kind, req.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check uniqueness")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("a %s with this %s already exists", kindLabel(kind), spec.identityLabel))
	}

	attrs, err := spec.build(req)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode attributes")
	}

	item := &models.ConfigItem{
		ID:         uuid.NewString(),
		Kind:       kind,
		Name:       req.Name,
		Status:     models.StatusDraft,
		Attributes: encoded,
		CreatedBy:  actor.EmployeeID,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create configuration")
	}

	s.emitAudit(actor, models.AuditActionConfigCreate, kind, item.ID, nil, item)
	return item, nil
}

// Get returns a single item of the kind.
func (s *LifecycleService) Get(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error) {
	if _, err := s.requireKind(kind); err != nil {
		return nil, err
	}
	return s.findItem(ctx, kind, id)
}

// List returns items of the kind with optional status filter.
func (s *LifecycleService) List(ctx context.Context, kind models.ConfigKind, query dto.ListConfigQuery) ([]models.ConfigItem, *models.Pagination, error) {
	if _, err := s.requireKind(kind); err != nil {
		return nil, nil, err
	}
	var status *models.ApprovalStatus
	if query.Status != "" {
		parsed := models.ApprovalStatus(query.Status)
		switch parsed {
		case models.StatusDraft, models.StatusApproved, models.StatusRejected:
			status = &parsed
		default:
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status filter %q", query.Status))
		}
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	items, total, err := s.store.List(ctx, kind, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list configurations")
	}
	return items, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// ListApproved returns the approved snapshot of a kind, through the
// cache when one is wired. This is the read path the calculation engine
// consumes.
func (s *LifecycleService) ListApproved(ctx context.Context, kind models.ConfigKind) ([]models.ConfigItem, error) {
	if _, err := s.requireKind(kind); err != nil {
		return nil, err
	}
	key := approvedCacheKey(kind)
	if s.cache != nil {
		var cached []models.ConfigItem
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}
	items, err := s.store.ListApproved(ctx, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approved configurations")
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, items)
	}
	return items, nil
}

// Update applies a partial payload to a DRAFT item. Range invariants are
// re-validated against the merge of new and stored values; a rename
// re-runs the uniqueness check excluding the item itself.
func (s *LifecycleService) Update(ctx context.Context, kind models.ConfigKind, id string, req dto.UpdateConfigRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	spec, err := s.requireKind(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid configuration payload")
	}

	item, err := s.findItem(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !item.IsDraft() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s is %s and can no longer be modified", kindLabel(kind), item.Status))
	}

	before := *item

	if req.Name != nil && *req.Name != item.Name {
		taken, err := s.store.NameTaken(ctx, kind, *req.Name, item.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check uniqueness")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("a %s with this %s already exists", kindLabel(kind), spec.identityLabel))
		}
		item.Name = *req.Name
	}

	attrs, err := spec.merge(json.RawMessage(item.Attributes), req)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode attributes")
	}
	item.Attributes = encoded

	ok, err := s.store.UpdateDraft(ctx, item)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update configuration")
	}
	if !ok {
		// Lost the race: the row left DRAFT between our read and the write.
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s is no longer in DRAFT", kindLabel(kind)))
	}

	s.emitAudit(actor, models.AuditActionConfigUpdate, kind, item.ID, &before, item)
	return item, nil
}

// Approve transitions a DRAFT item to APPROVED.
func (s *LifecycleService) Approve(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	return s.decide(ctx, kind, id, models.StatusApproved, req, actor)
}

// Reject transitions a DRAFT item to REJECTED.
func (s *LifecycleService) Reject(ctx context.Context, kind models.ConfigKind, id string, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	return s.decide(ctx, kind, id, models.StatusRejected, req, actor)
}

func (s *LifecycleService) decide(ctx context.Context, kind models.ConfigKind, id string, to models.ApprovalStatus, req dto.DecisionRequest, actor *models.JWTClaims) (*models.ConfigItem, error) {
	if _, err := s.requireKind(kind); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}

	item, err := s.findItem(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !item.IsDraft() {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s has already been %s", kindLabel(kind), item.Status))
	}

	if err := s.validateApprover(ctx, req.ApproverEmployeeID, item.CreatedBy); err != nil {
		return nil, err
	}

	before := *item
	decidedAt := time.Now().UTC()
	var reason *string
	if to == models.StatusRejected && req.Reason != "" {
		reason = &req.Reason
	}

	ok, err := s.store.Decide(ctx, kind, id, to, req.ApproverEmployeeID, reason, decidedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record decision")
	}
	if !ok {
		// CAS miss: a concurrent decision won. The transition is one-shot.
		return nil, appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s has already been decided", kindLabel(kind)))
	}

	item.Status = to
	item.ApprovedBy = &req.ApproverEmployeeID
	item.ApprovedAt = &decidedAt
	item.RejectionReason = reason
	item.UpdatedAt = decidedAt

	if s.cache != nil && to == models.StatusApproved {
		s.cache.Invalidate(ctx, approvedCacheKey(kind))
	}
	s.metrics.RecordLifecycleTransition(kind, to)

	action := models.AuditActionConfigApprove
	if to == models.StatusRejected {
		action = models.AuditActionConfigReject
	}
	s.emitAudit(actor, action, kind, item.ID, &before, item)
	return item, nil
}

// Delete removes a DRAFT item. Deletion of approved financial
// configuration is rejected: it may already have paid employees.
func (s *LifecycleService) Delete(ctx context.Context, kind models.ConfigKind, id string, actor *models.JWTClaims) error {
	if _, err := s.requireKind(kind); err != nil {
		return err
	}
	item, err := s.findItem(ctx, kind, id)
	if err != nil {
		return err
	}
	if !item.IsDraft() {
		return appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s is %s and can no longer be deleted", kindLabel(kind), item.Status))
	}

	ok, err := s.store.DeleteDraft(ctx, kind, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete configuration")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrInvalidState, fmt.Sprintf("%s is no longer in DRAFT", kindLabel(kind)))
	}

	s.emitAudit(actor, models.AuditActionConfigDelete, kind, id, item, nil)
	return nil
}

func (s *LifecycleService) validateApprover(ctx context.Context, approverID, createdBy string) error {
	return validateApprover(ctx, s.principals, approverID, createdBy)
}

// validateApprover runs the shared approver checks in order: syntactic
// identity, principal existence, then the self-approval ban.
func validateApprover(ctx context.Context, principals principalLookup, approverID, createdBy string) error {
	if _, err := uuid.Parse(approverID); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidApprover, "approver id is not a valid identity reference")
	}
	if _, err := principals.FindByID(ctx, approverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrInvalidApprover, "approver does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify approver")
	}
	if approverID != "" && approverID == createdBy {
		return appErrors.Clone(appErrors.ErrSelfApproval, "")
	}
	return nil
}

func (s *LifecycleService) findItem(ctx context.Context, kind models.ConfigKind, id string) (*models.ConfigItem, error) {
	item, err := s.store.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", kindLabel(kind)))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch configuration")
	}
	return item, nil
}

func (s *LifecycleService) requireKind(kind models.ConfigKind) (kindSpec, error) {
	spec, ok := kindSpecs[kind]
	if !ok {
		return kindSpec{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported configuration kind %q", kind))
	}
	return spec, nil
}

func (s *LifecycleService) emitAudit(actor *models.JWTClaims, action string, kind models.ConfigKind, id string, before, after *models.ConfigItem) {
	if s.audit == nil {
		return
	}
	var oldBytes, newBytes []byte
	if before != nil {
		oldBytes, _ = json.Marshal(before)
	}
	if after != nil {
		newBytes, _ = json.Marshal(after)
	}
	var employeeID *string
	if actor != nil && actor.EmployeeID != "" {
		employeeID = &actor.EmployeeID
	}
	resourceID := id
	s.audit.Record(&models.AuditLog{
		EmployeeID: employeeID,
		Action:     action,
		Resource:   string(kind),
		ResourceID: &resourceID,
		OldValues:  oldBytes,
		NewValues:  newBytes,
		IPAddress:  "system",
		UserAgent:  "lifecycle-service",
	})
}

func approvedCacheKey(kind models.ConfigKind) string {
	return fmt.Sprintf("payroll:approved:%s", kind)
}

func kindLabel(kind models.ConfigKind) string {
	switch kind {
	case models.KindTaxRule:
		return "tax rule"
	case models.KindInsuranceBracket:
		return "insurance bracket"
	case models.KindAllowance:
		return "allowance"
	case models.KindPayType:
		return "pay type"
	case models.KindPayrollPolicy:
		return "payroll policy"
	case models.KindSigningBonus:
		return "signing bonus"
	case models.KindTerminationBenefit:
		return "termination benefit"
	case models.KindPayGrade:
		return "pay grade"
	default:
		return string(kind)
	}
}
