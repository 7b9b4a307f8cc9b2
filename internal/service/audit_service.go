package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/payroll-admin-api/internal/models"
	"github.com/noah-isme/payroll-admin-api/pkg/jobs"
)

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditService records audit trail entries asynchronously through a
// worker queue so governance writes never block on the trail.
type AuditService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs the service and its backing queue.
func NewAuditService(repo auditWriter, logger *zap.Logger, cfg jobs.QueueConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	svc := &AuditService{logger: logger}
	svc.queue = jobs.NewQueue("audit", func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.AuditLog)
		if !ok {
			logger.Warn("audit job carried unexpected payload", zap.String("job_id", job.ID))
			return nil
		}
		return repo.Create(ctx, entry)
	}, cfg)
	return svc
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains and stops the queue workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues an audit entry. Failures are logged, never surfaced:
// the audit trail must not fail the operation it describes.
func (s *AuditService) Record(log *models.AuditLog) {
	if s == nil || log == nil {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    log.Action,
		Payload: log,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue audit entry", zap.String("action", log.Action), zap.Error(err))
	}
}
