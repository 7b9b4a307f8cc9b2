package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/payroll-admin-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService orchestrates cache operations and related metrics. It is
// the snapshot cache the lifecycle read path uses for approved
// configuration.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if appErrors.HasCode(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores a value with the default TTL. Failures are logged, not
// surfaced: a cold cache only costs a database read.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Set(ctx, key, value, s.defaultTTL); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the given keys.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
