package cache

import (
	"context"
	"fmt"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReviewStoreFactory creates review stores based on configuration
type ReviewStoreFactory struct {
	reviewConfig          config.ReviewConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReviewStoreFactoryOption is a functional option for configuring the factory
type ReviewStoreFactoryOption func(*ReviewStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReviewStoreFactoryOption {
	return func(f *ReviewStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) ReviewStoreFactoryOption {
	return func(f *ReviewStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReviewStoreFactory creates a new factory
func NewReviewStoreFactory(review config.ReviewConfig, redisCfg config.RedisConfig, opts ...ReviewStoreFactoryOption) *ReviewStoreFactory {
	f := &ReviewStoreFactory{
		reviewConfig:          review,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates the store named by review.store. A redis store that
// cannot connect falls back to memory when fallback is allowed.
func (f *ReviewStoreFactory) CreateStore(ctx context.Context) (pricebook.ReviewStore, error) {
	switch f.reviewConfig.Store {
	case "", "memory":
		return NewInMemoryReviewStore(0), nil
	case "redis":
	default:
		return nil, fmt.Errorf("unsupported review store %q", f.reviewConfig.Store)
	}

	store, err := NewRedisReviewStore(ctx, RedisConfig{
		Addr:      f.redisConfig.Addr(),
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	})
	if err == nil {
		f.logger.Info("using Redis review store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for review store but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory review store. "+
		"Open reviews will not be shared between instances.",
		zap.Error(err),
	)
	return NewInMemoryReviewStore(0), nil
}
