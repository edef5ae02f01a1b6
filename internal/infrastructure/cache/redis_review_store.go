package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/redis/go-redis/v9"
)

const defaultReviewKeyPrefix = "review:"

// RedisReviewStore keeps open reviews as JSON values with an expiry, so
// several server instances can share them.
type RedisReviewStore struct {
	client    *redis.Client
	keyPrefix string
}

var _ pricebook.ReviewStore = (*RedisReviewStore)(nil)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisReviewStore connects to Redis and checks the connection
func NewRedisReviewStore(ctx context.Context, cfg RedisConfig) (*RedisReviewStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisReviewStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisReviewStoreWithClient creates a store with an existing Redis client
func NewRedisReviewStoreWithClient(client *redis.Client, keyPrefix string) *RedisReviewStore {
	return &RedisReviewStore{client: client, keyPrefix: keyPrefix + defaultReviewKeyPrefix}
}

func (s *RedisReviewStore) key(id string) string {
	return s.keyPrefix + id
}

// Put writes the review with the given expiry
func (s *RedisReviewStore) Put(ctx context.Context, review *pricebook.Review, ttl time.Duration) error {
	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to encode review: %w", err)
	}
	if err := s.client.Set(ctx, s.key(review.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store review: %w", err)
	}
	return nil
}

func decodeReview(data []byte) (*pricebook.Review, error) {
	var review pricebook.Review
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, fmt.Errorf("failed to decode review: %w", err)
	}
	return &review, nil
}

// Get reads the review without touching its expiry
func (s *RedisReviewStore) Get(ctx context.Context, id string) (*pricebook.Review, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, pricebook.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read review: %w", err)
	}
	return decodeReview(data)
}

// Take reads and deletes the review atomically with GETDEL, so two
// concurrent confirmations cannot both succeed.
func (s *RedisReviewStore) Take(ctx context.Context, id string) (*pricebook.Review, error) {
	data, err := s.client.GetDel(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, pricebook.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take review: %w", err)
	}
	return decodeReview(data)
}

// Delete reports whether a review was removed
func (s *RedisReviewStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client
func (s *RedisReviewStore) Close() error {
	return s.client.Close()
}
