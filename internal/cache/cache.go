package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/config"
)

// Store is a Redis-backed response cache. List and analytics reads go
// through it; the staff refresh-signal invalidates the staff namespace so
// the next list read observes a newly created account.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

// New connects to Redis using the provided configuration.
func New(cfg config.RedisConfig, logger *zap.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Store{client: client, logger: logger}
}

// Close closes the client.
func (s *Store) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Ping(ctx).Err()
}

// GetJSON loads a cached value into out. A miss or a Redis failure both
// report found=false; callers fall through to the backend.
func (s *Store) GetJSON(ctx context.Context, namespace, key string, out any) bool {
	raw, err := s.client.Get(ctx, s.versionedKey(ctx, namespace, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores a value with a TTL. Failures are logged and ignored; the
// cache is best effort.
func (s *Store) SetJSON(ctx context.Context, namespace, key string, val any, ttl time.Duration) {
	raw, err := json.Marshal(val)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.versionedKey(ctx, namespace, key), raw, ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate bumps the namespace version, orphaning every key under it.
// Orphaned entries expire through their TTL.
func (s *Store) Invalidate(ctx context.Context, namespace string) {
	if err := s.client.Incr(ctx, versionCounter(namespace)).Err(); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("namespace", namespace), zap.Error(err))
	}
}

func (s *Store) versionedKey(ctx context.Context, namespace, key string) string {
	version, err := s.client.Get(ctx, versionCounter(namespace)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		version = 0
	}
	return fmt.Sprintf("%s:v%d:%s", namespace, version, key)
}

func versionCounter(namespace string) string {
	return "cachever:" + namespace
}
