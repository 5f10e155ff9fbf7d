package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/internal/models"
	"github.com/noah-isme/cgpa-api/pkg/config"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
)

// RedisSessionRepository stores sessions in Redis so several API replicas can share them.
// Saves are conditional on the session version, checked under WATCH, so concurrent
// writers on different replicas cannot overwrite each other. Every call goes through a
// circuit breaker; when it is open callers get ErrUnavailable.
type RedisSessionRepository struct {
	client  *redis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client, prefix string, cfg config.BreakerConfig, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "cgpa:session:"
	}
	breaker := gobreaker.NewCircuitBreaker(breakerSettings(cfg, logger))
	return &RedisSessionRepository{client: client, prefix: prefix, breaker: breaker, logger: logger}
}

// breakerSettings trips on the failure ratio once MinRequests calls were seen in the
// interval. Misses and version conflicts are answers from a healthy store.
func breakerSettings(cfg config.BreakerConfig, logger *zap.Logger) gobreaker.Settings {
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 1
	}
	return gobreaker.Settings{
		Name:        "session-store",
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, appErrors.ErrStoreMiss) || errors.Is(err, appErrors.ErrStoreConflict)
		},
	}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}

func (r *RedisSessionRepository) execute(fn func() (interface{}, error)) (interface{}, error) {
	out, err := r.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable")
	}
	return out, err
}

// Get returns the session or appErrors.ErrStoreMiss when the key is absent or expired.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	out, err := r.execute(func() (interface{}, error) {
		raw, err := r.client.Get(ctx, r.key(id)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, appErrors.ErrStoreMiss
			}
			return nil, fmt.Errorf("redis get %s: %w", id, err)
		}
		var session models.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
		return &session, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Session), nil
}

// Save writes the session with a sliding ttl when the stored version still equals
// session.Version (0 when absent). A lost race returns appErrors.ErrStoreConflict; on
// success session.Version is incremented.
func (r *RedisSessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	next := *session
	next.Version++
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	key := r.key(session.ID)
	_, err = r.execute(func() (interface{}, error) {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := storedVersion(ctx, tx, key)
			if err != nil {
				return err
			}
			if current != session.Version {
				return appErrors.ErrStoreConflict
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, ttl)
				return nil
			})
			return err
		}, key)
		switch {
		case err == nil:
			return nil, nil
		case errors.Is(err, appErrors.ErrStoreConflict):
			return nil, err
		case errors.Is(err, redis.TxFailedErr):
			return nil, appErrors.ErrStoreConflict
		default:
			return nil, fmt.Errorf("redis set %s: %w", session.ID, err)
		}
	})
	if err != nil {
		return err
	}
	session.Version = next.Version
	return nil
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return 0, fmt.Errorf("decode session version: %w", err)
	}
	return stored.Version, nil
}

// Delete removes the session key.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.execute(func() (interface{}, error) {
		if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
			return nil, fmt.Errorf("redis delete %s: %w", id, err)
		}
		return nil, nil
	})
	return err
}

// Count scans the session keyspace.
func (r *RedisSessionRepository) Count(ctx context.Context) (int, error) {
	out, err := r.execute(func() (interface{}, error) {
		count := 0
		iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			count++
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", r.prefix, err)
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return out.(int), nil
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
