package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/pkg/config"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
)

// stubReplies answers commands in-process so no Redis server is dialled.
type stubReplies struct {
	values map[string]string
	err    error
	calls  int
}

func (s *stubReplies) DialHook(next redis.DialHook) redis.DialHook { return next }

func (s *stubReplies) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (s *stubReplies) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		s.calls++
		if s.err != nil {
			cmd.SetErr(s.err)
			return s.err
		}
		switch c := cmd.(type) {
		case *redis.StringCmd:
			key := fmt.Sprint(c.Args()[1])
			value, ok := s.values[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(value)
		case *redis.IntCmd:
			c.SetVal(1)
		case *redis.ScanCmd:
			keys := make([]string, 0, len(s.values))
			for key := range s.values {
				keys = append(keys, key)
			}
			c.SetVal(keys, 0)
		}
		return nil
	}
}

func stubbedRepository(t *testing.T, stub *stubReplies, cfg config.BreakerConfig) *RedisSessionRepository {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	client.AddHook(stub)
	repo := NewRedisSessionRepository(client, "test:", cfg, zap.NewNop())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRedisSessionRepositoryGet(t *testing.T) {
	payload, err := json.Marshal(sampleSession("s1"))
	require.NoError(t, err)
	stub := &stubReplies{values: map[string]string{"test:s1": string(payload), "test:bad": "{"}}
	repo := stubbedRepository(t, stub, config.BreakerConfig{FailureRatio: 0.5})
	ctx := context.Background()

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Maths", got.Transcript.Semesters[0].Courses[0].Name)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, appErrors.ErrStoreMiss)

	_, err = repo.Get(ctx, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode session bad")
}

func TestRedisSessionRepositoryCountAndDelete(t *testing.T) {
	stub := &stubReplies{values: map[string]string{"test:a": "{}", "test:b": "{}"}}
	repo := stubbedRepository(t, stub, config.BreakerConfig{FailureRatio: 0.5})
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, repo.Delete(ctx, "a"))
}

func TestRedisSessionRepositoryMissesDoNotTripBreaker(t *testing.T) {
	stub := &stubReplies{values: map[string]string{}}
	repo := stubbedRepository(t, stub, config.BreakerConfig{Timeout: time.Minute, Interval: time.Minute, MinRequests: 2, FailureRatio: 0.5})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := repo.Get(ctx, "missing")
		require.ErrorIs(t, err, appErrors.ErrStoreMiss)
	}
	assert.Equal(t, gobreaker.StateClosed, repo.breaker.State())

	stub.err = errors.New("connection reset")
	_, err := repo.Get(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateClosed, repo.breaker.State())
}

func TestRedisSessionRepositoryBreakerOpens(t *testing.T) {
	stub := &stubReplies{err: errors.New("connection refused")}
	repo := stubbedRepository(t, stub, config.BreakerConfig{Timeout: time.Minute, Interval: time.Minute, MinRequests: 2, FailureRatio: 0.5})
	ctx := context.Background()

	_, err := repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)

	err = repo.Delete(ctx, "s1")
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, repo.breaker.State())

	calls := stub.calls
	_, err = repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)
	assert.Equal(t, appErrors.ErrUnavailable.Status, appErrors.FromError(err).Status)
	assert.Equal(t, calls, stub.calls)
}

func TestRedisSessionRepositoryUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	repo := NewRedisSessionRepository(client, "", config.BreakerConfig{Timeout: time.Minute, Interval: time.Minute, MinRequests: 1, FailureRatio: 0.5}, zap.NewNop())
	defer repo.Close()
	ctx := context.Background()

	err := repo.Save(ctx, sampleSession("s1"), time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrStoreConflict)
	assert.NotEqual(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)

	_, err = repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)
}

func TestBreakerSettings(t *testing.T) {
	settings := breakerSettings(config.BreakerConfig{MinRequests: 4, FailureRatio: 0.5}, zap.NewNop())

	assert.True(t, settings.IsSuccessful(nil))
	assert.True(t, settings.IsSuccessful(appErrors.ErrStoreMiss))
	assert.True(t, settings.IsSuccessful(fmt.Errorf("save: %w", appErrors.ErrStoreConflict)))
	assert.False(t, settings.IsSuccessful(errors.New("i/o timeout")))

	assert.False(t, settings.ReadyToTrip(gobreaker.Counts{Requests: 3, TotalFailures: 3}))
	assert.False(t, settings.ReadyToTrip(gobreaker.Counts{Requests: 4, TotalFailures: 1}))
	assert.True(t, settings.ReadyToTrip(gobreaker.Counts{Requests: 4, TotalFailures: 2}))

	zeroMin := breakerSettings(config.BreakerConfig{FailureRatio: 1}, zap.NewNop())
	assert.True(t, zeroMin.ReadyToTrip(gobreaker.Counts{Requests: 1, TotalFailures: 1}))
}
