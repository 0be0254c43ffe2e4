// internal/adapters/redis_adapter/lock.go
package redis_a

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/seller-sync/internal/core/ports"
)

// DefaultLockKey is the key guarding the shared work dir
const DefaultLockKey = "seller-sync:lock:run"

// ErrLockNotHeld is returned by release when the token no longer owns the key
var ErrLockNotHeld = redislock.ErrLockNotHeld

// RunLock is a single-holder lock stored in Redis
type RunLock struct {
	client *redis.Client
	locker *redislock.Client
	key    string
	logger *slog.Logger
}

// Statically assert that *RunLock implements the RunLock interface.
var _ ports.RunLock = (*RunLock)(nil)

// NewRunLock creates a new run lock. An empty key uses DefaultLockKey.
func NewRunLock(client *redis.Client, key string, logger *slog.Logger) *RunLock {
	if key == "" {
		key = DefaultLockKey
	}
	return &RunLock{
		client: client,
		locker: redislock.New(client),
		key:    key,
		logger: logger.With(slog.String("component", "run_lock")),
	}
}

// Acquire takes the lock for ttl. ok is false when another holder has it.
func (l *RunLock) Acquire(ctx context.Context, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := l.locker.Obtain(ctx, l.key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		l.logger.InfoContext(ctx, "run lock held elsewhere", slog.String("key", l.key))
		return nil, false, nil
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to acquire run lock",
			slog.String("key", l.key),
			slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("redis obtain error: %w", err)
	}

	l.logger.DebugContext(ctx, "run lock acquired",
		slog.String("key", l.key),
		slog.Duration("ttl", ttl))

	release := func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.WarnContext(ctx, "run lock expired before release", slog.String("key", l.key))
			return ErrLockNotHeld
		}
		if err != nil {
			return fmt.Errorf("redis release error: %w", err)
		}
		l.logger.DebugContext(ctx, "run lock released", slog.String("key", l.key))
		return nil
	}

	return release, true, nil
}

// Ping checks the Redis connection
func (l *RunLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
