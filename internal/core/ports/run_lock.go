// internal/core/ports/run_lock.go
package ports

import (
	"context"
	"time"
)

// RunLock guards against overlapping sync runs sharing a work directory.
// Acquire reports false without error when another run holds the lock.
type RunLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}
