// internal/workers/middleware.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/hibiken/asynq"
)

// SlowTaskThreshold marks tasks that are logged as slow
const SlowTaskThreshold = 10 * time.Minute

// TaskLogger logs the start and completion of every task
func TaskLogger(l *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			ctx = taskContext(ctx, t)

			l.InfoContext(ctx, "task_started",
				slog.String("type", t.Type()),
				slog.Int("payload_bytes", len(t.Payload())))

			err := next.ProcessTask(ctx, t)
			duration := time.Since(start)

			logLevel := slog.LevelInfo
			switch {
			case err != nil:
				logLevel = slog.LevelError
			case duration > SlowTaskThreshold:
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				slog.String("type", t.Type()),
				slog.Duration("duration", duration),
				slog.Bool("slow_task", duration > SlowTaskThreshold),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			l.Log(ctx, logLevel, "task_completed", attrs...)

			return err
		})
	}
}

// Recovery turns a handler panic into a non-retried task failure
func Recovery(l *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) (err error) {
			defer func() {
				if r := recover(); r != nil {
					l.ErrorContext(ctx, "panic recovered",
						slog.String("type", t.Type()),
						slog.Any("error", r),
						slog.String("stack", string(debug.Stack())))
					err = fmt.Errorf("task panicked: %v: %w", r, asynq.SkipRetry)
				}
			}()
			return next.ProcessTask(ctx, t)
		})
	}
}
