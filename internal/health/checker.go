// internal/health/checker.go
package health

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Status values
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusSkipped   = "skipped"
)

// Checker reports on the infrastructure the worker depends on
type Checker struct {
	redis     *redis.Client
	inspector *asynq.Inspector
	version   string
	env       string
	logger    *slog.Logger
}

// NewChecker creates a new health checker. Either dependency may be nil, in
// which case its check is reported as skipped.
func NewChecker(redisClient *redis.Client, inspector *asynq.Inspector, version, env string, logger *slog.Logger) *Checker {
	return &Checker{
		redis:     redisClient,
		inspector: inspector,
		version:   version,
		env:       env,
		logger:    logger.With(slog.String("component", "health")),
	}
}

// Report represents the health status of the deployment
type Report struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	ResponseTime string         `json:"response_time,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// SystemInfo represents process-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
}

// Check runs every check. The overall status is unhealthy when any
// dependency that was checked is unhealthy.
func (c *Checker) Check(ctx context.Context) *Report {
	report := &Report{
		Status:      StatusHealthy,
		Version:     c.version,
		Environment: c.env,
		Timestamp:   time.Now().UTC(),
		Services: map[string]ServiceInfo{
			"redis": c.checkRedis(ctx),
			"asynq": c.checkAsynq(ctx),
		},
		System: systemInfo(),
	}

	for _, svc := range report.Services {
		if svc.Status == StatusUnhealthy {
			report.Status = StatusUnhealthy
		}
	}

	return report
}

// checkRedis pings the run lock Redis
func (c *Checker) checkRedis(ctx context.Context) ServiceInfo {
	if c.redis == nil {
		return ServiceInfo{Status: StatusSkipped, Message: "run lock disabled"}
	}

	start := time.Now()
	info := ServiceInfo{Status: StatusHealthy, Details: make(map[string]any)}

	pong, err := c.redis.Ping(ctx).Result()
	if err != nil {
		info.Status = StatusUnhealthy
		info.Message = err.Error()
		c.logger.ErrorContext(ctx, "redis health check failed",
			slog.String("error", err.Error()))
		return info
	}
	info.Details["ping"] = pong

	poolStats := c.redis.PoolStats()
	info.Details["total_conns"] = poolStats.TotalConns
	info.Details["idle_conns"] = poolStats.IdleConns

	info.ResponseTime = time.Since(start).String()
	return info
}

// checkAsynq reports queue sizes and running workers
func (c *Checker) checkAsynq(ctx context.Context) ServiceInfo {
	if c.inspector == nil {
		return ServiceInfo{Status: StatusSkipped}
	}

	start := time.Now()
	info := ServiceInfo{Status: StatusHealthy, Details: make(map[string]any)}

	queues, err := c.inspector.Queues()
	if err != nil {
		info.Status = StatusUnhealthy
		info.Message = err.Error()
		c.logger.ErrorContext(ctx, "asynq health check failed",
			slog.String("error", err.Error()))
		return info
	}

	queueStats := make(map[string]any, len(queues))
	for _, queue := range queues {
		qInfo, err := c.inspector.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		queueStats[queue] = map[string]any{
			"size":      qInfo.Size,
			"active":    qInfo.Active,
			"pending":   qInfo.Pending,
			"scheduled": qInfo.Scheduled,
			"archived":  qInfo.Archived,
			"failed":    qInfo.Failed,
		}
	}
	info.Details["queues"] = queueStats

	if servers, err := c.inspector.Servers(); err == nil {
		info.Details["servers"] = len(servers)
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

func systemInfo() SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		MemoryAllocMB: memStats.Alloc / 1024 / 1024,
	}
}
