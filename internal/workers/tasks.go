// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// Task types handled by the worker
const (
	TypeSyncRun           = "sync:run"
	TypeUploadStocks      = "sync:upload_stocks"
	TypeUploadPrices      = "sync:upload_prices"
	TypeCleanupWorkDir    = "sync:cleanup_work_dir"
	QueueSync             = "sync"
	scheduledRunUniqueTTL = time.Hour
)

// SyncRunPayload represents the payload for a full reconciliation task
type SyncRunPayload struct {
	RequestedBy string `json:"requested_by,omitempty"`
}

// UploadPayload represents the payload for a stock or price upload task.
// An empty record set makes the handler download a fresh snapshot.
type UploadPayload struct {
	Records []domain.InventoryRecord `json:"records,omitempty"`
}

// NewSyncRunTask creates a full reconciliation task. Failed runs are not
// retried; the next scheduled run starts from a fresh snapshot.
func NewSyncRunTask(requestedBy string, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(SyncRunPayload{RequestedBy: requestedBy})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sync run payload: %w", err)
	}
	return asynq.NewTask(TypeSyncRun, payload, taskOptions(opts)...), nil
}

// NewScheduledSyncRunTask creates the periodic run task registered with the
// scheduler. Unique keeps overlapping ticks from queueing twice.
func NewScheduledSyncRunTask() (*asynq.Task, error) {
	return NewSyncRunTask("scheduler", asynq.Unique(scheduledRunUniqueTTL))
}

// NewUploadStocksTask creates a stock upload task
func NewUploadStocksTask(records []domain.InventoryRecord, opts ...asynq.Option) (*asynq.Task, error) {
	return newUploadTask(TypeUploadStocks, records, opts)
}

// NewUploadPricesTask creates a price upload task
func NewUploadPricesTask(records []domain.InventoryRecord, opts ...asynq.Option) (*asynq.Task, error) {
	return newUploadTask(TypeUploadPrices, records, opts)
}

// NewCleanupWorkDirTask creates a work dir cleanup task
func NewCleanupWorkDirTask(opts ...asynq.Option) *asynq.Task {
	return asynq.NewTask(TypeCleanupWorkDir, nil, taskOptions(opts)...)
}

func newUploadTask(taskType string, records []domain.InventoryRecord, opts []asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(UploadPayload{Records: records})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, payload, taskOptions(opts)...), nil
}

func taskOptions(extra []asynq.Option) []asynq.Option {
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Queue(QueueSync)}
	return append(opts, extra...)
}
