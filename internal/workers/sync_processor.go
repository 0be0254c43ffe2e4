// internal/workers/sync_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/core/ports"
	"github.com/ammerola/seller-sync/internal/core/services"
	"github.com/ammerola/seller-sync/internal/pkg/logger"
)

// SyncProcessor handles reconciliation tasks
type SyncProcessor struct {
	service ports.SyncService
	logger  *slog.Logger
}

// NewSyncProcessor creates a new sync processor
func NewSyncProcessor(service ports.SyncService, logger *slog.Logger) *SyncProcessor {
	return &SyncProcessor{
		service: service,
		logger:  logger.With(slog.String("processor", "sync")),
	}
}

// ProcessRun performs one full reconciliation
func (p *SyncProcessor) ProcessRun(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	var payload SyncRunPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	p.logger.InfoContext(ctx, "sync run started",
		slog.String("requested_by", payload.RequestedBy))

	report, err := p.service.Run(ctx)
	if errors.Is(err, services.ErrRunInProgress) {
		p.logger.WarnContext(ctx, "sync run skipped, another run holds the lock")
		return nil
	}
	if err != nil {
		class := services.Classify(err)
		p.logger.ErrorContext(ctx, class.Message(),
			slog.String("failure", class.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("sync run failed: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "sync run completed",
		slog.String("run_id", report.RunID),
		slog.Int("stocks_pushed", report.StocksPushed),
		slog.Int("zeroed_offers", report.ZeroedOffers),
		slog.Int("prices_pushed", report.PricesPushed),
		slog.Int("rejected_prices", len(report.RejectedPrices)),
		slog.Int("failed_updates", len(report.FailedUpdates)),
		slog.Duration("duration", report.Duration))

	return nil
}

// ProcessUploadStocks pushes stock levels for the payload records
func (p *SyncProcessor) ProcessUploadStocks(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	records, err := p.records(ctx, t)
	if err != nil {
		return err
	}

	result, err := p.service.UploadStocks(ctx, records)
	if err != nil {
		return fmt.Errorf("stock upload failed: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "stock upload completed",
		slog.Int("records", len(records)),
		slog.Int("non_empty", len(result.NonEmpty)),
		slog.Int("pushed", len(result.All)))

	return nil
}

// ProcessUploadPrices pushes prices for the payload records
func (p *SyncProcessor) ProcessUploadPrices(ctx context.Context, t *asynq.Task) error {
	ctx = taskContext(ctx, t)

	records, err := p.records(ctx, t)
	if err != nil {
		return err
	}

	prices, err := p.service.UploadPrices(ctx, records)
	if err != nil {
		return fmt.Errorf("price upload failed: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "price upload completed",
		slog.Int("records", len(records)),
		slog.Int("pushed", len(prices)))

	return nil
}

// records decodes the payload records, downloading a fresh snapshot when
// the payload carries none.
func (p *SyncProcessor) records(ctx context.Context, t *asynq.Task) ([]domain.InventoryRecord, error) {
	var payload UploadPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	if len(payload.Records) > 0 {
		return payload.Records, nil
	}

	p.logger.InfoContext(ctx, "payload has no records, downloading snapshot")
	records, err := p.service.DownloadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to download inventory: %v: %w", err, asynq.SkipRetry)
	}
	return records, nil
}

func taskContext(ctx context.Context, t *asynq.Task) context.Context {
	taskID, _ := asynq.GetTaskID(ctx)
	return logger.WithTask(ctx, taskID, t.Type())
}
