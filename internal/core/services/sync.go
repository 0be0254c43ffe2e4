// internal/core/services/sync.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/core/ports"
	"github.com/ammerola/seller-sync/internal/pkg/batch"
	"github.com/ammerola/seller-sync/internal/pkg/logger"
)

// SyncService reconciles the vendor snapshot with the marketplace catalog
type SyncService struct {
	catalog   ports.CatalogClient
	inventory ports.InventorySource
	lock      ports.RunLock
	opts      Options
	logger    *slog.Logger
}

// Statically assert that *SyncService implements the SyncService interface.
var _ ports.SyncService = (*SyncService)(nil)

// NewSyncService creates a new sync service. lock may be nil.
func NewSyncService(catalog ports.CatalogClient, inventory ports.InventorySource, lock ports.RunLock, opts Options, logger *slog.Logger) *SyncService {
	return &SyncService{
		catalog:   catalog,
		inventory: inventory,
		lock:      lock,
		opts:      opts.withDefaults(),
		logger:    logger.With(slog.String("service", "sync")),
	}
}

// Run performs one full reconciliation: list offers, download the snapshot,
// push stocks for every offer, then push prices for matched offers.
// The first failure aborts the run; already pushed batches stay applied.
func (s *SyncService) Run(ctx context.Context) (*ports.RunReport, error) {
	ctx, runID := logger.WithRunID(ctx, logger.RunID(ctx))
	start := time.Now()
	report := &ports.RunReport{RunID: runID}

	release, err := s.acquire(ctx)
	if err != nil {
		return report, err
	}
	defer release()

	s.logger.InfoContext(ctx, "sync run started",
		slog.Int("stock_batch_size", s.opts.StockBatchSize),
		slog.Int("price_batch_size", s.opts.PriceBatchSize))

	offerIDs, err := s.catalog.ListOfferIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list offer ids: %w", err)
	}
	report.OfferCount = len(offerIDs)

	records, err := s.inventory.DownloadInventory(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to download inventory: %w", err)
	}
	report.RecordCount = len(records)

	stocks, err := domain.BuildStockUpdates(records, offerIDs)
	if err != nil {
		return report, fmt.Errorf("failed to build stock updates: %w", err)
	}
	report.ZeroedOffers = len(domain.Unmatched(records, offerIDs))

	stockSummary, err := s.pushStocks(ctx, stocks, s.opts.StockBatchSize)
	report.StocksPushed, report.StockBatches = stockSummary.Pushed, stockSummary.Batches
	report.FailedUpdates = append(report.FailedUpdates, stockSummary.Failed...)
	if err != nil {
		return report, err
	}

	prices, rejected := domain.BuildPriceUpdates(records, offerIDs)
	report.RejectedPrices = rejected
	s.logRejected(ctx, rejected)

	priceSummary, err := s.pushPrices(ctx, prices, s.opts.PriceBatchSize)
	report.PricesPushed, report.PriceBatches = priceSummary.Pushed, priceSummary.Batches
	report.FailedUpdates = append(report.FailedUpdates, priceSummary.Failed...)
	if err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	s.logger.InfoContext(ctx, "sync run completed",
		slog.Int("offers", report.OfferCount),
		slog.Int("records", report.RecordCount),
		slog.Int("stocks_pushed", report.StocksPushed),
		slog.Int("zeroed_offers", report.ZeroedOffers),
		slog.Int("prices_pushed", report.PricesPushed),
		slog.Int("rejected_prices", len(report.RejectedPrices)),
		slog.Int("failed_updates", len(report.FailedUpdates)),
		slog.Duration("duration_ms", report.Duration))

	return report, nil
}

// UploadStocks pushes stock levels for every catalog offer built from
// records and returns both the full list and the non-zero entries.
func (s *SyncService) UploadStocks(ctx context.Context, records []domain.InventoryRecord) (*ports.StockUploadResult, error) {
	offerIDs, err := s.catalog.ListOfferIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer ids: %w", err)
	}

	stocks, err := domain.BuildStockUpdates(records, offerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock updates: %w", err)
	}

	if _, err := s.pushStocks(ctx, stocks, s.opts.StockBatchSize); err != nil {
		return nil, err
	}

	nonEmpty := make([]domain.StockUpdate, 0, len(stocks))
	for _, stock := range stocks {
		if stock.Stock != 0 {
			nonEmpty = append(nonEmpty, stock)
		}
	}

	return &ports.StockUploadResult{NonEmpty: nonEmpty, All: stocks}, nil
}

// UploadPrices pushes prices for every catalog offer present in records and
// returns the updates that were sent.
func (s *SyncService) UploadPrices(ctx context.Context, records []domain.InventoryRecord) ([]domain.PriceUpdate, error) {
	offerIDs, err := s.catalog.ListOfferIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer ids: %w", err)
	}

	prices, rejected := domain.BuildPriceUpdates(records, offerIDs)
	s.logRejected(ctx, rejected)

	if _, err := s.pushPrices(ctx, prices, s.opts.UploadPriceBatchSize); err != nil {
		return nil, err
	}

	return prices, nil
}

// DownloadInventory fetches and parses the vendor snapshot, holding the run
// lock while the spreadsheet sits in the work dir.
func (s *SyncService) DownloadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	records, err := s.inventory.DownloadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to download inventory: %w", err)
	}
	return records, nil
}

// ListOfferIDs returns every offer id in the seller catalog
func (s *SyncService) ListOfferIDs(ctx context.Context) ([]domain.OfferID, error) {
	offerIDs, err := s.catalog.ListOfferIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer ids: %w", err)
	}
	return offerIDs, nil
}

func (s *SyncService) pushStocks(ctx context.Context, stocks []domain.StockUpdate, size int) (pushSummary, error) {
	for i := range stocks {
		if err := stocks[i].Validate(); err != nil {
			return pushSummary{}, fmt.Errorf("invalid stock update %q: %w", stocks[i].OfferID, err)
		}
	}
	return pushBatches(ctx, s.logger, "stocks", stocks, size, s.catalog.UpdateStocks)
}

func (s *SyncService) pushPrices(ctx context.Context, prices []domain.PriceUpdate, size int) (pushSummary, error) {
	for i := range prices {
		if err := prices[i].Validate(); err != nil {
			return pushSummary{}, fmt.Errorf("invalid price update %q: %w", prices[i].OfferID, err)
		}
	}
	return pushBatches(ctx, s.logger, "prices", prices, size, s.catalog.UpdatePrices)
}

// pushBatches sends items in consecutive batches of size, stopping at the
// first failed call. Per-item rejections are collected, not fatal.
func pushBatches[T any](
	ctx context.Context,
	log *slog.Logger,
	kind string,
	items []T,
	size int,
	push func(context.Context, []T) ([]domain.UpdateResult, error),
) (pushSummary, error) {
	var summary pushSummary
	total := batch.Count(len(items), size)

	for chunk := range batch.Divide(items, size) {
		results, err := push(ctx, chunk)
		if err != nil {
			return summary, fmt.Errorf("failed to push %s batch %d/%d: %w", kind, summary.Batches+1, total, err)
		}
		summary.Batches++
		summary.Pushed += len(chunk)

		for _, result := range results {
			if result.Updated {
				continue
			}
			summary.Failed = append(summary.Failed, result)
			log.WarnContext(ctx, "marketplace rejected update",
				slog.String("kind", kind),
				slog.String("offer_id", string(result.OfferID)),
				slog.Any("errors", result.Errors))
		}

		log.DebugContext(ctx, "batch pushed",
			slog.String("kind", kind),
			slog.Int("batch", summary.Batches),
			slog.Int("of", total),
			slog.Int("size", len(chunk)))
	}

	log.InfoContext(ctx, "updates pushed",
		slog.String("kind", kind),
		slog.Int("count", summary.Pushed),
		slog.Int("batches", summary.Batches),
		slog.Int("rejected", len(summary.Failed)))

	return summary, nil
}

func (s *SyncService) logRejected(ctx context.Context, rejected []domain.OfferID) {
	if len(rejected) == 0 {
		return
	}
	s.logger.WarnContext(ctx, "skipping offers with unparseable prices",
		slog.Int("count", len(rejected)),
		slog.Any("offer_ids", rejected))
}

// acquire takes the run lock when one is configured and returns its release
func (s *SyncService) acquire(ctx context.Context) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}

	release, ok, err := s.lock.Acquire(ctx, s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}

	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "failed to release run lock",
				slog.String("error", err.Error()))
		}
	}, nil
}
