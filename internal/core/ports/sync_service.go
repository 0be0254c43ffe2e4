// internal/core/ports/sync_service.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// SyncService defines the application service port for reconciliation.
// This interface is implemented by the application service.
type SyncService interface {
	Run(ctx context.Context) (*RunReport, error)
	UploadStocks(ctx context.Context, records []domain.InventoryRecord) (*StockUploadResult, error)
	UploadPrices(ctx context.Context, records []domain.InventoryRecord) ([]domain.PriceUpdate, error)
	DownloadInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	ListOfferIDs(ctx context.Context) ([]domain.OfferID, error)
}

// RunReport summarizes one end-to-end reconciliation
type RunReport struct {
	RunID          string                `json:"run_id"`
	OfferCount     int                   `json:"offer_count"`
	RecordCount    int                   `json:"record_count"`
	StocksPushed   int                   `json:"stocks_pushed"`
	StockBatches   int                   `json:"stock_batches"`
	ZeroedOffers   int                   `json:"zeroed_offers"`
	PricesPushed   int                   `json:"prices_pushed"`
	PriceBatches   int                   `json:"price_batches"`
	RejectedPrices []domain.OfferID      `json:"rejected_prices,omitempty"`
	FailedUpdates  []domain.UpdateResult `json:"failed_updates,omitempty"`
	Duration       time.Duration         `json:"duration"`
}

// StockUploadResult holds the stock updates pushed by UploadStocks
type StockUploadResult struct {
	NonEmpty []domain.StockUpdate `json:"non_empty"`
	All      []domain.StockUpdate `json:"all"`
}
