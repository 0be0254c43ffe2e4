// internal/core/services/types.go
package services

import (
	"errors"
	"time"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// Default batch sizes accepted by the marketplace import endpoints
const (
	DefaultStockBatchSize       = 100
	DefaultPriceBatchSize       = 900
	DefaultUploadPriceBatchSize = 1000
	DefaultLockTTL              = 30 * time.Minute
)

// ErrRunInProgress is returned when another run holds the run lock
var ErrRunInProgress = errors.New("another sync run is in progress")

// Options tunes batching and locking of the sync service
type Options struct {
	StockBatchSize       int           `json:"stock_batch_size"`
	PriceBatchSize       int           `json:"price_batch_size"`        // used by Run
	UploadPriceBatchSize int           `json:"upload_price_batch_size"` // used by UploadPrices
	LockTTL              time.Duration `json:"lock_ttl"`
}

func (o Options) withDefaults() Options {
	if o.StockBatchSize <= 0 {
		o.StockBatchSize = DefaultStockBatchSize
	}
	if o.PriceBatchSize <= 0 {
		o.PriceBatchSize = DefaultPriceBatchSize
	}
	if o.UploadPriceBatchSize <= 0 {
		o.UploadPriceBatchSize = DefaultUploadPriceBatchSize
	}
	if o.LockTTL <= 0 {
		o.LockTTL = DefaultLockTTL
	}
	return o
}

// pushSummary is the outcome of pushing one kind of update in batches
type pushSummary struct {
	Pushed  int
	Batches int
	Failed  []domain.UpdateResult
}
