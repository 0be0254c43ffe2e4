// internal/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/seller-sync/internal/adapters/marketplace"
	redis_a "github.com/ammerola/seller-sync/internal/adapters/redis_adapter"
	"github.com/ammerola/seller-sync/internal/adapters/storage"
	"github.com/ammerola/seller-sync/internal/adapters/vendor"
	"github.com/ammerola/seller-sync/internal/core/ports"
	"github.com/ammerola/seller-sync/internal/core/services"
	"github.com/ammerola/seller-sync/internal/pkg/config"
)

// Dependencies holds the wired sync pipeline
type Dependencies struct {
	Catalog     *marketplace.Client
	Inventory   *vendor.Fetcher
	Service     *services.SyncService
	RedisClient *redis.Client
}

// Close releases connections held by the dependencies
func (d *Dependencies) Close() {
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
}

// Initialize resolves credentials from the configured source and wires the pipeline
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	secrets, err := config.NewSecretsManager(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets manager: %w", err)
	}
	return Build(ctx, cfg, secrets, logger)
}

// Build wires the pipeline using the given secrets manager for any
// credentials missing from cfg.
func Build(ctx context.Context, cfg *config.Config, secrets config.SecretsManager, logger *slog.Logger) (*Dependencies, error) {
	if err := config.ResolveCredentials(ctx, cfg, secrets); err != nil {
		return nil, err
	}
	for _, validator := range config.ValidatorsFor(cfg) {
		if err := validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	deps := &Dependencies{}

	deps.Catalog = marketplace.NewClient(marketplace.Config{
		BaseURL:   cfg.Marketplace.BaseURL,
		ClientID:  cfg.Marketplace.ClientID,
		APIKey:    cfg.Marketplace.APIKey,
		PageSize:  cfg.Marketplace.PageSize,
		Timeout:   cfg.Marketplace.Timeout,
		RateLimit: cfg.Marketplace.RateLimit,
	}, logger)

	source, err := NewArchiveSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps.Inventory = vendor.NewFetcher(source, vendor.Config{
		Location:        cfg.Vendor.InventoryURL,
		WorkDir:         cfg.Vendor.WorkDir,
		SpreadsheetName: cfg.Vendor.SpreadsheetName,
		HeaderRow:       cfg.Vendor.HeaderRow,
		CodeColumn:      cfg.Vendor.CodeColumn,
		QuantityColumn:  cfg.Vendor.QuantityColumn,
		PriceColumn:     cfg.Vendor.PriceColumn,
	}, logger)

	var lock ports.RunLock
	if cfg.Sync.LockEnabled {
		client := NewRedisClient(cfg)
		runLock := redis_a.NewRunLock(client, "", logger)
		if err := runLock.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.RedisClient = client
		lock = runLock
	}

	deps.Service = services.NewSyncService(deps.Catalog, deps.Inventory, lock, services.Options{
		StockBatchSize:       cfg.Sync.StockBatchSize,
		PriceBatchSize:       cfg.Sync.PriceBatchSize,
		UploadPriceBatchSize: cfg.Sync.UploadPriceBatchSize,
		LockTTL:              cfg.Sync.LockTTL,
	}, logger)

	logger.Info("sync pipeline initialized",
		slog.String("inventory", cfg.Vendor.InventoryURL),
		slog.Bool("run_lock", lock != nil))

	return deps, nil
}

// NewArchiveSource picks the archive source matching the inventory location:
// s3:// goes to S3, http(s) is downloaded, anything else is read from disk.
func NewArchiveSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ArchiveSource, error) {
	location := cfg.Vendor.InventoryURL
	maxBytes := int64(cfg.Vendor.MaxArchiveMB) * 1024 * 1024

	switch {
	case strings.HasPrefix(location, storage.SchemeS3):
		source, err := storage.NewS3Source(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 source: %w", err)
		}
		return source, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return vendor.NewHTTPSource(cfg.Vendor.DownloadTimeout, maxBytes, logger), nil
	default:
		return storage.NewLocalSource(cfg.Vendor.WorkDir, maxBytes, logger), nil
	}
}

// NewRedisClient creates a Redis client from the configuration
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
}
