// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Credential sources
const (
	CredentialSourceEnv = "env"
	CredentialSourceAWS = "aws_secrets_manager"
)

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Marketplace seller API
	Marketplace MarketplaceConfig

	// Vendor inventory snapshot
	Vendor VendorConfig

	// Reconciliation batching
	Sync SyncConfig

	// Redis
	Redis RedisConfig

	// Asynq
	Asynq AsynqConfig

	// AWS
	AWS AWSConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
}

// MarketplaceConfig holds seller API configuration
type MarketplaceConfig struct {
	BaseURL          string `required:"true"`
	ClientID         string `required:"true"`
	APIKey           string `required:"true"`
	CredentialSource string
	PageSize         int
	Timeout          time.Duration
	RateLimit        float64
}

// VendorConfig holds inventory snapshot configuration
type VendorConfig struct {
	InventoryURL    string `required:"true"`
	WorkDir         string
	SpreadsheetName string
	HeaderRow       int
	CodeColumn      string
	QuantityColumn  string
	PriceColumn     string
	DownloadTimeout time.Duration
	MaxArchiveMB    int
	StaleFileAge    time.Duration
}

// SyncConfig holds batch sizes for update pushes. Run and UploadPrices
// historically used different price batch sizes, so both are kept.
type SyncConfig struct {
	StockBatchSize       int
	PriceBatchSize       int
	UploadPriceBatchSize int
	LockEnabled          bool
	LockTTL              time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	ShutdownTimeout time.Duration
	SyncSchedule    string // cron expression, empty disables the scheduler
	TaskTimeout     time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
	SecretName      string // Secrets Manager secret holding CLIENT_ID / SELLER_TOKEN
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	redisHost := getEnv(v, "REDIS_HOST", "localhost")
	redisPort := getEnv(v, "REDIS_PORT", "6379")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv(v, "APP_NAME", "seller-sync"),
			Environment: env,
			Version:     getEnv(v, "APP_VERSION", "dev"),
			LogLevel:    getEnv(v, "LOG_LEVEL", "info"),
			LogFormat:   getEnv(v, "LOG_FORMAT", "json"),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:          getEnv(v, "MARKETPLACE_BASE_URL", "https://api-seller.ozon.ru"),
			ClientID:         getEnv(v, "CLIENT_ID", ""),
			APIKey:           getEnv(v, "SELLER_TOKEN", ""),
			CredentialSource: getEnv(v, "CREDENTIAL_SOURCE", CredentialSourceEnv),
			PageSize:         getIntEnv(v, "MARKETPLACE_PAGE_SIZE", 1000),
			Timeout:          getDurationEnv(v, "MARKETPLACE_TIMEOUT", 30*time.Second),
			RateLimit:        getFloatEnv(v, "MARKETPLACE_RATE_LIMIT", 0),
		},
		Vendor: VendorConfig{
			InventoryURL:    getEnv(v, "VENDOR_INVENTORY_URL", "https://timeworld.ru/upload/files/ostatki.zip"),
			WorkDir:         getEnv(v, "VENDOR_WORK_DIR", "."),
			SpreadsheetName: getEnv(v, "VENDOR_SPREADSHEET_NAME", ""),
			HeaderRow:       getIntEnv(v, "VENDOR_HEADER_ROW", 17),
			CodeColumn:      getEnv(v, "VENDOR_CODE_COLUMN", "Код"),
			QuantityColumn:  getEnv(v, "VENDOR_QUANTITY_COLUMN", "Количество"),
			PriceColumn:     getEnv(v, "VENDOR_PRICE_COLUMN", "Цена"),
			DownloadTimeout: getDurationEnv(v, "VENDOR_DOWNLOAD_TIMEOUT", 2*time.Minute),
			MaxArchiveMB:    getIntEnv(v, "VENDOR_MAX_ARCHIVE_MB", 100),
			StaleFileAge:    getDurationEnv(v, "VENDOR_STALE_FILE_AGE", 24*time.Hour),
		},
		Sync: SyncConfig{
			StockBatchSize:       getIntEnv(v, "SYNC_STOCK_BATCH_SIZE", 100),
			PriceBatchSize:       getIntEnv(v, "SYNC_PRICE_BATCH_SIZE", 900),
			UploadPriceBatchSize: getIntEnv(v, "SYNC_UPLOAD_PRICE_BATCH_SIZE", 1000),
			LockEnabled:          getBoolEnv(v, "SYNC_LOCK_ENABLED", false),
			LockTTL:              getDurationEnv(v, "SYNC_LOCK_TTL", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         redisHost,
			Port:         redisPort,
			Password:     getEnv(v, "REDIS_PASSWORD", ""),
			DB:           getIntEnv(v, "REDIS_DB", 0),
			DialTimeout:  getDurationEnv(v, "REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv(v, "REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv(v, "REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Asynq: AsynqConfig{
			RedisAddr:       fmt.Sprintf("%s:%s", redisHost, redisPort),
			RedisPassword:   getEnv(v, "REDIS_PASSWORD", ""),
			RedisDB:         getIntEnv(v, "ASYNQ_REDIS_DB", 0),
			Concurrency:     getIntEnv(v, "ASYNQ_CONCURRENCY", 1),
			Queues:          parseQueues(getEnv(v, "ASYNQ_QUEUES", "sync:1")),
			ShutdownTimeout: getDurationEnv(v, "ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
			SyncSchedule:    getEnv(v, "ASYNQ_SYNC_SCHEDULE", ""),
			TaskTimeout:     getDurationEnv(v, "ASYNQ_TASK_TIMEOUT", 30*time.Minute),
		},
		AWS: AWSConfig{
			Region:          getEnv(v, "AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv(v, "AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv(v, "AWS_SECRET_ACCESS_KEY", ""),
			S3Endpoint:      getEnv(v, "AWS_S3_ENDPOINT", ""),
			UsePathStyle:    getBoolEnv(v, "AWS_S3_PATH_STYLE", env == "development"),
			SecretName:      getEnv(v, "AWS_SECRET_NAME", "seller-sync/marketplace"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. Marketplace credentials are
// checked later by ResolveCredentials since they may come from AWS.
func (c *Config) Validate() error {
	if c.Marketplace.BaseURL == "" {
		return fmt.Errorf("marketplace base url is required")
	}
	if c.Vendor.InventoryURL == "" {
		return fmt.Errorf("vendor inventory url is required")
	}
	if c.Vendor.HeaderRow < 0 {
		return fmt.Errorf("vendor header row cannot be negative")
	}
	if c.Marketplace.PageSize <= 0 {
		return fmt.Errorf("marketplace page size must be positive")
	}

	// Validate batch sizes
	if c.Sync.StockBatchSize <= 0 {
		return fmt.Errorf("stock batch size must be positive")
	}
	if c.Sync.PriceBatchSize <= 0 || c.Sync.UploadPriceBatchSize <= 0 {
		return fmt.Errorf("price batch sizes must be positive")
	}

	switch c.Marketplace.CredentialSource {
	case CredentialSourceEnv, CredentialSourceAWS:
	default:
		return fmt.Errorf("unknown credential source %q", c.Marketplace.CredentialSource)
	}

	return nil
}

// GetRedisAddress returns the formatted redis address
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func getEnv(v *viper.Viper, key, defaultValue string) string {
	v.SetDefault(key, defaultValue)
	return strings.TrimSpace(v.GetString(key))
}

func getBoolEnv(v *viper.Viper, key string, defaultValue bool) bool {
	if value := v.GetString(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(v *viper.Viper, key string, defaultValue int) int {
	if value := v.GetString(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(v *viper.Viper, key string, defaultValue float64) float64 {
	if value := v.GetString(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if value := v.GetString(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	pairs := strings.Split(queuesStr, ",")
	for _, pair := range pairs {
		idx := strings.LastIndex(pair, ":")
		if idx <= 0 {
			continue
		}
		name := strings.TrimSpace(pair[:idx])
		priority, err := strconv.Atoi(strings.TrimSpace(pair[idx+1:]))
		if err == nil {
			queues[name] = priority
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
