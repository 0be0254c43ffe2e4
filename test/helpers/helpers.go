// test/helpers/helpers.go
package helpers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/pkg/config"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "seller-sync-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Marketplace: config.MarketplaceConfig{
			BaseURL:          "http://127.0.0.1:0",
			ClientID:         "test-client",
			APIKey:           "test-token",
			CredentialSource: config.CredentialSourceEnv,
			PageSize:         1000,
			Timeout:          5 * time.Second,
		},
		Vendor: config.VendorConfig{
			InventoryURL:    "http://127.0.0.1:0/ostatki.zip",
			WorkDir:         os.TempDir(),
			HeaderRow:       17,
			CodeColumn:      "Код",
			QuantityColumn:  "Количество",
			PriceColumn:     "Цена",
			DownloadTimeout: 5 * time.Second,
			MaxArchiveMB:    10,
			StaleFileAge:    time.Hour,
		},
		Sync: config.SyncConfig{
			StockBatchSize:       100,
			PriceBatchSize:       900,
			UploadPriceBatchSize: 1000,
			LockTTL:              time.Minute,
		},
		Redis: config.RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Asynq: config.AsynqConfig{
			RedisAddr:       "localhost:6379",
			Concurrency:     1,
			Queues:          map[string]int{"sync": 1},
			ShutdownTimeout: 5 * time.Second,
			TaskTimeout:     time.Minute,
		},
		AWS: config.AWSConfig{
			Region:     "us-east-1",
			SecretName: "seller-sync/test",
		},
	}
}

// CreateTestRecord creates a vendor inventory record
func CreateTestRecord(overrides ...func(*domain.InventoryRecord)) domain.InventoryRecord {
	record := domain.InventoryRecord{
		Code:     "TW-0001",
		Quantity: ">10",
		Price:    "5990.00",
	}

	for _, override := range overrides {
		override(&record)
	}

	return record
}

// CreateTestRecords creates count records with codes offer-0000.. and
// alternating quantities.
func CreateTestRecords(count int) []domain.InventoryRecord {
	quantities := []string{">10", "1", "3", "0", "7"}

	records := make([]domain.InventoryRecord, count)
	for i := 0; i < count; i++ {
		records[i] = CreateTestRecord(func(r *domain.InventoryRecord) {
			r.Code = domain.OfferID(fmt.Sprintf("offer-%04d", i))
			r.Quantity = quantities[i%len(quantities)]
			r.Price = fmt.Sprintf("%d.00", 1000+i*10)
		})
	}

	return records
}

// ServeArchive starts an HTTP server returning archive for every GET and
// counts the hits.
func ServeArchive(t *testing.T, archive []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	require.NoError(t, file.Close())

	return file.Name()
}
