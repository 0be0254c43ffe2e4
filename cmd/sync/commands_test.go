// cmd/sync/commands_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/seller-sync/internal/adapters/marketplace"
	redis_a "github.com/ammerola/seller-sync/internal/adapters/redis_adapter"
	"github.com/ammerola/seller-sync/internal/core/ports"
	"github.com/ammerola/seller-sync/internal/health"
	"github.com/ammerola/seller-sync/internal/workers"
	"github.com/ammerola/seller-sync/test/helpers"
)

type cliEnv struct {
	catalog *helpers.FakeCatalog
}

func setupCLIEnv(t *testing.T, offers, records int) *cliEnv {
	t.Helper()

	catalog := helpers.NewFakeCatalog(offers).RequireCredentials("cli-client", "cli-token")
	api := httptest.NewServer(catalog)
	t.Cleanup(api.Close)

	archive, _ := helpers.ServeArchive(t, helpers.BuildInventoryArchive(t, helpers.CreateTestRecords(records)))

	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MARKETPLACE_BASE_URL", api.URL)
	t.Setenv("CLIENT_ID", "cli-client")
	t.Setenv("SELLER_TOKEN", "cli-token")
	t.Setenv("VENDOR_INVENTORY_URL", archive.URL+"/ostatki.zip")
	t.Setenv("VENDOR_WORK_DIR", t.TempDir())

	return &cliEnv{catalog: catalog}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runApp(t, &app{}, args...)
}

func runApp(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := execute(context.Background(), a, args, &out, io.Discard)
	return out.String(), err
}

func TestOffersCommand(t *testing.T) {
	setupCLIEnv(t, 3, 0)

	out, err := runCLI(t, "offers")
	require.NoError(t, err)
	assert.Equal(t, []string{"offer-0000", "offer-0001", "offer-0002"}, strings.Fields(out))
}

func TestRunCommand_JSON(t *testing.T) {
	env := setupCLIEnv(t, 4, 3)

	out, err := runCLI(t, "run", "--json")
	require.NoError(t, err)

	var report ports.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.OfferCount)
	assert.Equal(t, 4, report.StocksPushed)
	assert.Equal(t, 1, report.ZeroedOffers)
	assert.Equal(t, 3, report.PricesPushed)
	assert.Len(t, env.catalog.PushedStocks(), 4)
}

func TestStocksAndPricesCommands(t *testing.T) {
	env := setupCLIEnv(t, 5, 5)

	out, err := runCLI(t, "stocks")
	require.NoError(t, err)
	assert.Contains(t, out, "5 stocks pushed, 3 non-empty")
	assert.Len(t, env.catalog.PushedStocks(), 5)

	out, err = runCLI(t, "prices")
	require.NoError(t, err)
	assert.Contains(t, out, "5 prices pushed")
	assert.Len(t, env.catalog.PushedPrices(), 5)
}

func TestRunCommand_Failure(t *testing.T) {
	env := setupCLIEnv(t, 2, 2)
	env.catalog.FailPath(marketplace.PathProductList, http.StatusInternalServerError)

	_, err := runCLI(t, "run")
	require.Error(t, err)
	assert.Empty(t, env.catalog.PushedStocks())
}

func TestRunCommand_FailureClosesRedis(t *testing.T) {
	env := setupCLIEnv(t, 2, 2)
	env.catalog.FailPath(marketplace.PathProductList, http.StatusInternalServerError)
	testRedis := helpers.SetupTestRedis(t)
	t.Setenv("REDIS_HOST", testRedis.Server.Host())
	t.Setenv("REDIS_PORT", testRedis.Server.Port())
	t.Setenv("SYNC_LOCK_ENABLED", "true")

	a := &app{}
	_, err := runApp(t, a, "run")
	require.Error(t, err)

	require.NotNil(t, a.deps)
	require.NotNil(t, a.deps.RedisClient)
	assert.ErrorIs(t, a.deps.RedisClient.Ping(context.Background()).Err(), redis.ErrClosed)
	assert.False(t, testRedis.Server.Exists(redis_a.DefaultLockKey), "run lock must be released")
}

func TestRunCommand_MissingCredentials(t *testing.T) {
	setupCLIEnv(t, 1, 1)
	t.Setenv("SELLER_TOKEN", "")

	_, err := runCLI(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SELLER_TOKEN")
}

func TestEnqueueCommand_RejectsUnknownTask(t *testing.T) {
	setupCLIEnv(t, 0, 0)

	_, err := runCLI(t, "enqueue", "reindex")
	require.Error(t, err)
}

func TestNewTask(t *testing.T) {
	tests := map[string]string{
		"run":     workers.TypeSyncRun,
		"stocks":  workers.TypeUploadStocks,
		"prices":  workers.TypeUploadPrices,
		"cleanup": workers.TypeCleanupWorkDir,
	}

	for name, taskType := range tests {
		t.Run(name, func(t *testing.T) {
			task, err := newTask(name)
			require.NoError(t, err)
			assert.Equal(t, taskType, task.Type())
		})
	}

	_, err := newTask("reindex")
	assert.Error(t, err)
}

func TestHealthCommand(t *testing.T) {
	setupCLIEnv(t, 0, 0)
	testRedis := helpers.SetupTestRedis(t)
	t.Setenv("REDIS_HOST", testRedis.Server.Host())
	t.Setenv("REDIS_PORT", testRedis.Server.Port())
	t.Setenv("SYNC_LOCK_ENABLED", "true")

	out, err := runCLI(t, "health")
	require.NoError(t, err)

	var report health.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, health.StatusHealthy, report.Status)
	assert.Equal(t, health.StatusHealthy, report.Services["redis"].Status)

	testRedis.Server.Close()
	_, err = runCLI(t, "health")
	assert.ErrorIs(t, err, errUnhealthy)
}
