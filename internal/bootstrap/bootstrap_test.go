// internal/bootstrap/bootstrap_test.go
package bootstrap_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/seller-sync/internal/adapters/storage"
	"github.com/ammerola/seller-sync/internal/adapters/vendor"
	"github.com/ammerola/seller-sync/internal/bootstrap"
	"github.com/ammerola/seller-sync/internal/core/services"
	"github.com/ammerola/seller-sync/internal/pkg/config"
	"github.com/ammerola/seller-sync/test/helpers"
)

func TestBuild_ResolvesCredentialsFromEnv(t *testing.T) {
	t.Setenv(config.SecretClientID, "env-client")
	t.Setenv(config.SecretSellerToken, "env-token")

	catalog := helpers.NewFakeCatalog(3).RequireCredentials("env-client", "env-token")
	api := httptest.NewServer(catalog)
	t.Cleanup(api.Close)

	archive, _ := helpers.ServeArchive(t, helpers.BuildInventoryArchive(t, helpers.CreateTestRecords(3)))

	cfg := helpers.LoadTestConfig()
	cfg.Marketplace.BaseURL = api.URL
	cfg.Marketplace.ClientID = ""
	cfg.Marketplace.APIKey = ""
	cfg.Vendor.InventoryURL = archive.URL + "/ostatki.zip"
	cfg.Vendor.WorkDir = t.TempDir()

	deps, err := bootstrap.Build(context.Background(), cfg, config.NewEnvSecretsManager(), helpers.TestLogger())
	require.NoError(t, err)
	t.Cleanup(deps.Close)

	assert.Equal(t, "env-client", cfg.Marketplace.ClientID)
	assert.Nil(t, deps.RedisClient)

	report, err := deps.Service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.StocksPushed)
	assert.Len(t, catalog.PushedPrices(), 3)
}

func TestBuild_MissingCredentials(t *testing.T) {
	t.Setenv(config.SecretClientID, "")
	t.Setenv(config.SecretSellerToken, "")

	cfg := helpers.LoadTestConfig()
	cfg.Marketplace.ClientID = ""
	cfg.Marketplace.APIKey = ""

	_, err := bootstrap.Build(context.Background(), cfg, config.NewEnvSecretsManager(), helpers.TestLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingRequiredConfig)
}

func TestBuild_ProductionRequiresHTTPS(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.App.Environment = "production"

	_, err := bootstrap.Build(context.Background(), cfg, config.NewEnvSecretsManager(), helpers.TestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https")
}

func TestBuild_RunLock(t *testing.T) {
	t.Run("wires_redis_lock", func(t *testing.T) {
		testRedis := helpers.SetupTestRedis(t)

		catalog := helpers.NewFakeCatalog(2)
		api := httptest.NewServer(catalog)
		t.Cleanup(api.Close)
		archive, _ := helpers.ServeArchive(t, helpers.BuildInventoryArchive(t, helpers.CreateTestRecords(2)))

		cfg := helpers.LoadTestConfig()
		cfg.Marketplace.BaseURL = api.URL
		cfg.Vendor.InventoryURL = archive.URL
		cfg.Vendor.WorkDir = t.TempDir()
		cfg.Sync.LockEnabled = true
		cfg.Redis.Host = testRedis.Server.Host()
		cfg.Redis.Port = testRedis.Server.Port()

		deps, err := bootstrap.Build(context.Background(), cfg, config.NewEnvSecretsManager(), helpers.TestLogger())
		require.NoError(t, err)
		t.Cleanup(deps.Close)
		require.NotNil(t, deps.RedisClient)

		// another holder owns the lock
		testRedis.Server.Set("seller-sync:lock:run", "other-run")
		_, err = deps.Service.Run(context.Background())
		assert.ErrorIs(t, err, services.ErrRunInProgress)

		testRedis.Server.Del("seller-sync:lock:run")
		_, err = deps.Service.Run(context.Background())
		require.NoError(t, err)
		assert.False(t, testRedis.Server.Exists("seller-sync:lock:run"))
	})

	t.Run("redis_unreachable", func(t *testing.T) {
		testRedis := helpers.SetupTestRedis(t)
		host, port := testRedis.Server.Host(), testRedis.Server.Port()
		testRedis.Server.Close()

		cfg := helpers.LoadTestConfig()
		cfg.Sync.LockEnabled = true
		cfg.Redis.Host = host
		cfg.Redis.Port = port

		_, err := bootstrap.Build(context.Background(), cfg, config.NewEnvSecretsManager(), helpers.TestLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}

func TestNewArchiveSource(t *testing.T) {
	tests := []struct {
		name     string
		location string
		check    func(t *testing.T, source any)
	}{
		{
			name:     "https",
			location: "https://timeworld.ru/upload/files/ostatki.zip",
			check: func(t *testing.T, source any) {
				assert.IsType(t, &vendor.HTTPSource{}, source)
			},
		},
		{
			name:     "s3",
			location: "s3://vendor-mirror/ostatki.zip",
			check: func(t *testing.T, source any) {
				assert.IsType(t, &storage.S3Source{}, source)
			},
		},
		{
			name:     "file_scheme",
			location: "file:///var/lib/seller-sync/ostatki.zip",
			check: func(t *testing.T, source any) {
				assert.IsType(t, &storage.LocalSource{}, source)
			},
		},
		{
			name:     "relative_path",
			location: "ostatki.zip",
			check: func(t *testing.T, source any) {
				assert.IsType(t, &storage.LocalSource{}, source)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := helpers.LoadTestConfig()
			cfg.Vendor.InventoryURL = tt.location
			cfg.AWS.AccessKeyID = "test"
			cfg.AWS.SecretAccessKey = "test"

			source, err := bootstrap.NewArchiveSource(context.Background(), cfg, helpers.TestLogger())
			require.NoError(t, err)
			tt.check(t, source)
		})
	}
}
