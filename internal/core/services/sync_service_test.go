package services_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/core/services"
	"github.com/ammerola/seller-sync/test/helpers"
	"github.com/ammerola/seller-sync/test/mocks"
)

type syncFixture struct {
	catalog   *mocks.MockCatalogClient
	inventory *mocks.MockInventorySource
	lock      *mocks.MockRunLock
}

func newFixture(t *testing.T) *syncFixture {
	ctrl := gomock.NewController(t)
	return &syncFixture{
		catalog:   mocks.NewMockCatalogClient(ctrl),
		inventory: mocks.NewMockInventorySource(ctrl),
		lock:      mocks.NewMockRunLock(ctrl),
	}
}

func (f *syncFixture) service(withLock bool) *services.SyncService {
	var opts services.Options
	if withLock {
		opts.LockTTL = time.Minute
		return services.NewSyncService(f.catalog, f.inventory, f.lock, opts, helpers.TestLogger())
	}
	return services.NewSyncService(f.catalog, f.inventory, nil, opts, helpers.TestLogger())
}

func offerIDs(n int) []domain.OfferID {
	ids := make([]domain.OfferID, n)
	for i := range ids {
		ids[i] = domain.OfferID(fmt.Sprintf("offer-%04d", i))
	}
	return ids
}

func TestSyncService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes_stocks_then_prices", func(t *testing.T) {
		f := newFixture(t)
		records := []domain.InventoryRecord{
			{Code: "A", Quantity: ">10", Price: "5'990.00 руб."},
			{Code: "B", Quantity: "1", Price: "100.50"},
			{Code: "X", Quantity: "5", Price: "10.00"},
		}

		gomock.InOrder(
			f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"A", "B", "C"}, nil),
			f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(records, nil),
			f.catalog.EXPECT().UpdateStocks(gomock.Any(), []domain.StockUpdate{
				{OfferID: "A", Stock: 100},
				{OfferID: "B", Stock: 0},
				{OfferID: "C", Stock: 0},
			}).Return([]domain.UpdateResult{{OfferID: "A", Updated: true}}, nil),
			f.catalog.EXPECT().UpdatePrices(gomock.Any(), []domain.PriceUpdate{
				domain.NewPriceUpdate("A", "5990"),
				domain.NewPriceUpdate("B", "100"),
			}).Return(nil, nil),
		)

		report, err := f.service(false).Run(ctx)
		require.NoError(t, err)

		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, 3, report.OfferCount)
		assert.Equal(t, 3, report.RecordCount)
		assert.Equal(t, 3, report.StocksPushed)
		assert.Equal(t, 1, report.StockBatches)
		assert.Equal(t, 1, report.ZeroedOffers)
		assert.Equal(t, 2, report.PricesPushed)
		assert.Equal(t, 1, report.PriceBatches)
		assert.Empty(t, report.RejectedPrices)
		assert.Empty(t, report.FailedUpdates)
	})

	t.Run("batches_by_configured_sizes", func(t *testing.T) {
		f := newFixture(t)
		ids := offerIDs(250)
		records := helpers.CreateTestRecords(250)

		var stockSizes, priceSizes []int
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(ids, nil)
		f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(records, nil)
		f.catalog.EXPECT().UpdateStocks(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, stocks []domain.StockUpdate) ([]domain.UpdateResult, error) {
				stockSizes = append(stockSizes, len(stocks))
				return nil, nil
			}).Times(3)
		f.catalog.EXPECT().UpdatePrices(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prices []domain.PriceUpdate) ([]domain.UpdateResult, error) {
				priceSizes = append(priceSizes, len(prices))
				return nil, nil
			}).Times(1)

		report, err := f.service(false).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, []int{100, 100, 50}, stockSizes)
		assert.Equal(t, []int{250}, priceSizes)
		assert.Equal(t, 3, report.StockBatches)
		assert.Equal(t, 0, report.ZeroedOffers)
	})

	t.Run("list_failure_stops_before_download", func(t *testing.T) {
		f := newFixture(t)
		listErr := &domain.HTTPError{Op: "POST", URL: "https://api.test/v2/product/list", StatusCode: 401}
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(nil, listErr)

		report, err := f.service(false).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrHTTP)
		assert.NotEmpty(t, report.RunID)
		assert.Zero(t, report.StocksPushed)
	})

	t.Run("stock_batch_failure_aborts_prices", func(t *testing.T) {
		f := newFixture(t)
		pushErr := errors.New("boom")

		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(offerIDs(150), nil)
		f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(helpers.CreateTestRecords(150), nil)
		gomock.InOrder(
			f.catalog.EXPECT().UpdateStocks(gomock.Any(), gomock.Len(100)).Return(nil, nil),
			f.catalog.EXPECT().UpdateStocks(gomock.Any(), gomock.Len(50)).Return(nil, pushErr),
		)
		f.catalog.EXPECT().UpdatePrices(gomock.Any(), gomock.Any()).Times(0)

		report, err := f.service(false).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, pushErr)
		assert.Contains(t, err.Error(), "stocks batch 2/2")
		assert.Equal(t, 1, report.StockBatches)
		assert.Equal(t, 100, report.StocksPushed)
	})

	t.Run("bad_quantity_fails_before_any_push", func(t *testing.T) {
		f := newFixture(t)
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"A"}, nil)
		f.inventory.EXPECT().DownloadInventory(gomock.Any()).
			Return([]domain.InventoryRecord{{Code: "A", Quantity: "много", Price: "1"}}, nil)

		_, err := f.service(false).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("collects_rejections_and_unparseable_prices", func(t *testing.T) {
		f := newFixture(t)
		records := []domain.InventoryRecord{
			{Code: "A", Quantity: "3", Price: "по запросу"},
			{Code: "B", Quantity: "4", Price: "200.00"},
		}
		rejection := domain.UpdateResult{
			OfferID: "B",
			Updated: false,
			Errors:  []domain.UpdateError{{Code: "PRODUCT_IS_ARCHIVED", Message: "archived"}},
		}

		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"A", "B"}, nil)
		f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(records, nil)
		f.catalog.EXPECT().UpdateStocks(gomock.Any(), gomock.Len(2)).Return([]domain.UpdateResult{rejection}, nil)
		f.catalog.EXPECT().UpdatePrices(gomock.Any(), []domain.PriceUpdate{domain.NewPriceUpdate("B", "200")}).Return(nil, nil)

		report, err := f.service(false).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.OfferID{"A"}, report.RejectedPrices)
		assert.Equal(t, []domain.UpdateResult{rejection}, report.FailedUpdates)
	})

	t.Run("no_offers_pushes_nothing", func(t *testing.T) {
		f := newFixture(t)
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(nil, nil)
		f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(helpers.CreateTestRecords(3), nil)

		report, err := f.service(false).Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.StockBatches)
		assert.Zero(t, report.PriceBatches)
	})
}

func TestSyncService_RunLock(t *testing.T) {
	ctx := context.Background()

	t.Run("held_elsewhere", func(t *testing.T) {
		f := newFixture(t)
		f.lock.EXPECT().Acquire(gomock.Any(), time.Minute).Return(nil, false, nil)

		_, err := f.service(true).Run(ctx)
		assert.ErrorIs(t, err, services.ErrRunInProgress)
	})

	t.Run("released_after_run", func(t *testing.T) {
		f := newFixture(t)
		released := 0
		release := func(context.Context) error { released++; return nil }

		f.lock.EXPECT().Acquire(gomock.Any(), time.Minute).Return(release, true, nil)
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(nil, errors.New("down"))

		_, err := f.service(true).Run(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, released)
	})

	t.Run("lock_error", func(t *testing.T) {
		f := newFixture(t)
		f.lock.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))

		_, err := f.service(true).DownloadInventory(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
	})
}

func TestSyncService_UploadStocks(t *testing.T) {
	f := newFixture(t)
	records := []domain.InventoryRecord{
		{Code: "A", Quantity: ">10"},
		{Code: "B", Quantity: "1"},
		{Code: "C", Quantity: "7"},
	}

	f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"A", "B", "C", "D"}, nil)
	f.catalog.EXPECT().UpdateStocks(gomock.Any(), gomock.Len(4)).Return(nil, nil)

	result, err := f.service(false).UploadStocks(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []domain.StockUpdate{
		{OfferID: "A", Stock: 100},
		{OfferID: "B", Stock: 0},
		{OfferID: "C", Stock: 7},
		{OfferID: "D", Stock: 0},
	}, result.All)
	assert.Equal(t, []domain.StockUpdate{
		{OfferID: "A", Stock: 100},
		{OfferID: "C", Stock: 7},
	}, result.NonEmpty)
}

func TestSyncService_UploadPrices(t *testing.T) {
	t.Run("uses_upload_batch_size", func(t *testing.T) {
		f := newFixture(t)
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return(offerIDs(1500), nil)
		gomock.InOrder(
			f.catalog.EXPECT().UpdatePrices(gomock.Any(), gomock.Len(1000)).Return(nil, nil),
			f.catalog.EXPECT().UpdatePrices(gomock.Any(), gomock.Len(500)).Return(nil, nil),
		)

		prices, err := f.service(false).UploadPrices(context.Background(), helpers.CreateTestRecords(1500))
		require.NoError(t, err)
		assert.Len(t, prices, 1500)
		assert.Equal(t, "1000", prices[0].Price)
	})

	t.Run("push_error", func(t *testing.T) {
		f := newFixture(t)
		f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"offer-0000"}, nil)
		f.catalog.EXPECT().UpdatePrices(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

		_, err := f.service(false).UploadPrices(context.Background(), helpers.CreateTestRecords(1))
		require.Error(t, err)
		assert.Equal(t, services.FailureTimeout, services.Classify(err))
	})
}

func TestSyncService_Passthroughs(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().ListOfferIDs(gomock.Any()).Return([]domain.OfferID{"A"}, nil)
	f.inventory.EXPECT().DownloadInventory(gomock.Any()).Return(helpers.CreateTestRecords(2), nil)

	svc := f.service(false)

	ids, err := svc.ListOfferIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.OfferID{"A"}, ids)

	records, err := svc.DownloadInventory(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want services.FailureClass
	}{
		{name: "nil", err: nil, want: services.FailureOther},
		{name: "deadline", err: fmt.Errorf("wrap: %w", context.DeadlineExceeded), want: services.FailureTimeout},
		{
			name: "client_timeout",
			err: &domain.HTTPError{Op: "POST", URL: "u", Err: &url.Error{
				Op: "Post", URL: "u", Err: timeoutErr{},
			}},
			want: services.FailureTimeout,
		},
		{
			name: "refused",
			err: &domain.HTTPError{Op: "GET", URL: "u", Err: &net.OpError{
				Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED,
			}},
			want: services.FailureConnection,
		},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "api.test"}, want: services.FailureConnection},
		{name: "reset", err: fmt.Errorf("read: %w", syscall.ECONNRESET), want: services.FailureConnection},
		{name: "parse", err: &domain.ParseError{Source: "x", Err: errors.New("bad")}, want: services.FailureOther},
		{name: "status", err: &domain.HTTPError{Op: "POST", URL: "u", StatusCode: 500}, want: services.FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.Classify(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.Message())
		})
	}
}
