// internal/core/ports/catalog.go
package ports

import (
	"context"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// CatalogClient defines the port for the marketplace seller catalog.
// This interface is implemented by the marketplace adapter.
type CatalogClient interface {
	ListOfferIDs(ctx context.Context) ([]domain.OfferID, error)
	UpdateStocks(ctx context.Context, stocks []domain.StockUpdate) ([]domain.UpdateResult, error)
	UpdatePrices(ctx context.Context, prices []domain.PriceUpdate) ([]domain.UpdateResult, error)
}
