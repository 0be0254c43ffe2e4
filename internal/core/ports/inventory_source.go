// internal/core/ports/inventory_source.go
package ports

import (
	"context"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// InventorySource defines the port for the vendor inventory snapshot.
type InventorySource interface {
	DownloadInventory(ctx context.Context) ([]domain.InventoryRecord, error)
}

// ArchiveSource fetches the raw compressed snapshot from a location
// (an http(s) URL or an s3:// object).
type ArchiveSource interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}
