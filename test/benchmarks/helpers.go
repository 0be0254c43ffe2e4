// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// vendorPrices are price cells as they appear in real vendor exports
var vendorPrices = []string{
	"5'990.00 руб.",
	"1 234,00",
	"100.00",
	"12'500.50 руб.",
	"",
	"990",
}

// createCatalog returns offer ids offer-0000.. as listed by the marketplace
func createCatalog(n int) []domain.OfferID {
	offers := make([]domain.OfferID, n)
	for i := range offers {
		offers[i] = domain.OfferID(fmt.Sprintf("offer-%04d", i))
	}
	return offers
}

// createSnapshot returns n vendor records where every matchEvery-th record
// has a code present in a catalog from createCatalog.
func createSnapshot(n, matchEvery int) []domain.InventoryRecord {
	quantities := []string{">10", "1", "3", "0", "17"}

	records := make([]domain.InventoryRecord, n)
	for i := range records {
		code := domain.OfferID(fmt.Sprintf("vendor-%06d", i))
		if matchEvery > 0 && i%matchEvery == 0 {
			code = domain.OfferID(fmt.Sprintf("offer-%04d", i/matchEvery))
		}
		records[i] = domain.InventoryRecord{
			Code:     code,
			Quantity: quantities[i%len(quantities)],
			Price:    vendorPrices[i%len(vendorPrices)],
		}
	}
	return records
}
