// internal/core/domain/offer.go
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OfferID identifies a sellable catalog entry. Vendor rows use the same
// value as their code.
type OfferID string

// Price update constants expected by the marketplace
const (
	CurrencyRUB           = "RUB"
	AutoActionUnknown     = "UNKNOWN"
	OldPriceUnset         = "0"
	StockOverTen          = 100
	quantityOverTenMarker = ">10"
	quantityOneMarker     = "1"
)

// InventoryRecord represents a single row of the vendor snapshot
type InventoryRecord struct {
	Code     OfferID `json:"code"`
	Quantity string  `json:"quantity"`
	Price    string  `json:"price"`
}

// IsBlank reports whether the row carries no data at all
func (r InventoryRecord) IsBlank() bool {
	return r.Code == "" && r.Quantity == "" && r.Price == ""
}

// StockUpdate is one entry of the stock import payload
type StockUpdate struct {
	OfferID OfferID `json:"offer_id"`
	Stock   int     `json:"stock"`
}

// Validate performs domain validation on the stock update
func (s StockUpdate) Validate() error {
	if s.OfferID == "" {
		return fmt.Errorf("offer_id is required")
	}
	if s.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// PriceUpdate is one entry of the price import payload
type PriceUpdate struct {
	AutoActionEnabled string  `json:"auto_action_enabled"`
	CurrencyCode      string  `json:"currency_code"`
	OfferID           OfferID `json:"offer_id"`
	OldPrice          string  `json:"old_price"`
	Price             string  `json:"price"`
}

// NewPriceUpdate creates a price update with the marketplace defaults
func NewPriceUpdate(offerID OfferID, price string) PriceUpdate {
	return PriceUpdate{
		AutoActionEnabled: AutoActionUnknown,
		CurrencyCode:      CurrencyRUB,
		OfferID:           offerID,
		OldPrice:          OldPriceUnset,
		Price:             price,
	}
}

// Validate performs domain validation on the price update
func (p PriceUpdate) Validate() error {
	if p.OfferID == "" {
		return fmt.Errorf("offer_id is required")
	}
	amount, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("price %q is not numeric: %w", p.Price, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// UpdateError is a per-item rejection reported by the marketplace
type UpdateError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UpdateResult is the per-item outcome of a stock or price import
type UpdateResult struct {
	OfferID   OfferID       `json:"offer_id"`
	ProductID int64         `json:"product_id"`
	Updated   bool          `json:"updated"`
	Errors    []UpdateError `json:"errors,omitempty"`
}
