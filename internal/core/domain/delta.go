// internal/core/domain/delta.go
package domain

import (
	"strconv"
	"strings"
)

// offerSet is an owned, order-preserving copy of the catalog offer ids
type offerSet struct {
	order     []OfferID
	remaining map[OfferID]struct{}
}

func newOfferSet(offerIDs []OfferID) *offerSet {
	s := &offerSet{
		order:     make([]OfferID, 0, len(offerIDs)),
		remaining: make(map[OfferID]struct{}, len(offerIDs)),
	}
	for _, id := range offerIDs {
		if _, dup := s.remaining[id]; dup {
			continue
		}
		s.remaining[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s
}

// consume removes id and reports whether it was still pending
func (s *offerSet) consume(id OfferID) bool {
	if _, ok := s.remaining[id]; !ok {
		return false
	}
	delete(s.remaining, id)
	return true
}

func (s *offerSet) unconsumed() []OfferID {
	out := make([]OfferID, 0, len(s.remaining))
	for _, id := range s.order {
		if _, ok := s.remaining[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ParseStock maps vendor quantity text to a marketplace stock level.
// ">10" means plenty and becomes 100; "1" is treated as out of stock.
func ParseStock(quantity string) (int, error) {
	q := strings.TrimSpace(quantity)
	switch q {
	case quantityOverTenMarker:
		return StockOverTen, nil
	case quantityOneMarker:
		return 0, nil
	}

	n, err := strconv.Atoi(q)
	if err != nil {
		return 0, &ValueError{Field: "quantity", Value: quantity, Err: err}
	}
	if n < 0 {
		return 0, &ValueError{Field: "quantity", Value: quantity}
	}
	return n, nil
}

// FormatPrice normalizes vendor price text such as "5'990.00 руб." into
// the digits-only integer part ("5990"). Malformed input yields "".
func FormatPrice(raw string) string {
	whole, _, _ := strings.Cut(raw, ".")

	var b strings.Builder
	b.Grow(len(whole))
	for _, r := range whole {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildStockUpdates produces exactly one stock update per distinct offer id.
// Offers matched by an inventory record get the mapped quantity, the rest
// default to zero stock. offerIDs is not modified.
func BuildStockUpdates(records []InventoryRecord, offerIDs []OfferID) ([]StockUpdate, error) {
	set := newOfferSet(offerIDs)
	stocks := make([]StockUpdate, 0, len(set.order))

	for _, record := range records {
		if _, known := set.remaining[record.Code]; !known {
			continue
		}
		stock, err := ParseStock(record.Quantity)
		if err != nil {
			return nil, err
		}
		set.consume(record.Code)
		stocks = append(stocks, StockUpdate{OfferID: record.Code, Stock: stock})
	}

	for _, id := range set.unconsumed() {
		stocks = append(stocks, StockUpdate{OfferID: id, Stock: 0})
	}

	return stocks, nil
}

// BuildPriceUpdates produces a price update for every known offer present
// in the inventory. Offers whose price text has no digits are returned as
// rejected instead of being pushed with an empty price.
func BuildPriceUpdates(records []InventoryRecord, offerIDs []OfferID) ([]PriceUpdate, []OfferID) {
	set := newOfferSet(offerIDs)
	var (
		prices   []PriceUpdate
		rejected []OfferID
	)

	for _, record := range records {
		if !set.consume(record.Code) {
			continue
		}
		price := FormatPrice(record.Price)
		if price == "" {
			rejected = append(rejected, record.Code)
			continue
		}
		prices = append(prices, NewPriceUpdate(record.Code, price))
	}

	return prices, rejected
}

// Unmatched returns the offer ids that no inventory record refers to, in
// catalog order. These are the offers that receive the zero-stock default.
func Unmatched(records []InventoryRecord, offerIDs []OfferID) []OfferID {
	set := newOfferSet(offerIDs)
	for _, record := range records {
		set.consume(record.Code)
	}
	return set.unconsumed()
}
