// test/helpers/fake_catalog.go
package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

// FakeCatalog is an in-memory stand-in for the marketplace seller API.
// It serves product list pages keyed by last_id and records every stock
// and price batch it receives.
type FakeCatalog struct {
	mu           sync.Mutex
	offers       []domain.OfferID
	rejected     map[domain.OfferID]string
	failures     map[string]int
	clientID     string
	apiKey       string
	listCalls    int
	cursors      []string
	stockBatches [][]domain.StockUpdate
	priceBatches [][]domain.PriceUpdate
}

// NewFakeCatalog creates a catalog of n offers named offer-0000, offer-0001, ...
func NewFakeCatalog(n int) *FakeCatalog {
	offers := make([]domain.OfferID, n)
	for i := range offers {
		offers[i] = domain.OfferID(fmt.Sprintf("offer-%04d", i))
	}
	return NewFakeCatalogWithOffers(offers...)
}

// NewFakeCatalogWithOffers creates a catalog listing exactly offers
func NewFakeCatalogWithOffers(offers ...domain.OfferID) *FakeCatalog {
	return &FakeCatalog{
		offers:   offers,
		rejected: make(map[domain.OfferID]string),
		failures: make(map[string]int),
	}
}

// RequireCredentials makes the fake reject requests without these headers
func (f *FakeCatalog) RequireCredentials(clientID, apiKey string) *FakeCatalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clientID, f.apiKey = clientID, apiKey
	return f
}

// Reject makes updates for offerID come back with updated=false
func (f *FakeCatalog) Reject(offerID domain.OfferID, code string) *FakeCatalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected[offerID] = code
	return f
}

// FailPath makes every request to path answer with status
func (f *FakeCatalog) FailPath(path string, status int) *FakeCatalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
	return f
}

func (f *FakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clientID != "" && (r.Header.Get("Client-Id") != f.clientID || r.Header.Get("Api-Key") != f.apiKey) {
		http.Error(w, `{"code":16,"message":"unauthenticated"}`, http.StatusUnauthorized)
		return
	}
	if status, ok := f.failures[r.URL.Path]; ok {
		http.Error(w, `{"message":"injected failure"}`, status)
		return
	}

	switch r.URL.Path {
	case "/v2/product/list":
		f.serveList(w, r)
	case "/v1/product/import/stocks":
		var body struct {
			Stocks []domain.StockUpdate `json:"stocks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.stockBatches = append(f.stockBatches, body.Stocks)

		ids := make([]domain.OfferID, len(body.Stocks))
		for i, s := range body.Stocks {
			ids[i] = s.OfferID
		}
		f.writeResults(w, ids)
	case "/v1/product/import/prices":
		var body struct {
			Prices []domain.PriceUpdate `json:"prices"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.priceBatches = append(f.priceBatches, body.Prices)

		ids := make([]domain.OfferID, len(body.Prices))
		for i, p := range body.Prices {
			ids[i] = p.OfferID
		}
		f.writeResults(w, ids)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeCatalog) serveList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LastID string `json:"last_id"`
		Limit  int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.listCalls++
	f.cursors = append(f.cursors, req.LastID)

	start := 0
	if req.LastID != "" {
		start = slices.Index(f.offers, domain.OfferID(req.LastID)) + 1
	}
	end := min(start+req.Limit, len(f.offers))

	type item struct {
		ProductID int64          `json:"product_id"`
		OfferID   domain.OfferID `json:"offer_id"`
	}
	items := make([]item, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, item{ProductID: int64(i + 1), OfferID: f.offers[i]})
	}

	lastID := ""
	if len(items) > 0 {
		lastID = string(items[len(items)-1].OfferID)
	}

	writeJSON(w, map[string]any{
		"result": map[string]any{
			"items":   items,
			"total":   len(f.offers),
			"last_id": lastID,
		},
	})
}

func (f *FakeCatalog) writeResults(w http.ResponseWriter, ids []domain.OfferID) {
	results := make([]domain.UpdateResult, len(ids))
	for i, id := range ids {
		results[i] = domain.UpdateResult{OfferID: id, ProductID: int64(i + 1), Updated: true}
		if code, ok := f.rejected[id]; ok {
			results[i].Updated = false
			results[i].Errors = []domain.UpdateError{{Code: code, Message: "rejected by fake catalog"}}
		}
	}
	writeJSON(w, map[string]any{"result": results})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListCalls returns how many product list pages were requested
func (f *FakeCatalog) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// Cursors returns the last_id sent with each list request
func (f *FakeCatalog) Cursors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.cursors)
}

// StockBatches returns every stock batch received, in order
func (f *FakeCatalog) StockBatches() [][]domain.StockUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.stockBatches)
}

// PriceBatches returns every price batch received, in order
func (f *FakeCatalog) PriceBatches() [][]domain.PriceUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.priceBatches)
}

// PushedStocks returns all received stock updates flattened
func (f *FakeCatalog) PushedStocks() []domain.StockUpdate {
	return slices.Concat(f.StockBatches()...)
}

// PushedPrices returns all received price updates flattened
func (f *FakeCatalog) PushedPrices() []domain.PriceUpdate {
	return slices.Concat(f.PriceBatches()...)
}
