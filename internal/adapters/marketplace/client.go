// internal/adapters/marketplace/client.go
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/seller-sync/internal/core/domain"
	"github.com/ammerola/seller-sync/internal/core/ports"
)

// Endpoint paths of the seller API
const (
	PathProductList  = "/v2/product/list"
	PathImportPrices = "/v1/product/import/prices"
	PathImportStocks = "/v1/product/import/stocks"

	DefaultBaseURL  = "https://api-seller.ozon.ru"
	DefaultPageSize = 1000

	headerClientID = "Client-Id"
	headerAPIKey   = "Api-Key"
	maxErrorBody   = 2048
)

// ErrPaginationStalled is returned when the list endpoint stops returning
// items before the reported total has been reached.
var ErrPaginationStalled = errors.New("product list pagination stalled")

// Config holds the catalog client configuration
type Config struct {
	BaseURL    string
	ClientID   string
	APIKey     string
	PageSize   int
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables pacing
	HTTPClient *http.Client
}

// Client talks to the marketplace seller catalog over HTTP
type Client struct {
	http     *http.Client
	baseURL  string
	clientID string
	apiKey   string
	pageSize int
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Statically assert that *Client implements the CatalogClient interface.
var _ ports.CatalogClient = (*Client)(nil)

// NewClient creates a new catalog client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		clientID: cfg.ClientID,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		limiter:  limiter,
		logger:   logger.With(slog.String("component", "marketplace")),
	}
}

type productListFilter struct {
	Visibility string `json:"visibility"`
}

type productListRequest struct {
	Filter productListFilter `json:"filter"`
	LastID string            `json:"last_id"`
	Limit  int               `json:"limit"`
}

type productListItem struct {
	ProductID int64          `json:"product_id"`
	OfferID   domain.OfferID `json:"offer_id"`
}

type productListResult struct {
	Items  []productListItem `json:"items"`
	Total  int               `json:"total"`
	LastID string            `json:"last_id"`
}

type productListResponse struct {
	Result productListResult `json:"result"`
}

type importResponse struct {
	Result []domain.UpdateResult `json:"result"`
}

// ListOfferIDs pages through the whole catalog and returns every offer id
func (c *Client) ListOfferIDs(ctx context.Context) ([]domain.OfferID, error) {
	var (
		lastID   string
		offerIDs []domain.OfferID
		page     int
	)

	for {
		result, err := c.listPage(ctx, lastID)
		if err != nil {
			return nil, fmt.Errorf("failed to list products page %d: %w", page, err)
		}
		page++

		for _, item := range result.Items {
			offerIDs = append(offerIDs, item.OfferID)
		}

		c.logger.DebugContext(ctx, "fetched product list page",
			slog.Int("page", page),
			slog.Int("items", len(result.Items)),
			slog.Int("accumulated", len(offerIDs)),
			slog.Int("total", result.Total))

		if len(offerIDs) >= result.Total {
			break
		}
		if len(result.Items) == 0 {
			return nil, fmt.Errorf("%w: got %d of %d items", ErrPaginationStalled, len(offerIDs), result.Total)
		}
		lastID = result.LastID
	}

	c.logger.InfoContext(ctx, "fetched catalog offer ids",
		slog.Int("count", len(offerIDs)),
		slog.Int("pages", page))

	return offerIDs, nil
}

func (c *Client) listPage(ctx context.Context, lastID string) (*productListResult, error) {
	req := productListRequest{
		Filter: productListFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  c.pageSize,
	}

	var resp productListResponse
	if err := c.post(ctx, PathProductList, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// UpdateStocks pushes one batch of stock levels
func (c *Client) UpdateStocks(ctx context.Context, stocks []domain.StockUpdate) ([]domain.UpdateResult, error) {
	payload := struct {
		Stocks []domain.StockUpdate `json:"stocks"`
	}{Stocks: stocks}

	var resp importResponse
	if err := c.post(ctx, PathImportStocks, payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to update stocks: %w", err)
	}

	c.logger.DebugContext(ctx, "stock batch accepted", slog.Int("count", len(stocks)))
	return resp.Result, nil
}

// UpdatePrices pushes one batch of prices
func (c *Client) UpdatePrices(ctx context.Context, prices []domain.PriceUpdate) ([]domain.UpdateResult, error) {
	payload := struct {
		Prices []domain.PriceUpdate `json:"prices"`
	}{Prices: prices}

	var resp importResponse
	if err := c.post(ctx, PathImportPrices, payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to update prices: %w", err)
	}

	c.logger.DebugContext(ctx, "price batch accepted", slog.Int("count", len(prices)))
	return resp.Result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	url := c.baseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set(headerClientID, c.clientID)
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.HTTPError{Op: http.MethodPost, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.HTTPError{Op: http.MethodPost, URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.DebugContext(ctx, "marketplace call",
		slog.String("path", path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration_ms", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.HTTPError{
			Op:         http.MethodPost,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), maxErrorBody),
		}
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return &domain.ParseError{Source: "marketplace response " + path, Err: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
