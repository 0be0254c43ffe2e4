package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/seller-sync/internal/core/domain"
)

func TestStockUpdate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		update    domain.StockUpdate
		wantError bool
		errorMsg  string
	}{
		{name: "valid_stock", update: domain.StockUpdate{OfferID: "A", Stock: 5}},
		{name: "zero_stock", update: domain.StockUpdate{OfferID: "A"}},
		{name: "missing_offer_id", update: domain.StockUpdate{Stock: 1}, wantError: true, errorMsg: "offer_id is required"},
		{name: "negative_stock", update: domain.StockUpdate{OfferID: "A", Stock: -1}, wantError: true, errorMsg: "stock cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPriceUpdate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		update    domain.PriceUpdate
		wantError bool
		errorMsg  string
	}{
		{name: "valid_price", update: domain.NewPriceUpdate("A", "5990")},
		{name: "missing_offer_id", update: domain.NewPriceUpdate("", "10"), wantError: true, errorMsg: "offer_id is required"},
		{name: "empty_price", update: domain.NewPriceUpdate("A", ""), wantError: true, errorMsg: "not numeric"},
		{name: "negative_price", update: domain.NewPriceUpdate("A", "-5"), wantError: true, errorMsg: "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPriceUpdate_JSONShape(t *testing.T) {
	data, err := json.Marshal(domain.NewPriceUpdate("12345", "5990"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"auto_action_enabled": "UNKNOWN",
		"currency_code": "RUB",
		"offer_id": "12345",
		"old_price": "0",
		"price": "5990"
	}`, string(data))
}

func TestErrors_Matching(t *testing.T) {
	transport := errors.New("connection reset")
	httpErr := &domain.HTTPError{Op: "POST", URL: "https://example.test/v2/product/list", Err: transport}

	assert.ErrorIs(t, httpErr, domain.ErrHTTP)
	assert.ErrorIs(t, httpErr, transport)
	assert.Contains(t, httpErr.Error(), "connection reset")

	statusErr := &domain.HTTPError{Op: "GET", URL: "https://vendor.test/a.zip", StatusCode: 404, Body: "missing"}
	assert.Contains(t, statusErr.Error(), "unexpected status 404")

	parseErr := &domain.ParseError{Source: "inventory archive", Err: errors.New("zip: not a valid zip file")}
	assert.ErrorIs(t, parseErr, domain.ErrParse)
	assert.NotErrorIs(t, parseErr, domain.ErrHTTP)
}
