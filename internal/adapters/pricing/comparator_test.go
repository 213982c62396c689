package pricing_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alejandrodnm/skinbot/internal/adapters/pricing"
	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteServer(t *testing.T, price int64, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		assert.Equal(t, "/v1/price", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"price":%d}`, price)
	}))
}

func testListing() domain.Listing {
	return domain.Listing{
		ID:    "l1",
		Title: "AK-47 | Redline (Field-Tested)",
		Game:  domain.GameCS2,
		Price: 1000, // $10.00
		Extra: domain.CS2Extra{},
	}
}

func TestComparePrice_PicksBestNetProfit(t *testing.T) {
	// A cotiza más alto pero su fee se come la diferencia.
	srvA := quoteServer(t, 1200, nil) // $12.00, fee 10% → net 10.80
	defer srvA.Close()
	srvB := quoteServer(t, 1150, nil) // $11.50, fee 2% → net 11.27
	defer srvB.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "alta", BaseURL: srvA.URL, SellFee: 0.10},
		{Name: "baja", BaseURL: srvB.URL, SellFee: 0.02},
	}, pricing.NewCache(time.Minute))

	result, err := cmp.ComparePrice(context.Background(), testListing())
	require.NoError(t, err)

	// buyCost = 10.00 × 1.02 = 10.20
	assert.Equal(t, "baja", result.BestPlatform)
	assert.True(t, result.HasOpportunity)
	assert.InDelta(t, 11.50, result.BestPriceUSD, 1e-9)
	assert.InDelta(t, 1.07, result.NetProfitUSD, 1e-9)
	assert.InDelta(t, 1.07/10.20*100, result.ProfitMarginPct, 1e-9)
}

func TestComparePrice_NoOpportunity(t *testing.T) {
	srv := quoteServer(t, 900, nil) // net 8.82 < buyCost 10.20
	defer srv.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "p", BaseURL: srv.URL, SellFee: 0.02},
	}, pricing.NewCache(time.Minute))

	result, err := cmp.ComparePrice(context.Background(), testListing())
	require.NoError(t, err)
	assert.False(t, result.HasOpportunity)
	assert.Negative(t, result.NetProfitUSD)
}

func TestComparePrice_PartialPlatformFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	up := quoteServer(t, 1150, nil)
	defer up.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "caido", BaseURL: down.URL, SellFee: 0.05},
		{Name: "vivo", BaseURL: up.URL, SellFee: 0.02},
	}, pricing.NewCache(time.Minute))

	result, err := cmp.ComparePrice(context.Background(), testListing())
	require.NoError(t, err)
	assert.Equal(t, "vivo", result.BestPlatform)
}

func TestComparePrice_AllPlatformsFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "p", BaseURL: down.URL, SellFee: 0.05},
	}, pricing.NewCache(time.Minute))

	_, err := cmp.ComparePrice(context.Background(), testListing())
	assert.Error(t, err)
}

func TestComparePrice_UsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := quoteServer(t, 1150, &calls)
	defer srv.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "p", BaseURL: srv.URL, SellFee: 0.02},
	}, pricing.NewCache(time.Minute))

	_, err := cmp.ComparePrice(context.Background(), testListing())
	require.NoError(t, err)
	_, err = cmp.ComparePrice(context.Background(), testListing())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "la segunda consulta debe salir de la cache")
}

func TestComparePrice_ZeroQuoteIsError(t *testing.T) {
	srv := quoteServer(t, 0, nil)
	defer srv.Close()

	cmp := pricing.NewComparator([]pricing.Platform{
		{Name: "p", BaseURL: srv.URL, SellFee: 0.02},
	}, pricing.NewCache(time.Minute))

	_, err := cmp.ComparePrice(context.Background(), testListing())
	assert.Error(t, err)
}
