package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarket struct {
	listings []domain.Listing
	err      error
	gotLimit int
}

func (f *fakeMarket) FetchDiscounted(_ context.Context, _ domain.Game, _, _ domain.Cents, limit int) ([]domain.Listing, error) {
	f.gotLimit = limit
	return f.listings, f.err
}

type fakeSales struct {
	histories map[string][]domain.SalesRecord
	errTitles map[string]error
}

func (f *fakeSales) FetchSalesHistory(_ context.Context, _ domain.Game, title string) ([]domain.SalesRecord, error) {
	if err, ok := f.errTitles[title]; ok {
		return nil, err
	}
	return f.histories[title], nil
}

type fakeComparator struct {
	results map[string]domain.PriceComparison
	errIDs  map[string]error
}

func (f *fakeComparator) ComparePrice(_ context.Context, l domain.Listing) (domain.PriceComparison, error) {
	if err, ok := f.errIDs[l.ID]; ok {
		return domain.PriceComparison{}, err
	}
	return f.results[l.ID], nil
}

func discounted(id, title string, price, suggested domain.Cents) domain.Listing {
	return domain.Listing{
		ID:             id,
		Title:          title,
		Game:           domain.GameCS2,
		Price:          price,
		SuggestedPrice: suggested,
	}
}

func repeatedSales(title string, price domain.Cents, n int) []domain.SalesRecord {
	sales := make([]domain.SalesRecord, n)
	for i := range sales {
		sales[i] = sale(title, price, 0)
	}
	return sales
}

func newTestScanner(market *fakeMarket, sales *fakeSales, cmp *fakeComparator) *Scanner {
	cfg := DefaultConfig()
	cfg.Workers = 4
	// Interfaces nil con tipo concreto no son nil: asignamos tras construir.
	s := New(cfg, market, nil, nil, nil, nil)
	if sales != nil {
		s.sales = sales
	}
	if cmp != nil {
		s.comparator = cmp
	}
	return s
}

func TestFindOpportunities_FetchesDoubleLimit(t *testing.T) {
	market := &fakeMarket{}
	s := newTestScanner(market, nil, nil)

	s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 15)
	assert.Equal(t, 30, market.gotLimit)
}

func TestFindOpportunities_FetchErrorReturnsIssue(t *testing.T) {
	market := &fakeMarket{err: errors.New("api down")}
	s := newTestScanner(market, nil, nil)

	deals, issues := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	assert.Empty(t, deals)
	require.Len(t, issues, 1)
	assert.Equal(t, "fetch", issues[0].Stage)
}

func TestFindOpportunities_BasicFilters(t *testing.T) {
	market := &fakeMarket{listings: []domain.Listing{
		discounted("ok", "AK-47 | Redline (Field-Tested)", 800, 1000), // 20%
		discounted("low", "AWP | Asiimov (Field-Tested)", 950, 1000),  // 5% < 15
		discounted("souv", "Souvenir AWP | Desert Hydra", 800, 1000),  // blacklist
		discounted("nosug", "M4A4 | Asiimov (Field-Tested)", 800, 0),  // sin sugerido
		{ID: "lock", Title: "USP-S | Kill Confirmed (Minimal Wear)", Game: domain.GameCS2, Price: 800, SuggestedPrice: 1000, TradeLockHours: 200},
	}}
	s := newTestScanner(market, nil, nil)

	deals, issues := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	assert.Empty(t, issues)
	require.Len(t, deals, 1)
	assert.Equal(t, "ok", deals[0].Listing.ID)
	assert.InDelta(t, 20.0, deals[0].DiscountPct, 1e-9)
}

func TestFindOpportunities_LiquidityRejectsDepreciation(t *testing.T) {
	const falling = "Falling Knife (Field-Tested)"
	const healthy = "AK-47 | Redline (Field-Tested)"

	market := &fakeMarket{listings: []domain.Listing{
		discounted("f", falling, 900, 1100),  // $9.00, promedio $10.50 → 9.00 < 9.45
		discounted("h", healthy, 1000, 1200), // $10.00, promedio $10.50 → ok
	}}
	sales := &fakeSales{histories: map[string][]domain.SalesRecord{
		falling: repeatedSales(falling, 1050, 6),
		healthy: repeatedSales(healthy, 1050, 12),
	}}
	s := newTestScanner(market, sales, nil)

	deals, issues := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	assert.Empty(t, issues)
	require.Len(t, deals, 1)
	assert.Equal(t, "h", deals[0].Listing.ID)
	assert.Equal(t, 12, deals[0].SalesVolume)
	assert.InDelta(t, 10.50, deals[0].AvgRecentPrice, 1e-9)
}

func TestFindOpportunities_LiquidityRequiresHistory(t *testing.T) {
	const thin = "Obscure Skin (Field-Tested)"
	market := &fakeMarket{listings: []domain.Listing{
		discounted("t", thin, 800, 1000),
	}}
	sales := &fakeSales{histories: map[string][]domain.SalesRecord{
		thin: repeatedSales(thin, 900, 3), // < 5 ventas
	}}
	s := newTestScanner(market, sales, nil)

	deals, _ := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	assert.Empty(t, deals)
}

func TestFindOpportunities_SalesFailureExcludesOnlyThatItem(t *testing.T) {
	const broken = "Broken Item (Field-Tested)"
	const healthy = "AK-47 | Redline (Field-Tested)"

	market := &fakeMarket{listings: []domain.Listing{
		discounted("b", broken, 800, 1000),
		discounted("h", healthy, 1000, 1200),
	}}
	sales := &fakeSales{
		histories: map[string][]domain.SalesRecord{
			healthy: repeatedSales(healthy, 1050, 8),
		},
		errTitles: map[string]error{broken: errors.New("timeout")},
	}
	s := newTestScanner(market, sales, nil)

	deals, issues := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	require.Len(t, deals, 1)
	assert.Equal(t, "h", deals[0].Listing.ID)
	require.Len(t, issues, 1)
	assert.Equal(t, "liquidity", issues[0].Stage)
	assert.Equal(t, "b", issues[0].ItemID)
}

func TestFindOpportunities_ComparatorFailureExcludesOnlyThatItem(t *testing.T) {
	market := &fakeMarket{listings: []domain.Listing{
		discounted("a", "AK-47 | Redline (Field-Tested)", 800, 1000),
		discounted("b", "AWP | Wildfire (Minimal Wear)", 4000, 5000),
	}}
	cmp := &fakeComparator{
		results: map[string]domain.PriceComparison{"b": {}},
		errIDs:  map[string]error{"a": errors.New("api down")},
	}
	s := newTestScanner(market, nil, cmp)

	deals, issues := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	require.Len(t, deals, 1)
	assert.Equal(t, "b", deals[0].Listing.ID)
	require.Len(t, issues, 1)
	assert.Equal(t, "compare", issues[0].Stage)
	assert.Equal(t, "a", issues[0].ItemID)
}

func TestFindOpportunities_RankingPrefersExternalOpportunity(t *testing.T) {
	market := &fakeMarket{listings: []domain.Listing{
		discounted("plain", "AK-47 | Redline (Field-Tested)", 800, 1000), // 20%
		discounted("ext", "AWP | Wildfire (Minimal Wear)", 4000, 5000),   // 20%
	}}
	cmp := &fakeComparator{results: map[string]domain.PriceComparison{
		"ext": {
			HasOpportunity:  true,
			BestPlatform:    "skinport",
			BestPriceUSD:    55.0,
			ProfitMarginPct: 12.0,
			NetProfitUSD:    4.8,
		},
		"plain": {},
	}}
	s := newTestScanner(market, nil, cmp)

	deals, _ := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 10)
	require.Len(t, deals, 2)
	assert.Equal(t, "ext", deals[0].Listing.ID)
	// 20 (descuento) + 50 (bonus externo) + 2×12 (margen) + 5 (rango $30–100)
	assert.InDelta(t, 99.0, deals[0].Score, 1e-9)
	// 20 (descuento) + 10 (rango $5–30)
	assert.InDelta(t, 30.0, deals[1].Score, 1e-9)
}

func TestFindOpportunities_TruncatesToLimit(t *testing.T) {
	var listings []domain.Listing
	for _, id := range []string{"a", "b", "c", "d"} {
		listings = append(listings, discounted(id, "Skin "+id+" (Field-Tested)", 800, 1000))
	}
	market := &fakeMarket{listings: listings}
	s := newTestScanner(market, nil, nil)

	deals, _ := s.FindOpportunities(context.Background(), domain.GameCS2, 100, 50000, 2)
	assert.Len(t, deals, 2)
}
