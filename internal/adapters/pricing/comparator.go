package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// buyPremium es el sobrecosto asumido al comprar en el marketplace origen.
const buyPremium = 0.02

// quotesRatePerSec limita las consultas externas agregadas entre platforms.
const quotesRatePerSec = 5

// Platform describe un marketplace externo consultable.
type Platform struct {
	Name    string
	BaseURL string
	SellFee float64 // fee de venta como fracción (0.12 = 12%)
}

// DefaultPlatforms devuelve los marketplaces externos soportados con sus
// fees de venta asumidos.
func DefaultPlatforms() []Platform {
	return []Platform{
		{Name: "skinport", BaseURL: "https://api.skinport.com", SellFee: 0.12},
		{Name: "dmarket", BaseURL: "https://api.dmarket.com", SellFee: 0.05},
		{Name: "csfloat", BaseURL: "https://csfloat.com/api", SellFee: 0.02},
	}
}

// Comparator consulta marketplaces externos por precios comparables y
// calcula la ganancia neta de revender ahí. Las cotizaciones pasan por la
// Cache inyectada.
type Comparator struct {
	http      *http.Client
	platforms []Platform
	cache     *Cache
	limiter   *rate.Limiter
}

// NewComparator crea un Comparator sobre los platforms dados. La cache es
// obligatoria: el caller decide su TTL y su alcance.
func NewComparator(platforms []Platform, cache *Cache) *Comparator {
	return &Comparator{
		http:      &http.Client{Timeout: 10 * time.Second},
		platforms: platforms,
		cache:     cache,
		limiter:   rate.NewLimiter(quotesRatePerSec, 5),
	}
}

// quote es el resultado de consultar un platform.
type quote struct {
	platform Platform
	price    domain.Cents
	err      error
}

// ComparePrice busca el mejor precio de reventa para el listing entre los
// platforms configurados. Falla solo si ningún platform respondió.
func (c *Comparator) ComparePrice(ctx context.Context, listing domain.Listing) (domain.PriceComparison, error) {
	if len(c.platforms) == 0 {
		return domain.PriceComparison{}, fmt.Errorf("pricing.ComparePrice: no platforms configured")
	}

	quotes := make(chan quote, len(c.platforms))
	var wg sync.WaitGroup
	for _, p := range c.platforms {
		wg.Add(1)
		go func(p Platform) {
			defer wg.Done()
			price, err := c.fetchQuote(ctx, p, listing)
			quotes <- quote{platform: p, price: price, err: err}
		}(p)
	}
	wg.Wait()
	close(quotes)

	buyCost := listing.Price.Dollars() * (1 + buyPremium)

	var (
		best    domain.PriceComparison
		found   bool
		lastErr error
	)
	for q := range quotes {
		if q.err != nil {
			slog.Debug("platform quote failed",
				"platform", q.platform.Name,
				"title", listing.Title,
				"err", q.err,
			)
			lastErr = q.err
			continue
		}

		netSell := q.price.Dollars() * (1 - q.platform.SellFee)
		netProfit := netSell - buyCost
		cmp := domain.PriceComparison{
			HasOpportunity:  netProfit > 0,
			BestPlatform:    q.platform.Name,
			BestPriceUSD:    q.price.Dollars(),
			ProfitMarginPct: netProfit / buyCost * 100,
			NetProfitUSD:    netProfit,
		}
		if !found || cmp.NetProfitUSD > best.NetProfitUSD {
			best = cmp
			found = true
		}
	}

	if !found {
		return domain.PriceComparison{}, fmt.Errorf("pricing.ComparePrice: all platforms failed for %q: %w", listing.Title, lastErr)
	}
	return best, nil
}

// fetchQuote consulta el precio comparable en un platform, con cache.
func (c *Comparator) fetchQuote(ctx context.Context, p Platform, listing domain.Listing) (domain.Cents, error) {
	if price, ok := c.cache.Get(p.Name, listing.Title); ok {
		return price, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("market_hash_name", listing.Title)
	q.Set("app_id", fmt.Sprint(steamAppID(listing.Game)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v1/price?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Price int64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode quote: %w", err)
	}
	if out.Price <= 0 {
		return 0, fmt.Errorf("no comparable listing")
	}

	price := domain.Cents(out.Price)
	c.cache.Put(p.Name, listing.Title, price)
	return price, nil
}

// steamAppID mapea el juego al app id que esperan los platforms externos.
func steamAppID(g domain.Game) int {
	switch g {
	case domain.GameCS2:
		return 730
	case domain.GameDota2:
		return 570
	case domain.GameTF2:
		return 440
	case domain.GameRust:
		return 252490
	}
	return 0
}
