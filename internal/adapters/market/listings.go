package market

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

const listingsPath = "/v1/listings"

// FetchDiscounted obtiene hasta limit listings del juego dado dentro del
// rango de precios, ordenados por descuento descendente por la API.
func (c *Client) FetchDiscounted(ctx context.Context, game domain.Game, minPrice, maxPrice domain.Cents, limit int) ([]domain.Listing, error) {
	appID, ok := appIDs[game]
	if !ok {
		return nil, fmt.Errorf("market.FetchDiscounted: unknown game %q", game)
	}

	q := url.Values{}
	q.Set("app_id", fmt.Sprint(appID))
	q.Set("min_price", fmt.Sprint(int64(minPrice)))
	q.Set("max_price", fmt.Sprint(int64(maxPrice)))
	q.Set("limit", fmt.Sprint(limit))
	q.Set("sort", "discount_desc")

	var resp listingsResponse
	if err := c.get(ctx, c.listingsLimiter, c.base+listingsPath+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("market.FetchDiscounted: %w", err)
	}

	listings := mapListings(resp.Listings, game)
	slog.Debug("listings fetched",
		"game", game,
		"requested", limit,
		"received", len(listings),
	)
	return listings, nil
}
