package market

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

const salesPath = "/v1/sales"

// FetchSalesHistory devuelve las ventas conocidas del item, de la más
// reciente a la más antigua.
func (c *Client) FetchSalesHistory(ctx context.Context, game domain.Game, title string) ([]domain.SalesRecord, error) {
	appID, ok := appIDs[game]
	if !ok {
		return nil, fmt.Errorf("market.FetchSalesHistory: unknown game %q", game)
	}

	q := url.Values{}
	q.Set("app_id", fmt.Sprint(appID))
	q.Set("market_hash_name", title)

	var resp salesResponse
	if err := c.get(ctx, c.salesLimiter, c.base+salesPath+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("market.FetchSalesHistory: %w", err)
	}

	sales := mapSales(title, resp.Sales)
	slog.Debug("sales history fetched", "title", title, "sales", len(sales))
	return sales, nil
}
