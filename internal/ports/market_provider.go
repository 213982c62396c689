package ports

import (
	"context"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// MarketProvider obtiene listings del marketplace origen.
type MarketProvider interface {
	// FetchDiscounted devuelve hasta limit listings del juego dado dentro
	// del rango de precios, ordenados por descuento descendente.
	FetchDiscounted(ctx context.Context, game domain.Game, minPrice, maxPrice domain.Cents, limit int) ([]domain.Listing, error)
}
