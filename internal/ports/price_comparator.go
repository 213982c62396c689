package ports

import (
	"context"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// PriceComparator consulta marketplaces externos por precios comparables.
type PriceComparator interface {
	// ComparePrice busca el mejor precio de reventa para el listing entre
	// los platforms configurados y calcula la ganancia neta de fees.
	ComparePrice(ctx context.Context, listing domain.Listing) (domain.PriceComparison, error)
}
