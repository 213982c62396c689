package ports

import (
	"context"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// SalesProvider obtiene el historial de ventas de un item.
type SalesProvider interface {
	// FetchSalesHistory devuelve las ventas conocidas del item, de la más
	// reciente a la más antigua.
	FetchSalesHistory(ctx context.Context, game domain.Game, title string) ([]domain.SalesRecord, error)
}
