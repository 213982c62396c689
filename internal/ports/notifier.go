package ports

import (
	"context"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// Notifier presenta los resultados al usuario.
type Notifier interface {
	// NotifyDeals muestra las oportunidades rankeadas de un ciclo.
	NotifyDeals(ctx context.Context, game domain.Game, deals []domain.Deal) error

	// NotifyTreasure avisa de un item retenido como treasure.
	NotifyTreasure(ctx context.Context, d domain.HoldDecision) error
}
