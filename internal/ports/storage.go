package ports

import (
	"context"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// Storage persiste decisiones de hold ("treasures") y resúmenes de ciclo.
type Storage interface {
	// SaveTreasure guarda una decisión de hold positiva. Upsert por item.
	SaveTreasure(ctx context.Context, d domain.HoldDecision) error

	// IsHeld devuelve true si el item ya tiene un treasure registrado.
	IsHeld(ctx context.Context, itemID string) (bool, error)

	// GetTreasures devuelve los treasures registrados, el más reciente primero.
	GetTreasures(ctx context.Context) ([]domain.HoldDecision, error)

	// SaveCycle guarda el resumen de un ciclo de scan.
	SaveCycle(ctx context.Context, c domain.ScanCycle) error
}
