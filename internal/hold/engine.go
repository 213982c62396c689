package hold

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/alejandrodnm/skinbot/internal/ports"
	"github.com/alejandrodnm/skinbot/internal/rarity"
	"github.com/google/uuid"
)

// Config contiene los umbrales del engine de hold.
type Config struct {
	// MinHoldMultiplier retiene items cuyo multiplicador del evaluador
	// alcanza este valor aunque ningún override dispare.
	MinHoldMultiplier float64
	// CS2FloatMin y CS2FloatMax son los límites de float fuera de los
	// cuales un item de CS2 se retiene siempre.
	CS2FloatMin float64
	CS2FloatMax float64
}

// DefaultConfig devuelve los umbrales por defecto.
func DefaultConfig() Config {
	return Config{
		MinHoldMultiplier: 1.20,
		CS2FloatMin:       0.001,
		CS2FloatMax:       0.999,
	}
}

// Engine decide si un item comprado se retiene del repricing automático.
//
// Una instancia por scan concurrente: la lista de treasures y los
// contadores se mutan sin lock a propósito — compartir un Engine entre
// goroutines no está soportado.
type Engine struct {
	cfg       Config
	evaluator *rarity.Evaluator
	storage   ports.Storage
	notifier  ports.Notifier

	treasures []domain.HoldDecision
	processed int
	byReason  map[domain.HoldReason]int
}

// New crea un Engine. evaluator, storage y notifier son opcionales (nil =
// apagado): los overrides funcionan igual sin evaluador.
func New(cfg Config, evaluator *rarity.Evaluator, storage ports.Storage, notifier ports.Notifier) *Engine {
	if cfg.MinHoldMultiplier <= 1.0 {
		cfg.MinHoldMultiplier = DefaultConfig().MinHoldMultiplier
	}
	if cfg.CS2FloatMin <= 0 {
		cfg.CS2FloatMin = DefaultConfig().CS2FloatMin
	}
	if cfg.CS2FloatMax <= cfg.CS2FloatMin {
		cfg.CS2FloatMax = DefaultConfig().CS2FloatMax
	}
	return &Engine{
		cfg:       cfg,
		evaluator: evaluator,
		storage:   storage,
		notifier:  notifier,
		byReason:  make(map[domain.HoldReason]int),
	}
}

// Decide evalúa un item comprado y devuelve el veredicto de hold.
//
// El canal devuelto observa la persistencia del treasure: recibe nil o el
// error de escritura y se cierra. Es nil si no hubo nada que persistir.
// Un fallo de persistencia no invalida la decisión — la política es no
// bloquear nunca el scan — pero queda observable para el caller.
func (e *Engine) Decide(ctx context.Context, l domain.Listing) (domain.HoldDecision, <-chan error) {
	e.processed++

	d := domain.HoldDecision{
		ID:                   uuid.NewString(),
		ItemID:               l.ID,
		Title:                l.Title,
		Game:                 l.Game,
		RecommendedPlatforms: platformsFor(l.Game),
		DecidedAt:            time.Now().UTC(),
	}

	if match, ok := e.checkOverrides(l); ok {
		d.ShouldHold = true
		d.Reason = match.reason
		d.ReasonDetails = match.details
		d.EstimatedMultiplier = match.multiplier
	} else if e.evaluator != nil {
		assessment := e.evaluator.Evaluate(l)
		d.EstimatedMultiplier = assessment.ValueMultiplier
		switch {
		case assessment.RequiresManualReview:
			d.ShouldHold = true
			d.Reason = domain.HoldJackpot
			d.ReasonDetails = joinReasons(assessment.DetectedAttributes)
		case assessment.ValueMultiplier >= e.cfg.MinHoldMultiplier:
			d.ShouldHold = true
			d.Reason = domain.HoldManualReview
			d.ReasonDetails = joinReasons(assessment.DetectedAttributes)
		}
	}

	if !d.ShouldHold {
		return d, nil
	}

	e.byReason[d.Reason]++
	e.treasures = append(e.treasures, d)

	slog.Info("holding item from auto-resale",
		"item_id", d.ItemID,
		"game", d.Game,
		"reason", d.Reason,
		"multiplier", d.EstimatedMultiplier,
	)

	if e.notifier != nil {
		if err := e.notifier.NotifyTreasure(ctx, d); err != nil {
			slog.Warn("treasure notification failed", "item_id", d.ItemID, "err", err)
		}
	}

	return d, e.saveTreasure(ctx, d)
}

// saveTreasure persiste el treasure en background y expone el resultado
// por canal. La decisión ya es válida pase lo que pase con la escritura.
func (e *Engine) saveTreasure(ctx context.Context, d domain.HoldDecision) <-chan error {
	if e.storage == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		defer close(done)

		held, err := e.storage.IsHeld(ctx, d.ItemID)
		if err == nil && held {
			slog.Debug("treasure already recorded", "item_id", d.ItemID)
			done <- nil
			return
		}

		if err := e.storage.SaveTreasure(ctx, d); err != nil {
			slog.Warn("treasure persistence failed", "item_id", d.ItemID, "err", err)
			done <- fmt.Errorf("hold.saveTreasure: %w", err)
			return
		}
		done <- nil
	}()
	return done
}

// Treasures devuelve una copia de las decisiones de hold acumuladas.
func (e *Engine) Treasures() []domain.HoldDecision {
	out := make([]domain.HoldDecision, len(e.treasures))
	copy(out, e.treasures)
	return out
}

// Stats devuelve las estadísticas agregadas del engine.
func (e *Engine) Stats() domain.HoldStats {
	stats := domain.HoldStats{
		TotalProcessed: e.processed,
		TotalHeld:      len(e.treasures),
		ByReason:       make(map[domain.HoldReason]int, len(e.byReason)),
	}
	for reason, n := range e.byReason {
		stats.ByReason[reason] = n
	}
	if e.processed > 0 {
		stats.HoldRatePct = float64(stats.TotalHeld) / float64(e.processed) * 100
	}
	return stats
}

// joinReasons compacta las razones del evaluador en un detalle legible.
func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return "no specific trait detected"
	}
	out := reasons[0]
	for _, r := range reasons[1:] {
		out += "; " + r
	}
	return out
}
