package main

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/skinbot/config"
	"github.com/alejandrodnm/skinbot/internal/adapters/notify"
	"github.com/alejandrodnm/skinbot/internal/hold"
	"github.com/alejandrodnm/skinbot/internal/ports"
	"github.com/alejandrodnm/skinbot/internal/rarity"
	"github.com/alejandrodnm/skinbot/internal/scanner"
)

// runTreasureHunt escanea una vez cada juego y pasa los deals rankeados
// por el engine de hold: los retenidos quedan persistidos como treasures
// y notificados.
func runTreasureHunt(ctx context.Context, cfg *config.Config, s *scanner.Scanner, store ports.Storage, notifier *notify.Console) {
	slog.Info("=== TREASURE HUNT: scan + hold decisions over ranked deals ===")

	engine := hold.New(hold.Config{
		MinHoldMultiplier: cfg.Hold.MinHoldMultiplier,
		CS2FloatMin:       cfg.Hold.CS2FloatMin,
		CS2FloatMax:       cfg.Hold.CS2FloatMax,
	}, rarity.NewEvaluator(), store, notifier)

	scanCfg := buildScanConfig(cfg)
	for _, game := range scanCfg.Games {
		deals, issues := s.FindOpportunities(ctx, game, scanCfg.MinPrice, scanCfg.MaxPrice, scanCfg.Limit)
		for _, issue := range issues {
			slog.Warn("scan issue", "game", game, "stage", issue.Stage, "item", issue.ItemID, "err", issue.Err)
		}

		if err := notifier.NotifyDeals(ctx, game, deals); err != nil {
			slog.Warn("notifier error", "game", game, "err", err)
		}

		for _, deal := range deals {
			decision, persistErr := engine.Decide(ctx, deal.Listing)
			if !decision.ShouldHold {
				continue
			}
			// Esperar la persistencia antes de seguir: el hunt es un
			// modo de un solo ciclo y debe dejar los treasures escritos.
			if persistErr != nil {
				<-persistErr
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	notifier.PrintHoldStats(engine.Stats())
	slog.Info("treasure hunt complete",
		"treasures", len(engine.Treasures()),
	)
}
