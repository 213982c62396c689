package scanner

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/alejandrodnm/skinbot/internal/ports"
	"github.com/google/uuid"
)

// Config contiene la configuración del scanner.
type Config struct {
	ScanInterval time.Duration
	Games        []domain.Game
	Limit        int
	MinPrice     domain.Cents
	MaxPrice     domain.Cents
	Filter       FilterConfig

	// PriceDiffThreshold, FeeRate y MaxResults parametrizan el Analyzer.
	PriceDiffThreshold float64
	FeeRate            float64
	MaxResults         int

	// Workers acota el fan-out concurrente contra los colaboradores de
	// red. <= 0 usa runtime.NumCPU() × 2.
	Workers int

	DryRun bool
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		ScanInterval: 60 * time.Second,
		Games:        domain.AllGames(),
		Limit:        20,
		MinPrice:     domain.DollarsToCents(1),
		MaxPrice:     domain.DollarsToCents(500),
		Filter:       DefaultFilterConfig(),
	}
}

// Scanner es el orquestador del escaneo mejorado: fetch por descuento,
// filtros básicos, filtro de liquidez, comparación externa y ranking.
//
// sales y comparator son opcionales (nil = etapa apagada). storage y
// notifier también pueden ser nil en modos de un solo ciclo.
type Scanner struct {
	cfg        Config
	market     ports.MarketProvider
	sales      ports.SalesProvider
	comparator ports.PriceComparator
	storage    ports.Storage
	notifier   ports.Notifier
	analyzer   *Analyzer
	workers    int
}

// New crea un Scanner con todas las dependencias inyectadas.
func New(
	cfg Config,
	market ports.MarketProvider,
	sales ports.SalesProvider,
	comparator ports.PriceComparator,
	storage ports.Storage,
	notifier ports.Notifier,
) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Scanner{
		cfg:        cfg,
		market:     market,
		sales:      sales,
		comparator: comparator,
		storage:    storage,
		notifier:   notifier,
		analyzer:   NewAnalyzer(cfg.PriceDiffThreshold, cfg.FeeRate, cfg.MaxResults),
		workers:    workers,
	}
}

// Analyzer expone el analizador de batch configurado, para que el caller
// corra los algoritmos de anomalías/tendencias/mispricing sobre sus
// propios batches.
func (s *Scanner) Analyzer() *Analyzer {
	return s.analyzer
}

// Run ejecuta el loop de escaneo hasta que el contexto se cancele.
// Si cfg.DryRun está activo, solo ejecuta un ciclo.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"games", len(s.cfg.Games),
		"dry_run", s.cfg.DryRun,
	)

	s.runCycle(ctx)
	if s.cfg.DryRun {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle escanea todos los juegos configurados. El fallo de un juego no
// afecta a los demás.
func (s *Scanner) runCycle(ctx context.Context) {
	start := time.Now()
	cycleID := uuid.NewString()

	for _, game := range s.cfg.Games {
		deals, issues, fetched, filtered := s.scan(ctx, game, s.cfg.MinPrice, s.cfg.MaxPrice, s.cfg.Limit)

		for _, issue := range issues {
			slog.Warn("scan issue", "game", game, "stage", issue.Stage, "item", issue.ItemID, "err", issue.Err)
		}

		if s.notifier != nil {
			if err := s.notifier.NotifyDeals(ctx, game, deals); err != nil {
				slog.Warn("notifier error", "game", game, "err", err)
			}
		}

		if s.storage != nil {
			cycle := domain.ScanCycle{
				ID:        cycleID,
				Game:      game,
				ScannedAt: time.Now().UTC(),
				Fetched:   fetched,
				Filtered:  filtered,
				Ranked:    len(deals),
				BestScore: bestScore(deals),
				Issues:    len(issues),
			}
			if err := s.storage.SaveCycle(ctx, cycle); err != nil {
				slog.Warn("storage error", "game", game, "err", err)
			}
		}

		if ctx.Err() != nil {
			return
		}
	}

	slog.Info("scan cycle complete",
		"cycle_id", cycleID,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}

// FindOpportunities ejecuta el pipeline completo para un juego y devuelve
// las oportunidades rankeadas junto con los fallos encontrados. Nunca
// devuelve error: un fallo de batch queda registrado como issue y el
// resultado conserva lo que se alcanzó a calcular.
func (s *Scanner) FindOpportunities(ctx context.Context, game domain.Game, minPrice, maxPrice domain.Cents, limit int) ([]domain.Deal, []domain.ScanIssue) {
	deals, issues, _, _ := s.scan(ctx, game, minPrice, maxPrice, limit)
	return deals, issues
}

// scan es el pipeline de FindOpportunities; además devuelve los conteos de
// fetch y de supervivientes de filtros para el resumen del ciclo.
func (s *Scanner) scan(ctx context.Context, game domain.Game, minPrice, maxPrice domain.Cents, limit int) ([]domain.Deal, []domain.ScanIssue, int, int) {
	if limit <= 0 {
		limit = DefaultConfig().Limit
	}

	// Pedimos 2× para absorber la pérdida de los filtros.
	listings, err := s.market.FetchDiscounted(ctx, game, minPrice, maxPrice, limit*2)
	if err != nil {
		return nil, []domain.ScanIssue{{Stage: "fetch", Err: err}}, 0, 0
	}

	deals := applyBasicFilters(listings, s.cfg.Filter)
	slog.Debug("basic filters applied",
		"game", game,
		"fetched", len(listings),
		"surviving", len(deals),
	)
	filtered := len(deals)

	var issues []domain.ScanIssue
	if s.sales != nil {
		var liqIssues []domain.ScanIssue
		deals, liqIssues = s.applyLiquidity(ctx, game, deals)
		issues = append(issues, liqIssues...)
	}

	if s.comparator != nil {
		var cmpIssues []domain.ScanIssue
		deals = s.applyComparison(ctx, deals, &cmpIssues)
		issues = append(issues, cmpIssues...)
	}

	ranked := rankDeals(deals)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, issues, len(listings), filtered
}

// bestScore devuelve el score más alto de la lista, 0 si está vacía.
func bestScore(deals []domain.Deal) float64 {
	if len(deals) == 0 {
		return 0
	}
	return deals[0].Score
}
