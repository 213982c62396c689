package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// liquidity.go — filtro de liquidez vía historial de ventas.
//
// La regla más importante del engine: un precio actual por debajo del 90%
// del promedio de ventas recientes NO es un descuento, es depreciación.
// Comprar "barato" un item que está cayendo no es arbitraje.

const (
	liqMinSales          = 5   // ventas históricas mínimas para confiar
	liqRecentSamples     = 5   // cuántas ventas recientes promediar
	liqDepreciationRatio = 0.9 // precio < 0.9 × promedio → rechazar
)

// liquidityOutcome es el resultado tageado de un check por item: o un deal
// superviviente, o un issue, o nada (rechazo limpio).
type liquidityOutcome struct {
	deal  domain.Deal
	keep  bool
	issue *domain.ScanIssue
}

// applyLiquidity comprueba la liquidez de cada deal con fan-out acotado.
// Un fallo o timeout por item excluye solo ese item; el batch continúa.
func (s *Scanner) applyLiquidity(ctx context.Context, game domain.Game, deals []domain.Deal) ([]domain.Deal, []domain.ScanIssue) {
	if len(deals) == 0 {
		return deals, nil
	}

	workCh := make(chan domain.Deal, len(deals))
	resultCh := make(chan liquidityOutcome, len(deals))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range workCh {
				resultCh <- s.checkLiquidity(ctx, game, d)
			}
		}()
	}

	for _, d := range deals {
		workCh <- d
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	survivors := make([]domain.Deal, 0, len(deals))
	var issues []domain.ScanIssue
	for out := range resultCh {
		if out.issue != nil {
			issues = append(issues, *out.issue)
			continue
		}
		if out.keep {
			survivors = append(survivors, out.deal)
		}
	}

	slog.Debug("liquidity filter applied",
		"game", game,
		"in", len(deals),
		"surviving", len(survivors),
		"issues", len(issues),
	)
	return survivors, issues
}

// checkLiquidity trae el historial de ventas de un deal y decide si el
// descuento es confiable.
func (s *Scanner) checkLiquidity(ctx context.Context, game domain.Game, d domain.Deal) liquidityOutcome {
	sales, err := s.sales.FetchSalesHistory(ctx, game, d.Listing.Title)
	if err != nil {
		return liquidityOutcome{issue: &domain.ScanIssue{
			Stage:  "liquidity",
			ItemID: d.Listing.ID,
			Err:    fmt.Errorf("fetch sales history: %w", err),
		}}
	}

	if len(sales) < liqMinSales {
		return liquidityOutcome{} // ilíquido: rechazo limpio, no issue
	}

	avg := avgRecentSales(sales, liqRecentSamples)
	if avg <= 0 {
		return liquidityOutcome{}
	}

	// La regla de depreciación: precio cayendo ≠ oportunidad.
	if d.Listing.Price.Dollars() < liqDepreciationRatio*avg {
		return liquidityOutcome{}
	}

	d.SalesVolume = len(sales)
	d.AvgRecentPrice = avg
	return liquidityOutcome{deal: d, keep: true}
}

// avgRecentSales promedia las n ventas más recientes en USD.
// Asume el historial ordenado de más reciente a más antiguo, como lo
// entrega el SalesProvider.
func avgRecentSales(sales []domain.SalesRecord, n int) float64 {
	if len(sales) < n {
		n = len(sales)
	}
	if n == 0 {
		return 0
	}
	total := 0.0
	for _, s := range sales[:n] {
		total += s.Price.Dollars()
	}
	return total / float64(n)
}
