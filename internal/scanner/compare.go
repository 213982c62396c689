package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// compareOutcome es el resultado tageado de una comparación por item.
// Un fallo del comparador excluye el deal del batch: el issue registra
// qué item se perdió y por qué.
type compareOutcome struct {
	deal  domain.Deal
	issue *domain.ScanIssue
}

// applyComparison consulta precios externos para cada deal con fan-out
// acotado por el worker pool del scanner.
func (s *Scanner) applyComparison(ctx context.Context, deals []domain.Deal, issues *[]domain.ScanIssue) []domain.Deal {
	if len(deals) == 0 {
		return deals
	}

	workCh := make(chan domain.Deal, len(deals))
	resultCh := make(chan compareOutcome, len(deals))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range workCh {
				resultCh <- s.compareOne(ctx, d)
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

	out := make([]domain.Deal, 0, len(deals))
	for result := range resultCh {
		if result.issue != nil {
			*issues = append(*issues, *result.issue)
			continue
		}
		out = append(out, result.deal)
	}

	slog.Debug("external comparison applied",
		"in", len(deals),
		"surviving", len(out),
	)
	return out
}

// compareOne consulta el comparador para un deal y adjunta el resultado.
func (s *Scanner) compareOne(ctx context.Context, d domain.Deal) compareOutcome {
	cmp, err := s.comparator.ComparePrice(ctx, d.Listing)
	if err != nil {
		return compareOutcome{issue: &domain.ScanIssue{
			Stage:  "compare",
			ItemID: d.Listing.ID,
			Err:    fmt.Errorf("compare price: %w", err),
		}}
	}
	d.Comparison = &cmp
	return compareOutcome{deal: d}
}
