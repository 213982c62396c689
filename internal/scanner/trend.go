package scanner

import (
	"sort"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// Umbrales de las señales de tendencia.
const (
	upwardMinChangePct = 5.0  // subida mínima vs última venta
	upwardMinSales     = 2    // ventas recientes mínimas
	upwardProjection   = 1.10 // precio proyectado = actual × 1.10
	upwardMinProfitUSD = 0.50

	recoveryMaxChangePct = -15.0 // caída mínima para considerarlo sobrevendido
	recoveryMinSales     = 3
	recoveryProjection   = 0.90 // proyectado = última venta × 0.90
	recoveryMinProfitUSD = 1.00
)

// TrendingItems cruza los listings actuales con el historial de ventas por
// título y emite señales de tendencia al alza o de recuperación.
func (a *Analyzer) TrendingItems(listings []domain.Listing, sales []domain.SalesRecord) ([]domain.TrendSignal, []domain.ScanIssue) {
	history := salesByTitle(sales)
	now := time.Now()

	var signals []domain.TrendSignal
	for _, l := range listings {
		if !l.Usable() {
			continue
		}
		records, ok := history[l.Title]
		if !ok || len(records) == 0 {
			continue
		}

		lastSold := records[0].Price
		if !lastSold.Usable() {
			continue
		}
		recent := countRecent(records, now)
		changePct := domain.DiffPercent(lastSold, l.Price)

		if sig, ok := upwardSignal(l, lastSold, recent, changePct); ok {
			signals = append(signals, sig)
			continue
		}
		if sig, ok := recoverySignal(l, lastSold, recent, changePct); ok {
			signals = append(signals, sig)
		}
	}

	sort.Slice(signals, func(i, j int) bool {
		if signals[i].PotentialProfitPct != signals[j].PotentialProfitPct {
			return signals[i].PotentialProfitPct > signals[j].PotentialProfitPct
		}
		return signals[i].Listing.ID < signals[j].Listing.ID
	})
	return signals, nil
}

// upwardSignal detecta un item subiendo con demanda: el precio actual ya
// supera la última venta y hay ventas recientes que lo sostienen.
func upwardSignal(l domain.Listing, lastSold domain.Cents, recent int, changePct float64) (domain.TrendSignal, bool) {
	if changePct <= upwardMinChangePct || recent < upwardMinSales {
		return domain.TrendSignal{}, false
	}
	projected := domain.DollarsToCents(l.Price.Dollars() * upwardProjection)
	profit := projected.Dollars() - l.Price.Dollars()
	if profit <= upwardMinProfitUSD {
		return domain.TrendSignal{}, false
	}
	return domain.TrendSignal{
		Listing:            l,
		LastSoldPrice:      lastSold,
		RecentSalesCount:   recent,
		Kind:               domain.TrendUpward,
		ProjectedPrice:     projected,
		PotentialProfitPct: domain.DiffPercent(l.Price, projected),
	}, true
}

// recoverySignal detecta un item sobrevendido: cayó fuerte respecto a la
// última venta pero el volumen reciente sugiere que el precio rebota.
func recoverySignal(l domain.Listing, lastSold domain.Cents, recent int, changePct float64) (domain.TrendSignal, bool) {
	if changePct >= recoveryMaxChangePct || recent < recoveryMinSales {
		return domain.TrendSignal{}, false
	}
	projected := domain.DollarsToCents(lastSold.Dollars() * recoveryProjection)
	profit := projected.Dollars() - l.Price.Dollars()
	if profit <= recoveryMinProfitUSD {
		return domain.TrendSignal{}, false
	}
	return domain.TrendSignal{
		Listing:            l,
		LastSoldPrice:      lastSold,
		RecentSalesCount:   recent,
		Kind:               domain.TrendRecovery,
		ProjectedPrice:     projected,
		PotentialProfitPct: domain.DiffPercent(l.Price, projected),
	}, true
}

// salesByTitle agrupa las ventas por título, la más reciente primero.
func salesByTitle(sales []domain.SalesRecord) map[string][]domain.SalesRecord {
	history := make(map[string][]domain.SalesRecord)
	for _, s := range sales {
		history[s.Title] = append(history[s.Title], s)
	}
	for title := range history {
		records := history[title]
		sort.Slice(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp)
		})
		history[title] = records
	}
	return history
}

// countRecent cuenta las ventas dentro de la ventana de recencia.
func countRecent(records []domain.SalesRecord, now time.Time) int {
	n := 0
	for _, r := range records {
		if now.Sub(r.Timestamp) <= trendRecentWindow {
			n++
		}
	}
	return n
}
