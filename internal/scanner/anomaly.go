package scanner

import (
	"sort"
	"strings"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// decorativeKeywords excluye las categorías decorativas de CS2 del scan de
// anomalías: sus precios dependen de factores que el agrupado por título
// no captura.
var decorativeKeywords = []string{"sticker", "graffiti", "patch"}

// PriceAnomalies busca pares compra/venta del mismo item con diferencia de
// precio explotable dentro del batch.
//
// Agrupa por GroupKey, ordena cada grupo por precio ascendente y compara
// cada par (compra = más barato, venta = más caro). Solo emite pares cuyo
// diffPercent supera el umbral y cuya ganancia neta de fees es positiva.
// Resultado ordenado por diffPercent descendente, truncado a maxResults.
func (a *Analyzer) PriceAnomalies(listings []domain.Listing) ([]domain.AnomalyOpportunity, []domain.ScanIssue) {
	groups := make(map[string][]domain.Listing)
	for _, l := range listings {
		if !l.Usable() {
			continue // exclusión silenciosa: input sin precio o título
		}
		if l.Game == domain.GameCS2 && isDecorative(l.Title) {
			continue
		}
		key := domain.GroupKey(l)
		groups[key] = append(groups[key], l)
	}

	var opps []domain.AnomalyOpportunity
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Price < group[j].Price })

		for i := 0; i < len(group)-1; i++ {
			for j := i + 1; j < len(group); j++ {
				buy, sell := group[i], group[j]
				diff := domain.DiffPercent(buy.Price, sell.Price)
				if diff < a.priceDiffThreshold {
					continue
				}
				profit := domain.FeeAdjustedProfit(buy.Price, sell.Price, a.feeRate)
				if profit <= 0 {
					continue
				}
				opps = append(opps, domain.AnomalyOpportunity{
					BuyListing:           buy,
					SellListing:          sell,
					PriceDifferencePct:   diff,
					FeeAdjustedProfitUSD: profit,
				})
			}
		}
	}

	// Orden determinista: mismo batch, misma lista en el mismo orden.
	// El desempate por IDs evita que el orden de iteración del map se filtre.
	sort.Slice(opps, func(i, j int) bool {
		if opps[i].PriceDifferencePct != opps[j].PriceDifferencePct {
			return opps[i].PriceDifferencePct > opps[j].PriceDifferencePct
		}
		if opps[i].BuyListing.ID != opps[j].BuyListing.ID {
			return opps[i].BuyListing.ID < opps[j].BuyListing.ID
		}
		return opps[i].SellListing.ID < opps[j].SellListing.ID
	})
	if len(opps) > a.maxResults {
		opps = opps[:a.maxResults]
	}
	return opps, nil
}

// isDecorative devuelve true si el título corresponde a una categoría
// decorativa de CS2.
func isDecorative(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range decorativeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
