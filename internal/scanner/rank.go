package scanner

import (
	"sort"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// Componentes del score compuesto.
const (
	externalOppBonus = 50.0 // hay dónde revender con ganancia neta
	marginWeight     = 2.0  // peso del margen externo

	volumeBonusHigh = 20.0 // > 20 ventas
	volumeBonusMid  = 10.0 // > 10 ventas
	volumeBonusLow  = 5.0  // > 5 ventas

	sweetSpotBonus  = 10.0 // $5–$30: rota rápido
	midRangeBonus   = 5.0  // $30–$100
	sweetSpotMinUSD = 5.0
	sweetSpotMaxUSD = 30.0
	midRangeMaxUSD  = 100.0
)

// rankDeals calcula el score compuesto de cada deal y ordena descendente.
func rankDeals(deals []domain.Deal) []domain.Deal {
	for i := range deals {
		deals[i].Score = dealScore(deals[i])
	}
	sort.Slice(deals, func(i, j int) bool {
		if deals[i].Score != deals[j].Score {
			return deals[i].Score > deals[j].Score
		}
		return deals[i].Listing.ID < deals[j].Listing.ID
	})
	return deals
}

// dealScore combina descuento, señal externa, liquidez y rango de precio.
func dealScore(d domain.Deal) float64 {
	score := d.DiscountPct

	if d.HasExternalOpportunity() {
		score += externalOppBonus + marginWeight*d.Comparison.ProfitMarginPct
	}

	switch {
	case d.SalesVolume > 20:
		score += volumeBonusHigh
	case d.SalesVolume > 10:
		score += volumeBonusMid
	case d.SalesVolume > 5:
		score += volumeBonusLow
	}

	price := d.Listing.Price.Dollars()
	switch {
	case price >= sweetSpotMinUSD && price <= sweetSpotMaxUSD:
		score += sweetSpotBonus
	case price > sweetSpotMaxUSD && price <= midRangeMaxUSD:
		score += midRangeBonus
	}

	return score
}
