package scanner

import (
	"sort"
	"strings"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// mispriced.go — detector de items mal preciados.
//
// Usa una tabla de pesos por keyword más gruesa que la del evaluador de
// rareza: aquí el objetivo es descartar rápido, no tasar fino. Las dos
// tablas puntúan traits solapados con constantes distintas; no unificar
// sin señal del producto (ver DESIGN.md).

// Umbrales del detector.
const (
	mispricedMinScore   = 30.0
	mispricedMinDiffUSD = 2.00
	mispricedMinDiffPct = 10.0
)

// Pesos por juego, matcheados por substring sobre el título en minúsculas.
// El símbolo ★ marca cuchillos y guantes en títulos de CS2.
var cs2Weights = []weightedKeyword{
	{"★", 100},
	{"knife", 100},
	{"gloves", 90},
	{"covert", 70},
	{"stattrak", 50},
	{"factory new", 40},
}

var dota2Weights = []weightedKeyword{
	{"arcana", 100},
	{"unusual", 90},
	{"immortal", 80},
}

var tf2Weights = []weightedKeyword{
	{"unusual", 100},
	{"australium", 80},
}

var rustWeights = []weightedKeyword{
	{"limited", 80},
	{"glowing", 70},
}

// Bonus por float para CS2.
const (
	floatBonusExtreme    = 70.0 // float < 0.01
	floatBonusLow        = 40.0 // float < 0.07
	floatBonusExtremeMax = 0.01
	floatBonusLowMax     = 0.07
)

type weightedKeyword struct {
	keyword string
	weight  float64
}

// MispricedItems puntúa cada listing con la tabla gruesa de traits y emite
// los que cotizan muy por debajo de su valor estimado.
func (a *Analyzer) MispricedItems(listings []domain.Listing) ([]domain.MispricedItem, []domain.ScanIssue) {
	var items []domain.MispricedItem
	for _, l := range listings {
		if !l.Usable() {
			continue
		}

		score := rarityScore(l)
		if score <= mispricedMinScore {
			continue
		}

		estimated := estimateFairValue(l, score)
		diff := estimated - l.Price.Dollars()
		diffPct := 0.0
		if l.Price > 0 {
			diffPct = diff / l.Price.Dollars() * 100
		}
		if diff <= mispricedMinDiffUSD || diffPct <= mispricedMinDiffPct {
			continue
		}

		items = append(items, domain.MispricedItem{
			Listing:           l,
			RarityScore:       score,
			EstimatedValueUSD: estimated,
			DifferenceUSD:     diff,
			DifferencePct:     diffPct,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].DifferencePct != items[j].DifferencePct {
			return items[i].DifferencePct > items[j].DifferencePct
		}
		return items[i].Listing.ID < items[j].Listing.ID
	})
	return items, nil
}

// rarityScore acumula los pesos de todos los keywords matcheados más el
// bonus por float.
func rarityScore(l domain.Listing) float64 {
	lower := strings.ToLower(l.Title)
	score := 0.0
	for _, wk := range weightsFor(l.Game) {
		if strings.Contains(lower, wk.keyword) {
			score += wk.weight
		}
	}

	if extra, ok := l.Extra.(domain.CS2Extra); ok && extra.HasFloat {
		switch {
		case extra.Float < floatBonusExtremeMax:
			score += floatBonusExtreme
		case extra.Float < floatBonusLowMax:
			score += floatBonusLow
		}
	}
	return score
}

// estimateFairValue estima el valor justo del listing. Con precio sugerido
// disponible usa el mayor entre ese y el markup por score; sin sugerido,
// el markup por score es más agresivo para compensar la falta de ancla.
func estimateFairValue(l domain.Listing, score float64) float64 {
	price := l.Price.Dollars()
	if l.SuggestedPrice.Usable() {
		markup := price * (1 + score/300)
		suggested := l.SuggestedPrice.Dollars()
		if suggested > markup {
			return suggested
		}
		return markup
	}
	return price * (1 + score/200)
}

// weightsFor devuelve la tabla de pesos del juego.
func weightsFor(game domain.Game) []weightedKeyword {
	switch game {
	case domain.GameCS2:
		return cs2Weights
	case domain.GameDota2:
		return dota2Weights
	case domain.GameTF2:
		return tf2Weights
	case domain.GameRust:
		return rustWeights
	default:
		return nil
	}
}
