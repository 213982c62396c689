package rarity

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// Umbrales de tier sobre el multiplicador final, evaluados de mayor a menor.
const (
	tierJackpotMin   = 1.50
	tierLegendaryMin = 1.30
	tierEpicMin      = 1.20
	tierRareMin      = 1.10
	tierUncommonMin  = 1.05
)

// maxOverpayCap limita cuánto sobreprecio acepta el bot en cualquier caso.
const maxOverpayCap = 5.0

// Evaluator puntúa los atributos raros de un listing en un multiplicador
// de valor. Puro y determinista: mismo listing, mismo assessment.
type Evaluator struct{}

// NewEvaluator crea un Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate calcula el RarityAssessment de un listing.
// Cada trigger matcheado suma su incremento y añade una razón legible;
// múltiples triggers acumulan sin tope.
func (e *Evaluator) Evaluate(l domain.Listing) domain.RarityAssessment {
	a := domain.RarityAssessment{
		ItemID:          l.ID,
		Game:            l.Game,
		ValueMultiplier: 1.0,
	}

	switch extra := l.Extra.(type) {
	case domain.CS2Extra:
		e.evaluateCS2(&a, l.Title, extra)
	case domain.Dota2Extra:
		e.evaluateDota2(&a, l.Title, extra)
	case domain.TF2Extra:
		e.evaluateTF2(&a, l.Title, extra)
	case domain.RustExtra:
		e.evaluateRust(&a, l.Title)
	default:
		if l.Game == domain.GameRust {
			e.evaluateRust(&a, l.Title)
		}
	}

	a.Tier = tierFor(a.ValueMultiplier, a.RequiresManualReview)
	return a
}

// MaxOverpayPercent devuelve cuánto sobreprecio (en %) vale la pena pagar
// por un item según su assessment: un cuarto del markup estimado, con tope
// del 5%. Items en revisión manual no admiten sobreprecio automático.
func MaxOverpayPercent(a domain.RarityAssessment) float64 {
	if a.RequiresManualReview {
		return 0
	}
	overpay := (a.ValueMultiplier*100 - 100) * 0.25
	if overpay < 0 {
		return 0
	}
	if overpay > maxOverpayCap {
		return maxOverpayCap
	}
	return overpay
}

func (e *Evaluator) evaluateCS2(a *domain.RarityAssessment, title string, extra domain.CS2Extra) {
	if extra.HasFloat {
		switch {
		case extra.Float < 0.0001:
			add(a, incQuadZeroFloat, fmt.Sprintf("Quad zero float %.6f", extra.Float))
			a.RequiresManualReview = true
		case extra.Float < 0.001:
			add(a, incTripleZero, fmt.Sprintf("Triple zero float %.5f", extra.Float))
		case extra.Float < 0.01:
			add(a, incLowFloat, fmt.Sprintf("Low float %.4f", extra.Float))
		}
	}

	e.evaluateStickers(a, extra.Stickers)

	if rareDopplerPhases[extra.DopplerPhase] {
		add(a, incRareDoppler, "Doppler "+extra.DopplerPhase)
		a.RequiresManualReview = true
	} else if goodDopplerPhases[extra.DopplerPhase] {
		add(a, incGoodPhase, "Doppler "+extra.DopplerPhase)
	}

	if blueGemSeeds[extra.PaintSeed] && strings.Contains(title, "Case Hardened") {
		add(a, incBlueGemSeed, fmt.Sprintf("Blue Gem seed %d", extra.PaintSeed))
		a.RequiresManualReview = true
	}
	if highFadeSeeds[extra.PaintSeed] && strings.Contains(title, "Fade") {
		add(a, incHighFadeSeed, fmt.Sprintf("High fade seed %d", extra.PaintSeed))
	}
}

// evaluateStickers recorre los stickers en orden. Un Katowice 2014 Holo de
// la lista corta el resto de checks de stickers: el item ya va a revisión.
func (e *Evaluator) evaluateStickers(a *domain.RarityAssessment, stickers []domain.Sticker) {
	for _, s := range stickers {
		if matchesAny(s.Name, holoKatowice2014) {
			add(a, incHoloKatowice, "Holo Katowice 2014: "+s.Name)
			a.RequiresManualReview = true
			return
		}
		switch {
		case strings.Contains(s.Name, "Katowice 2014"):
			add(a, incKatowice2014, "Katowice 2014: "+s.Name)
		case strings.Contains(s.Name, "Cologne 2014") && strings.Contains(s.Name, "Holo"):
			add(a, incCologneHolo, "Cologne 2014 Holo: "+s.Name)
		case matchesAny(s.Name, premiumStickers):
			add(a, incPremiumStick, "Premium sticker: "+s.Name)
		}
	}
}

func (e *Evaluator) evaluateDota2(a *domain.RarityAssessment, title string, extra domain.Dota2Extra) {
	for _, g := range extra.Gems {
		if g.Type == "prismatic" || g.Type == "ethereal" {
			add(a, incRareGemType, "Rare gem type: "+g.Type)
		}
		if matchesAny(g.Name, rareGemColors) {
			add(a, incRareGemColor, "Rare gem color: "+g.Name)
		}
	}
	if extra.InscribedCount() >= 3 && strings.Contains(title, "Inscribed") {
		add(a, incManyInscribed, fmt.Sprintf("%d inscribed gems", extra.InscribedCount()))
	}
	if extra.UnlockedStyles >= 2 {
		add(a, incUnlockedStyle, fmt.Sprintf("%d unlocked styles", extra.UnlockedStyles))
	}
}

func (e *Evaluator) evaluateTF2(a *domain.RarityAssessment, title string, extra domain.TF2Extra) {
	for _, spell := range extra.Spells {
		if matchesAny(spell, halloweenSpells) {
			add(a, incSpell, "Spell: "+spell)
		}
	}
	if tier1Effects[extra.UnusualEffect] {
		add(a, incTier1Effect, "Tier 1 effect: "+extra.UnusualEffect)
	}
	for _, part := range extra.StrangeParts {
		if matchesAny(part, valuableParts) {
			add(a, incValuablePart, "Strange part: "+part)
		}
	}
	if strings.Contains(title, "Strange") && len(extra.StrangeParts) >= 1 {
		add(a, incStrangeParts, "Strange with parts")
	}
}

func (e *Evaluator) evaluateRust(a *domain.RarityAssessment, title string) {
	lower := strings.ToLower(title)
	for _, kw := range glowKeywords {
		if strings.Contains(lower, kw) {
			add(a, incGlowKeyword, "Glow skin: "+kw)
			break
		}
	}
	for _, kw := range limitedKeywords {
		if strings.Contains(lower, kw) {
			add(a, incLimitedKeyword, "Limited edition: "+kw)
			break
		}
	}
}

// add suma un incremento y registra la razón.
func add(a *domain.RarityAssessment, inc float64, reason string) {
	a.ValueMultiplier += inc
	a.DetectedAttributes = append(a.DetectedAttributes, reason)
}

// matchesAny devuelve true si s contiene alguno de los nombres de la lista
// (match por substring, case-sensitive: los nombres vienen del marketplace).
func matchesAny(s string, list []string) bool {
	for _, item := range list {
		if strings.Contains(s, item) {
			return true
		}
	}
	return false
}

// tierFor asigna el tier según el multiplicador final.
func tierFor(multiplier float64, manualReview bool) domain.RarityTier {
	switch {
	case manualReview || multiplier >= tierJackpotMin:
		return domain.TierJackpot
	case multiplier >= tierLegendaryMin:
		return domain.TierLegendary
	case multiplier >= tierEpicMin:
		return domain.TierEpic
	case multiplier >= tierRareMin:
		return domain.TierRare
	case multiplier >= tierUncommonMin:
		return domain.TierUncommon
	default:
		return domain.TierCommon
	}
}
