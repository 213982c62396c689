package hold

import (
	"fmt"
	"strings"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// overrides.go — triggers de override por juego.
//
// El engine aplica estos triggers aunque no tenga evaluador configurado:
// defensa redundante para que un item jackpot nunca pase al repricing por
// un evaluador mal cableado. Los multiplicadores estimados de esta tabla
// son independientes de los incrementos del evaluador y de los pesos del
// detector de mispricing; la divergencia es deliberada (ver DESIGN.md).

// Multiplicadores estimados por override.
const (
	multLowFloat       = 1.8
	multHighFloat      = 1.4
	multRareSticker    = 2.5
	multDopplerPhase   = 2.0
	multBlueGem        = 2.2
	multRareGem        = 1.5
	multGemCount       = 1.3
	multUnlockedStyles = 1.25
	multSpell          = 1.6
	multUnusualEffect  = 1.7
	multStrangeParts   = 1.3
	multGlowSkin       = 1.3
	multLimitedEdition = 1.4
)

// overrideStickerKeywords dispara hold si aparece en el nombre de un sticker.
var overrideStickerKeywords = []string{
	"Katowice 2014",
	"Crown (Foil)",
	"Howling Dawn",
}

// overrideDopplerPhases son las fases gema que siempre se retienen.
var overrideDopplerPhases = map[string]bool{
	"Ruby":        true,
	"Sapphire":    true,
	"Emerald":     true,
	"Black Pearl": true,
}

// overrideBlueGemSeeds son los seeds de Case Hardened que siempre se retienen.
var overrideBlueGemSeeds = map[int]bool{
	387: true, 955: true, 690: true, 321: true, 661: true,
}

// overrideTier1Effects son los unusual effects que siempre se retienen.
var overrideTier1Effects = map[string]bool{
	"Burning Flames":   true,
	"Scorching Flames": true,
	"Sunbeams":         true,
}

// overrideMatch es el resultado de un trigger de override.
type overrideMatch struct {
	reason     domain.HoldReason
	details    string
	multiplier float64
}

// checkOverrides aplica la cadena de triggers del juego del listing.
// El primer match gana.
func (e *Engine) checkOverrides(l domain.Listing) (overrideMatch, bool) {
	switch extra := l.Extra.(type) {
	case domain.CS2Extra:
		return e.checkCS2(l.Title, extra)
	case domain.Dota2Extra:
		return checkDota2(extra)
	case domain.TF2Extra:
		return checkTF2(extra)
	case domain.RustExtra:
		return checkRust(l.Title)
	}
	if l.Game == domain.GameRust {
		return checkRust(l.Title)
	}
	return overrideMatch{}, false
}

func (e *Engine) checkCS2(title string, extra domain.CS2Extra) (overrideMatch, bool) {
	if extra.HasFloat && extra.Float < e.cfg.CS2FloatMin {
		return overrideMatch{
			reason:     domain.HoldLowFloat,
			details:    fmt.Sprintf("float %.6f below %.4f", extra.Float, e.cfg.CS2FloatMin),
			multiplier: multLowFloat,
		}, true
	}
	if extra.HasFloat && extra.Float > e.cfg.CS2FloatMax {
		return overrideMatch{
			reason:     domain.HoldHighFloat,
			details:    fmt.Sprintf("float %.6f above %.4f", extra.Float, e.cfg.CS2FloatMax),
			multiplier: multHighFloat,
		}, true
	}
	for _, s := range extra.Stickers {
		for _, kw := range overrideStickerKeywords {
			if strings.Contains(s.Name, kw) {
				return overrideMatch{
					reason:     domain.HoldRareSticker,
					details:    s.Name,
					multiplier: multRareSticker,
				}, true
			}
		}
	}
	if overrideDopplerPhases[extra.DopplerPhase] {
		return overrideMatch{
			reason:     domain.HoldDopplerPhase,
			details:    "Doppler " + extra.DopplerPhase,
			multiplier: multDopplerPhase,
		}, true
	}
	if overrideBlueGemSeeds[extra.PaintSeed] && strings.Contains(title, "Case Hardened") {
		return overrideMatch{
			reason:     domain.HoldBlueGem,
			details:    fmt.Sprintf("Blue Gem seed %d", extra.PaintSeed),
			multiplier: multBlueGem,
		}, true
	}
	return overrideMatch{}, false
}

func checkDota2(extra domain.Dota2Extra) (overrideMatch, bool) {
	for _, g := range extra.Gems {
		if g.Type == "prismatic" || g.Type == "ethereal" {
			return overrideMatch{
				reason:     domain.HoldRareGem,
				details:    g.Type + " gem: " + g.Name,
				multiplier: multRareGem,
			}, true
		}
	}
	if len(extra.Gems) >= 3 {
		return overrideMatch{
			reason:     domain.HoldGemCount,
			details:    fmt.Sprintf("%d gems socketed", len(extra.Gems)),
			multiplier: multGemCount,
		}, true
	}
	if extra.UnlockedStyles >= 2 {
		return overrideMatch{
			reason:     domain.HoldUnlockedStyles,
			details:    fmt.Sprintf("%d unlocked styles", extra.UnlockedStyles),
			multiplier: multUnlockedStyles,
		}, true
	}
	return overrideMatch{}, false
}

func checkTF2(extra domain.TF2Extra) (overrideMatch, bool) {
	if len(extra.Spells) > 0 {
		return overrideMatch{
			reason:     domain.HoldSpell,
			details:    strings.Join(extra.Spells, ", "),
			multiplier: multSpell,
		}, true
	}
	if overrideTier1Effects[extra.UnusualEffect] {
		return overrideMatch{
			reason:     domain.HoldUnusualEffect,
			details:    extra.UnusualEffect,
			multiplier: multUnusualEffect,
		}, true
	}
	if len(extra.StrangeParts) >= 2 {
		return overrideMatch{
			reason:     domain.HoldStrangeParts,
			details:    fmt.Sprintf("%d strange parts", len(extra.StrangeParts)),
			multiplier: multStrangeParts,
		}, true
	}
	return overrideMatch{}, false
}

func checkRust(title string) (overrideMatch, bool) {
	lower := strings.ToLower(title)
	for _, kw := range []string{"glow", "glowing", "neon"} {
		if strings.Contains(lower, kw) {
			return overrideMatch{
				reason:     domain.HoldGlowSkin,
				details:    "glow keyword: " + kw,
				multiplier: multGlowSkin,
			}, true
		}
	}
	for _, kw := range []string{"limited edition", "twitch drop", "anniversary"} {
		if strings.Contains(lower, kw) {
			return overrideMatch{
				reason:     domain.HoldLimitedEdition,
				details:    "limited keyword: " + kw,
				multiplier: multLimitedEdition,
			}, true
		}
	}
	return overrideMatch{}, false
}
