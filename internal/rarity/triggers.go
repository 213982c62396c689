package rarity

// triggers.go — tablas de triggers del evaluador de rareza.
//
// Cada trigger suma un incremento fijo al multiplicador de valor. Los
// incrementos son aditivos y sin tope. NOTA: el detector de mispricing y
// los overrides del hold engine usan sus propias tablas con constantes
// distintas para los mismos traits; la divergencia viene del producto y
// se mantiene a propósito (ver DESIGN.md).

// Incrementos CS2.
const (
	incQuadZeroFloat = 0.50 // float < 0.0001
	incTripleZero    = 0.30 // float < 0.001
	incLowFloat      = 0.15 // float < 0.01

	incHoloKatowice = 1.00
	incKatowice2014 = 0.25
	incCologneHolo  = 0.10
	incPremiumStick = 0.15

	incRareDoppler = 0.40 // Ruby, Sapphire, Emerald, Black Pearl
	incGoodPhase   = 0.10 // Phase 2 / Phase 4

	incBlueGemSeed  = 0.50
	incHighFadeSeed = 0.20
)

// Incrementos Dota 2.
const (
	incRareGemType   = 0.20 // prismatic / ethereal
	incRareGemColor  = 0.15
	incManyInscribed = 0.05 // ≥3 gemas inscribed + título "Inscribed"
	incUnlockedStyle = 0.08 // ≥2 estilos desbloqueados
)

// Incrementos TF2.
const (
	incSpell        = 0.15 // por spell de la lista
	incTier1Effect  = 0.25
	incValuablePart = 0.05 // por strange part valiosa
	incStrangeParts = 0.05 // título "Strange" + ≥1 part
)

// Incrementos Rust.
const (
	incGlowKeyword    = 0.10
	incLimitedKeyword = 0.15
)

// holoKatowice2014 son los stickers Katowice 2014 Holo de equipos cuya sola
// presencia dispara revisión manual. Primer match corta el resto de checks
// de stickers.
var holoKatowice2014 = []string{
	"iBUYPOWER (Holo) | Katowice 2014",
	"Titan (Holo) | Katowice 2014",
	"Reason Gaming (Holo) | Katowice 2014",
	"Vox Eminor (Holo) | Katowice 2014",
	"LGB eSports (Holo) | Katowice 2014",
	"Team Dignitas (Holo) | Katowice 2014",
}

// premiumStickers son stickers caros fuera de Katowice/Cologne 2014.
var premiumStickers = []string{
	"Crown (Foil)",
	"Howling Dawn",
	"King on the Field",
	"Winged Defuser",
	"Harp of War (Holo)",
	"Swag (Foil)",
	"Flammable (Foil)",
}

// rareDopplerPhases son las fases Doppler de gema.
var rareDopplerPhases = map[string]bool{
	"Ruby":        true,
	"Sapphire":    true,
	"Emerald":     true,
	"Black Pearl": true,
}

// goodDopplerPhases son las fases premium no-gema.
var goodDopplerPhases = map[string]bool{
	"Phase 2": true,
	"Phase 4": true,
}

// blueGemSeeds son paint seeds de Case Hardened con patrón "Blue Gem".
var blueGemSeeds = map[int]bool{
	387: true, 955: true, 690: true, 179: true, 321: true,
	151: true, 868: true, 670: true, 587: true, 601: true,
	661: true, 592: true, 555: true,
}

// highFadeSeeds son paint seeds con porcentaje de fade alto.
var highFadeSeeds = map[int]bool{
	763: true, 412: true, 925: true, 344: true,
	648: true, 673: true, 701: true, 16: true,
}

// rareGemColors son nombres de gemas de Dota 2 con colores cotizados.
var rareGemColors = []string{
	"Rubiline",
	"Amethyst",
	"Sapphire",
	"Onyx",
	"Sunfire",
	"Midnight",
}

// halloweenSpells son los spells de TF2 que suman valor.
var halloweenSpells = []string{
	"Exorcism",
	"Pumpkin Bombs",
	"Halloween Fire",
	"Headless Horseshoes",
	"Voices From Below",
	"Chromatic Corruption",
	"Die Job",
	"Spectral Spectrum",
}

// tier1Effects son los unusual effects de primera categoría.
var tier1Effects = map[string]bool{
	"Burning Flames":   true,
	"Scorching Flames": true,
	"Sunbeams":         true,
	"Purple Energy":    true,
	"Green Energy":     true,
}

// valuableParts son las strange parts con demanda real.
var valuableParts = []string{
	"Headshot Kills",
	"Dominations",
	"Kills While Explosive-Jumping",
	"Critical Kills",
	"Taunting Player Kills",
}

// Keywords de Rust, minúsculas.
var (
	glowKeywords    = []string{"glow", "glowing", "neon"}
	limitedKeywords = []string{"limited edition", "twitch drop", "anniversary", "prototype"}
)
