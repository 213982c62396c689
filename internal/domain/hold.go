package domain

import "time"

// HoldReason identifica el trigger que causó una decisión de hold.
type HoldReason string

const (
	HoldNone           HoldReason = ""
	HoldLowFloat       HoldReason = "low_float"
	HoldHighFloat      HoldReason = "high_float"
	HoldRareSticker    HoldReason = "rare_sticker"
	HoldDopplerPhase   HoldReason = "doppler_phase"
	HoldBlueGem        HoldReason = "blue_gem"
	HoldRareGem        HoldReason = "rare_gem"
	HoldGemCount       HoldReason = "gem_count"
	HoldUnlockedStyles HoldReason = "unlocked_styles"
	HoldSpell          HoldReason = "spell"
	HoldUnusualEffect  HoldReason = "unusual_effect"
	HoldStrangeParts   HoldReason = "strange_parts"
	HoldGlowSkin       HoldReason = "glow_skin"
	HoldLimitedEdition HoldReason = "limited_edition"
	HoldJackpot        HoldReason = "jackpot"
	HoldManualReview   HoldReason = "manual_review"
)

// HoldDecision es el veredicto sobre si un item comprado se retiene del
// repricing automático. Se crea una vez por item y no se muta después.
type HoldDecision struct {
	ID                   string // uuid de la decisión
	ItemID               string
	Title                string
	Game                 Game
	ShouldHold           bool
	Reason               HoldReason
	ReasonDetails        string
	EstimatedMultiplier  float64
	RecommendedPlatforms []string
	DecidedAt            time.Time
}

// HoldStats son las estadísticas agregadas del engine de hold.
type HoldStats struct {
	TotalProcessed int
	TotalHeld      int
	HoldRatePct    float64
	ByReason       map[HoldReason]int
}
