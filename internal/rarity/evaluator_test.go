package rarity

import (
	"testing"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cs2Listing(title string, extra domain.CS2Extra) domain.Listing {
	return domain.Listing{
		ID:    "item-1",
		Title: title,
		Game:  domain.GameCS2,
		Price: 1000,
		Extra: extra,
	}
}

func TestEvaluate_QuadZeroFloat(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("Karambit | Doppler (Factory New)", domain.CS2Extra{
		Float: 0.00005, HasFloat: true,
	}))

	assert.GreaterOrEqual(t, a.ValueMultiplier, 1.50)
	assert.True(t, a.RequiresManualReview)
	assert.Equal(t, domain.TierJackpot, a.Tier)
	require.Len(t, a.DetectedAttributes, 1)
	assert.Contains(t, a.DetectedAttributes[0], "Quad zero")
}

func TestEvaluate_TripleZeroFloat(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("AK-47 | Redline (Field-Tested)", domain.CS2Extra{
		Float: 0.0008, HasFloat: true,
	}))

	assert.InDelta(t, 1.30, a.ValueMultiplier, 1e-9)
	assert.False(t, a.RequiresManualReview)
	assert.Equal(t, domain.TierLegendary, a.Tier)
}

func TestEvaluate_FloatBucketsAreExclusive(t *testing.T) {
	// Un float de 0.005 solo matchea el bucket < 0.01, no los inferiores.
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("M4A4 | Asiimov (Factory New)", domain.CS2Extra{
		Float: 0.005, HasFloat: true,
	}))

	assert.InDelta(t, 1.15, a.ValueMultiplier, 1e-9)
	assert.Equal(t, domain.TierRare, a.Tier)
}

func TestEvaluate_MissingFloatDoesNotTrigger(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("AK-47 | Redline (Field-Tested)", domain.CS2Extra{}))

	assert.Equal(t, 1.0, a.ValueMultiplier)
	assert.Equal(t, domain.TierCommon, a.Tier)
}

func TestEvaluate_HoloKatowiceShortCircuits(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("AWP | Asiimov (Field-Tested)", domain.CS2Extra{
		Stickers: []domain.Sticker{
			{Name: "Sticker | iBUYPOWER (Holo) | Katowice 2014", Slot: 0},
			{Name: "Sticker | Titan | Katowice 2014", Slot: 1}, // no debe sumar
		},
	}))

	assert.GreaterOrEqual(t, a.ValueMultiplier, 2.00)
	assert.True(t, a.RequiresManualReview)
	assert.Equal(t, domain.TierJackpot, a.Tier)
	assert.Len(t, a.DetectedAttributes, 1)
}

func TestEvaluate_PlainKatowiceAndPremiumAccumulate(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(cs2Listing("M4A1-S | Guardian (Minimal Wear)", domain.CS2Extra{
		Stickers: []domain.Sticker{
			{Name: "Sticker | Titan | Katowice 2014"},
			{Name: "Sticker | Howling Dawn"},
			{Name: "Sticker | Crown (Foil)"},
			{Name: "Sticker | HellRaisers (Holo) | Cologne 2014"},
		},
	}))

	// 1.0 + 0.25 + 0.15 + 0.15 + 0.10
	assert.InDelta(t, 1.65, a.ValueMultiplier, 1e-9)
	assert.False(t, a.RequiresManualReview)
	assert.Equal(t, domain.TierJackpot, a.Tier) // ≥ 1.50 sin revisión también es jackpot
	assert.Len(t, a.DetectedAttributes, 4)
}

func TestEvaluate_DopplerPhases(t *testing.T) {
	e := NewEvaluator()

	ruby := e.Evaluate(cs2Listing("Karambit | Doppler (Factory New)", domain.CS2Extra{DopplerPhase: "Ruby"}))
	assert.InDelta(t, 1.40, ruby.ValueMultiplier, 1e-9)
	assert.True(t, ruby.RequiresManualReview)

	p2 := e.Evaluate(cs2Listing("Karambit | Doppler (Factory New)", domain.CS2Extra{DopplerPhase: "Phase 2"}))
	assert.InDelta(t, 1.10, p2.ValueMultiplier, 1e-9)
	assert.False(t, p2.RequiresManualReview)
}

func TestEvaluate_BlueGemRequiresCaseHardenedTitle(t *testing.T) {
	e := NewEvaluator()

	ch := e.Evaluate(cs2Listing("AK-47 | Case Hardened (Field-Tested)", domain.CS2Extra{PaintSeed: 387}))
	assert.InDelta(t, 1.50, ch.ValueMultiplier, 1e-9)
	assert.True(t, ch.RequiresManualReview)

	// Mismo seed en otro skin: el seed no significa nada.
	other := e.Evaluate(cs2Listing("AK-47 | Redline (Field-Tested)", domain.CS2Extra{PaintSeed: 387}))
	assert.Equal(t, 1.0, other.ValueMultiplier)
}

func TestEvaluate_Monotonicity(t *testing.T) {
	// Añadir un trait matcheado nunca baja el multiplicador.
	e := NewEvaluator()
	base := e.Evaluate(cs2Listing("Glock-18 | Fade (Factory New)", domain.CS2Extra{
		Float: 0.008, HasFloat: true,
	}))
	more := e.Evaluate(cs2Listing("Glock-18 | Fade (Factory New)", domain.CS2Extra{
		Float: 0.008, HasFloat: true, PaintSeed: 763,
	}))

	assert.Greater(t, more.ValueMultiplier, base.ValueMultiplier)
	assert.Contains(t, more.DetectedAttributes[len(more.DetectedAttributes)-1], "High fade")
}

func TestEvaluate_Dota2(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(domain.Listing{
		ID:    "d1",
		Title: "Inscribed Dragonclaw Hook",
		Game:  domain.GameDota2,
		Price: 50000,
		Extra: domain.Dota2Extra{
			Gems: []domain.Gem{
				{Type: "ethereal", Name: "Resonant Energy"},
				{Type: "inscribed", Name: "Kills"},
				{Type: "inscribed", Name: "Wards Placed"},
				{Type: "inscribed", Name: "Games Won"},
			},
			UnlockedStyles: 2,
		},
	})

	// 1.0 + 0.20 (ethereal) + 0.05 (≥3 inscribed) + 0.08 (styles)
	assert.InDelta(t, 1.33, a.ValueMultiplier, 1e-9)
	assert.Equal(t, domain.TierLegendary, a.Tier)
}

func TestEvaluate_TF2(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(domain.Listing{
		ID:    "t1",
		Title: "Strange Unusual Team Captain",
		Game:  domain.GameTF2,
		Price: 20000,
		Extra: domain.TF2Extra{
			Spells:        []string{"Exorcism"},
			UnusualEffect: "Burning Flames",
			StrangeParts:  []string{"Headshot Kills", "Dominations"},
		},
	})

	// 1.0 + 0.15 (spell) + 0.25 (tier 1) + 0.10 (parts) + 0.05 (strange+parts)
	assert.InDelta(t, 1.55, a.ValueMultiplier, 1e-9)
	assert.Equal(t, domain.TierJackpot, a.Tier)
}

func TestEvaluate_RustKeywords(t *testing.T) {
	e := NewEvaluator()
	a := e.Evaluate(domain.Listing{
		ID:    "r1",
		Title: "Glowing Skull AK Limited Edition",
		Game:  domain.GameRust,
		Price: 3000,
		Extra: domain.RustExtra{},
	})

	// 1.0 + 0.10 + 0.15
	assert.InDelta(t, 1.25, a.ValueMultiplier, 1e-9)
	assert.Equal(t, domain.TierEpic, a.Tier)
}

func TestMaxOverpayPercent(t *testing.T) {
	// multiplier 1.20 → 20% × 0.25 = 5.0 exacto, justo en el tope.
	assert.Equal(t, 5.0, MaxOverpayPercent(domain.RarityAssessment{ValueMultiplier: 1.20}))

	// multiplier 1.12 → 3.0, bajo el tope.
	assert.InDelta(t, 3.0, MaxOverpayPercent(domain.RarityAssessment{ValueMultiplier: 1.12}), 1e-9)

	// multiplier 2.5 → capped a 5.0.
	assert.Equal(t, 5.0, MaxOverpayPercent(domain.RarityAssessment{ValueMultiplier: 2.5}))

	// revisión manual → 0 siempre.
	assert.Equal(t, 0.0, MaxOverpayPercent(domain.RarityAssessment{
		ValueMultiplier: 3.0, RequiresManualReview: true,
	}))
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := NewEvaluator()
	l := cs2Listing("AK-47 | Case Hardened (Minimal Wear)", domain.CS2Extra{
		Float: 0.0009, HasFloat: true, PaintSeed: 661,
	})

	first := e.Evaluate(l)
	second := e.Evaluate(l)
	assert.Equal(t, first, second)
}
