package domain

// RarityTier clasifica un item según su multiplicador de valor acumulado.
type RarityTier string

const (
	TierCommon    RarityTier = "common"
	TierUncommon  RarityTier = "uncommon"
	TierRare      RarityTier = "rare"
	TierEpic      RarityTier = "epic"
	TierLegendary RarityTier = "legendary"
	TierJackpot   RarityTier = "jackpot"
)

// RarityAssessment es el resultado de evaluar los atributos raros de un item.
type RarityAssessment struct {
	ItemID string
	Game   Game

	// ValueMultiplier arranca en 1.0 y acumula incrementos aditivos por
	// cada trait detectado. Sin tope superior.
	ValueMultiplier float64

	// DetectedAttributes son las razones legibles, en orden de detección.
	DetectedAttributes []string

	// Tier se deriva únicamente de ValueMultiplier (y del flag de revisión).
	Tier RarityTier

	// RequiresManualReview marca items que el pricing automático no debe
	// tocar sin criterio humano, independientemente del tier.
	RequiresManualReview bool
}

// IsProfitableRare devuelve true si el markup estimado justifica atención.
func (a RarityAssessment) IsProfitableRare() bool {
	return a.ValueMultiplier >= 1.10
}
