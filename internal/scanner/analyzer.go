package scanner

import "time"

const (
	defaultPriceDiffThreshold = 10.0 // % mínimo de diferencia entre pares
	defaultFeeRate            = 0.07 // fee de venta del marketplace origen
	defaultMaxResults         = 20

	// trendRecentWindow define qué cuenta como venta "reciente" para las
	// señales de tendencia.
	trendRecentWindow = 24 * time.Hour
)

// Analyzer agrupa los tres algoritmos de batch: anomalías de precio,
// tendencias y items mal preciados. Solo lectura sobre los inputs; cada
// algoritmo devuelve (resultados, issues) y nunca propaga un error fatal.
type Analyzer struct {
	priceDiffThreshold float64
	feeRate            float64
	maxResults         int
}

// NewAnalyzer crea un Analyzer. Valores no positivos caen a los defaults.
func NewAnalyzer(priceDiffThreshold, feeRate float64, maxResults int) *Analyzer {
	if priceDiffThreshold <= 0 {
		priceDiffThreshold = defaultPriceDiffThreshold
	}
	if feeRate <= 0 {
		feeRate = defaultFeeRate
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Analyzer{
		priceDiffThreshold: priceDiffThreshold,
		feeRate:            feeRate,
		maxResults:         maxResults,
	}
}
