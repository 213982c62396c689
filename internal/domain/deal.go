package domain

// PriceComparison es el resultado de comparar un listing contra
// marketplaces externos.
type PriceComparison struct {
	HasOpportunity  bool
	BestPlatform    string
	BestPriceUSD    float64 // mejor precio comparable encontrado
	ProfitMarginPct float64
	NetProfitUSD    float64 // tras fee de compra y fee de venta del platform
}

// Deal es una oportunidad rankeada producida por el scanner mejorado.
type Deal struct {
	Listing        Listing
	DiscountPct    float64
	SalesVolume    int              // ventas históricas conocidas
	AvgRecentPrice float64          // promedio en USD de las 5 ventas más recientes
	Comparison     *PriceComparison // nil si la comparación externa está apagada
	Score          float64
}

// HasExternalOpportunity devuelve true si la comparación externa encontró
// un platform donde revender con ganancia neta.
func (d Deal) HasExternalOpportunity() bool {
	return d.Comparison != nil && d.Comparison.HasOpportunity
}
