package domain

import (
	"fmt"
	"time"
)

// ScanIssue registra un fallo por item o por batch durante un scan.
// Los algoritmos devuelven (resultados, issues) en lugar de listas vacías
// silenciosas: el caller puede distinguir "no hay oportunidades" de
// "el upstream falló a mitad del batch".
type ScanIssue struct {
	Stage  string // "fetch", "liquidity", "compare", "persist"...
	ItemID string // vacío si el fallo es de batch completo
	Err    error
}

// String formatea el issue para logs.
func (i ScanIssue) String() string {
	if i.ItemID == "" {
		return fmt.Sprintf("%s: %v", i.Stage, i.Err)
	}
	return fmt.Sprintf("%s[%s]: %v", i.Stage, i.ItemID, i.Err)
}

// AnomalyOpportunity es un par compra/venta del mismo item con diferencia
// de precio explotable. Solo se crea si la ganancia neta de fees es positiva.
type AnomalyOpportunity struct {
	BuyListing           Listing
	SellListing          Listing
	PriceDifferencePct   float64
	FeeAdjustedProfitUSD float64
}

// TrendKind es la dirección de la señal de tendencia.
type TrendKind string

const (
	TrendUpward   TrendKind = "upward"
	TrendRecovery TrendKind = "recovery"
)

// TrendSignal es un listing cuya historia de ventas sugiere movimiento.
type TrendSignal struct {
	Listing            Listing
	LastSoldPrice      Cents
	RecentSalesCount   int
	Kind               TrendKind
	ProjectedPrice     Cents
	PotentialProfitPct float64
}

// MispricedItem es un listing cuyo precio no refleja sus traits raros.
type MispricedItem struct {
	Listing           Listing
	RarityScore       float64
	EstimatedValueUSD float64
	DifferenceUSD     float64
	DifferencePct     float64
}

// ScanCycle es el resumen persistible de un ciclo de scan.
type ScanCycle struct {
	ID        string
	Game      Game
	ScannedAt time.Time
	Fetched   int
	Filtered  int
	Ranked    int
	BestScore float64
	Issues    int
}
