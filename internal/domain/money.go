package domain

import "fmt"

// Cents es un precio en unidades menores de moneda (centavos de USD).
// Todos los precios del dominio se guardan como enteros; las fórmulas
// que necesitan dólares convierten explícitamente con Dollars().
type Cents int64

// Dollars devuelve el precio en dólares.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// Usable devuelve true si el precio sirve para análisis.
// Un precio cero o negativo excluye el listing de todos los algoritmos.
func (c Cents) Usable() bool {
	return c > 0
}

// String formatea el precio como "$12.34".
func (c Cents) String() string {
	return fmt.Sprintf("$%.2f", c.Dollars())
}

// DollarsToCents convierte dólares a Cents redondeando al centavo más cercano.
func DollarsToCents(d float64) Cents {
	if d < 0 {
		return 0
	}
	return Cents(d*100 + 0.5)
}

// DiffPercent calcula la diferencia porcentual entre el precio de compra
// y el de venta: (sell - buy) / buy × 100.
func DiffPercent(buy, sell Cents) float64 {
	if buy <= 0 {
		return 0
	}
	return float64(sell-buy) / float64(buy) * 100
}

// FeeAdjustedProfit calcula la ganancia neta en dólares de comprar a buy
// y vender a sell pagando el fee del marketplace sobre la venta:
//
//	profit = sell × (1 - feeRate) - buy
func FeeAdjustedProfit(buy, sell Cents, feeRate float64) float64 {
	return sell.Dollars()*(1-feeRate) - buy.Dollars()
}

// DiscountPercent calcula el descuento de un listing respecto a su precio
// sugerido: (suggested - price) / suggested × 100.
// Devuelve 0 si no hay precio sugerido utilizable.
func DiscountPercent(price, suggested Cents) float64 {
	if suggested <= 0 {
		return 0
	}
	return float64(suggested-price) / float64(suggested) * 100
}
