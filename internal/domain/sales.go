package domain

import "time"

// SalesRecord es una venta histórica de un item. Input inmutable de solo
// lectura; ningún algoritmo modifica registros de ventas.
type SalesRecord struct {
	Title     string
	Price     Cents
	Timestamp time.Time
}
