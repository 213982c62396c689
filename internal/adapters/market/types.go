package market

// DTOs raw de la API del marketplace. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// listingsResponse es la respuesta paginada de GET /v1/listings.
type listingsResponse struct {
	Total    int          `json:"total"`
	Listings []rawListing `json:"listings"`
}

// rawListing es un listing tal como lo devuelve la API. Los precios vienen
// en unidades menores (centavos) como enteros.
type rawListing struct {
	ID             string   `json:"id"`
	MarketHashName string   `json:"market_hash_name"`
	AppID          int      `json:"app_id"`
	Price          int64    `json:"price"`
	SuggestedPrice int64    `json:"suggested_price"`
	TradeLockHours int      `json:"trade_lock_hours"`
	Item           *rawItem `json:"item"`
}

// rawItem contiene la inspección del item; los campos presentes dependen
// del juego.
type rawItem struct {
	FloatValue     *float64     `json:"float_value"`
	PaintSeed      int          `json:"paint_seed"`
	Phase          string       `json:"phase"`
	Stickers       []rawSticker `json:"stickers"`
	Gems           []rawGem     `json:"gems"`
	UnlockedStyles int          `json:"unlocked_styles"`
	Spells         []string     `json:"spells"`
	StrangeParts   []string     `json:"strange_parts"`
	UnusualEffect  string       `json:"unusual_effect"`
}

// rawSticker es un sticker aplicado (CS2).
type rawSticker struct {
	Name string  `json:"name"`
	Slot int     `json:"slot"`
	Wear float64 `json:"wear"`
}

// rawGem es una gema socketed (Dota2).
type rawGem struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// salesResponse es la respuesta de GET /v1/sales.
type salesResponse struct {
	MarketHashName string    `json:"market_hash_name"`
	Sales          []rawSale `json:"sales"`
}

// rawSale es una venta histórica; timestamp en epoch seconds.
type rawSale struct {
	Price  int64 `json:"price"`
	SoldAt int64 `json:"sold_at"`
}
