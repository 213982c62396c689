package domain

// Listing es el snapshot de un item en venta en el marketplace origen.
type Listing struct {
	ID             string
	Title          string // display string crudo, ej. "StatTrak™ AK-47 | Redline (Field-Tested)"
	Game           Game
	Price          Cents
	SuggestedPrice Cents // 0 = el marketplace no publica precio sugerido
	TradeLockHours int   // 0 = sin trade lock
	Extra          Extra // atributos específicos del juego, nil si no hay
}

// Usable devuelve true si el listing sirve para análisis.
func (l Listing) Usable() bool {
	return l.Title != "" && l.Price.Usable()
}

// Discount devuelve el descuento del listing respecto al precio sugerido.
func (l Listing) Discount() float64 {
	return DiscountPercent(l.Price, l.SuggestedPrice)
}

// Extra son los atributos raros específicos de cada juego.
// Cada variante es un struct concreto; los evaluadores hacen type switch
// exhaustivo en lugar de sondear mapas opcionales.
type Extra interface {
	// ExtraGame devuelve el juego al que pertenece la variante.
	ExtraGame() Game
}

// Sticker es un sticker aplicado a un arma de CS2.
type Sticker struct {
	Name string
	Slot int
	Wear float64 // 0 = intacto, 1 = totalmente raspado
}

// CS2Extra contiene los atributos de un item de CS2.
type CS2Extra struct {
	Float        float64 // wear del skin; valores bajos son más raros
	HasFloat     bool    // false = el marketplace no reportó float
	PaintSeed    int
	DopplerPhase string // "Ruby", "Sapphire", "Phase 1"... vacío si no aplica
	Stickers     []Sticker
}

// ExtraGame implementa Extra.
func (CS2Extra) ExtraGame() Game { return GameCS2 }

// Gem es una gema socketed en un item de Dota 2.
type Gem struct {
	Type string // "prismatic", "ethereal", "kinetic", "inscribed"
	Name string // ej. "Rubiline Sheen"
}

// Dota2Extra contiene los atributos de un item de Dota 2.
type Dota2Extra struct {
	Gems           []Gem
	UnlockedStyles int
}

// ExtraGame implementa Extra.
func (Dota2Extra) ExtraGame() Game { return GameDota2 }

// InscribedCount devuelve cuántas gemas inscribed tiene el item.
func (e Dota2Extra) InscribedCount() int {
	n := 0
	for _, g := range e.Gems {
		if g.Type == "inscribed" {
			n++
		}
	}
	return n
}

// TF2Extra contiene los atributos de un item de TF2.
type TF2Extra struct {
	Spells        []string // Halloween spells aplicados
	StrangeParts  []string
	UnusualEffect string // nombre del efecto, vacío si no es unusual
}

// ExtraGame implementa Extra.
func (TF2Extra) ExtraGame() Game { return GameTF2 }

// RustExtra es la variante de Rust. Los traits de Rust se detectan por
// keywords sobre el título, así que la variante no lleva campos propios.
type RustExtra struct{}

// ExtraGame implementa Extra.
func (RustExtra) ExtraGame() Game { return GameRust }
