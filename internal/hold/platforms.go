package hold

import "github.com/alejandrodnm/skinbot/internal/domain"

// recommendedPlatforms es la tabla estática de dónde conviene listar un
// treasure de cada juego para capturar su markup.
var recommendedPlatforms = map[domain.Game][]string{
	domain.GameCS2:   {"csfloat", "skinport", "buff163"},
	domain.GameDota2: {"dmarket", "steam-market"},
	domain.GameTF2:   {"backpack.tf", "marketplace.tf"},
	domain.GameRust:  {"skinport", "steam-market"},
}

// platformsFor devuelve las plataformas recomendadas del juego.
// Devuelve una copia: el caller no puede mutar la tabla.
func platformsFor(game domain.Game) []string {
	src := recommendedPlatforms[game]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
