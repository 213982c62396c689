package domain

// Game identifica el juego al que pertenece un item.
type Game string

const (
	GameCS2   Game = "cs2"
	GameDota2 Game = "dota2"
	GameTF2   Game = "tf2"
	GameRust  Game = "rust"
)

// AllGames devuelve los juegos soportados en orden estable.
func AllGames() []Game {
	return []Game{GameCS2, GameDota2, GameTF2, GameRust}
}

// ParseGame convierte un string de config a Game.
// Devuelve ok=false si el juego no está soportado.
func ParseGame(s string) (Game, bool) {
	switch Game(s) {
	case GameCS2, GameDota2, GameTF2, GameRust:
		return Game(s), true
	}
	return "", false
}
