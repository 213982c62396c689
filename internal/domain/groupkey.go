package domain

import "strings"

// groupkey.go — identidad derivada para agrupar listings del "mismo" item.
//
// Dos listings son comparables para detección de anomalías si y solo si
// sus GroupKeys son iguales. Para CS2 el exterior se separa en un token
// propio y los marcadores StatTrak™/Souvenir se conservan como parte de
// la identidad: una variante StatTrak nunca agrupa con la normal.

// exteriors son los nombres de wear que CS2 añade entre paréntesis al final.
var exteriors = []string{
	"Factory New",
	"Minimal Wear",
	"Field-Tested",
	"Well-Worn",
	"Battle-Scarred",
}

// GroupKey deriva la clave de agrupación de un listing.
// Juegos distintos de CS2 usan el título crudo tal cual.
func GroupKey(l Listing) string {
	if l.Game != GameCS2 {
		return strings.TrimSpace(l.Title)
	}
	base, exterior := SplitExterior(l.Title)
	if exterior == "" {
		return base
	}
	return base + "|" + exterior
}

// SplitExterior separa el exterior de un título de CS2.
// "AK-47 | Redline (Field-Tested)" → ("AK-47 | Redline", "Field-Tested").
// Si el sufijo entre paréntesis no es un wear conocido, lo deja en el título.
func SplitExterior(title string) (base, exterior string) {
	title = strings.TrimSpace(title)
	for _, ext := range exteriors {
		suffix := "(" + ext + ")"
		if strings.HasSuffix(title, suffix) {
			base = strings.TrimSpace(strings.TrimSuffix(title, suffix))
			return base, ext
		}
	}
	return title, ""
}

// IsStatTrak devuelve true si el título marca la variante StatTrak.
func IsStatTrak(title string) bool {
	return strings.Contains(title, "StatTrak")
}

// IsSouvenir devuelve true si el título marca la variante Souvenir.
func IsSouvenir(title string) bool {
	return strings.Contains(title, "Souvenir")
}
