package scanner

import (
	"strings"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// FilterConfig contiene los parámetros de los filtros básicos.
type FilterConfig struct {
	// MinDiscountPercent descarta listings con descuento menor a esto.
	MinDiscountPercent float64
	// MaxTradeLockHours descarta listings bloqueados más tiempo que esto.
	MaxTradeLockHours int
	// Blacklist descarta categorías ilíquidas por keyword sobre el título.
	Blacklist []string
}

// DefaultFilterConfig devuelve el filtrado por defecto.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinDiscountPercent: 15.0,
		MaxTradeLockHours:  168, // una semana
		Blacklist:          defaultBlacklist,
	}
}

// defaultBlacklist son categorías con liquidez pobre: el descuento aparente
// no se puede realizar porque nadie las compra rápido.
var defaultBlacklist = []string{
	"souvenir",
	"sticker",
	"case",
	"capsule",
	"pin",
	"music kit",
	"graffiti",
}

// applyBasicFilters aplica los filtros que no necesitan red y convierte
// los supervivientes en deals con su descuento calculado.
func applyBasicFilters(listings []domain.Listing, cfg FilterConfig) []domain.Deal {
	deals := make([]domain.Deal, 0, len(listings))
	for _, l := range listings {
		if !passesBasicFilters(l, cfg) {
			continue
		}
		deals = append(deals, domain.Deal{
			Listing:     l,
			DiscountPct: l.Discount(),
		})
	}
	return deals
}

// passesBasicFilters devuelve true si el listing supera todos los filtros
// básicos: precios positivos, descuento mínimo, blacklist y trade lock.
func passesBasicFilters(l domain.Listing, cfg FilterConfig) bool {
	if !l.Usable() || !l.SuggestedPrice.Usable() {
		return false
	}
	if l.Discount() < cfg.MinDiscountPercent {
		return false
	}
	if cfg.MaxTradeLockHours > 0 && l.TradeLockHours > cfg.MaxTradeLockHours {
		return false
	}
	lower := strings.ToLower(l.Title)
	for _, kw := range cfg.Blacklist {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
