package market

import (
	"sort"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// appIDs son los Steam app ids que usa la API por juego.
var appIDs = map[domain.Game]int{
	domain.GameCS2:   730,
	domain.GameDota2: 570,
	domain.GameTF2:   440,
	domain.GameRust:  252490,
}

// mapListings convierte los DTOs de la API a domain.Listing.
func mapListings(raw []rawListing, game domain.Game) []domain.Listing {
	listings := make([]domain.Listing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, mapListing(r, game))
	}
	return listings
}

// mapListing normaliza un rawListing: precios a Cents y los atributos de
// inspección al variant de Extra del juego.
func mapListing(r rawListing, game domain.Game) domain.Listing {
	return domain.Listing{
		ID:             r.ID,
		Title:          r.MarketHashName,
		Game:           game,
		Price:          domain.Cents(r.Price),
		SuggestedPrice: domain.Cents(r.SuggestedPrice),
		TradeLockHours: r.TradeLockHours,
		Extra:          mapExtra(r.Item, game),
	}
}

// mapExtra construye el variant de Extra según el juego. Un item sin
// inspección produce el variant vacío del juego.
func mapExtra(item *rawItem, game domain.Game) domain.Extra {
	switch game {
	case domain.GameCS2:
		e := domain.CS2Extra{}
		if item != nil {
			if item.FloatValue != nil {
				e.Float = *item.FloatValue
				e.HasFloat = true
			}
			e.PaintSeed = item.PaintSeed
			e.DopplerPhase = item.Phase
			for _, s := range item.Stickers {
				e.Stickers = append(e.Stickers, domain.Sticker{
					Name: s.Name,
					Slot: s.Slot,
					Wear: s.Wear,
				})
			}
		}
		return e

	case domain.GameDota2:
		e := domain.Dota2Extra{}
		if item != nil {
			for _, g := range item.Gems {
				e.Gems = append(e.Gems, domain.Gem{Type: g.Type, Name: g.Name})
			}
			e.UnlockedStyles = item.UnlockedStyles
		}
		return e

	case domain.GameTF2:
		e := domain.TF2Extra{}
		if item != nil {
			e.Spells = item.Spells
			e.StrangeParts = item.StrangeParts
			e.UnusualEffect = item.UnusualEffect
		}
		return e

	default:
		// Rust no expone inspección; los traits se detectan por título.
		return domain.RustExtra{}
	}
}

// mapSales convierte las ventas raw a domain.SalesRecord ordenadas de la
// más reciente a la más antigua.
func mapSales(title string, raw []rawSale) []domain.SalesRecord {
	sales := make([]domain.SalesRecord, 0, len(raw))
	for _, r := range raw {
		sales = append(sales, domain.SalesRecord{
			Title:     title,
			Price:     domain.Cents(r.Price),
			Timestamp: time.Unix(r.SoldAt, 0).UTC(),
		})
	}

	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Timestamp.After(sales[j].Timestamp)
	})

	return sales
}
