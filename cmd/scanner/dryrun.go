package main

import (
	"context"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
)

// fixtureProvider sirve un batch estático de listings y ventas para correr
// el pipeline sin red.
type fixtureProvider struct {
	listings map[domain.Game][]domain.Listing
	sales    map[string][]domain.SalesRecord
}

func newFixtureProvider() *fixtureProvider {
	now := time.Now().UTC()
	f := &fixtureProvider{
		listings: map[domain.Game][]domain.Listing{
			domain.GameCS2: {
				{
					ID:             "fix-cs2-1",
					Title:          "AK-47 | Redline (Field-Tested)",
					Game:           domain.GameCS2,
					Price:          1550,
					SuggestedPrice: 1980,
					TradeLockHours: 120,
					Extra:          domain.CS2Extra{Float: 0.23, HasFloat: true},
				},
				{
					ID:             "fix-cs2-2",
					Title:          "M4A4 | Asiimov (Factory New)",
					Game:           domain.GameCS2,
					Price:          4200,
					SuggestedPrice: 5400,
					Extra:          domain.CS2Extra{Float: 0.0009, HasFloat: true},
				},
				{
					ID:             "fix-cs2-3",
					Title:          "★ Karambit | Doppler (Factory New)",
					Game:           domain.GameCS2,
					Price:          82000,
					SuggestedPrice: 99900,
					Extra:          domain.CS2Extra{Float: 0.012, HasFloat: true, DopplerPhase: "Phase 2"},
				},
			},
			domain.GameTF2: {
				{
					ID:             "fix-tf2-1",
					Title:          "Strange Rocket Launcher",
					Game:           domain.GameTF2,
					Price:          900,
					SuggestedPrice: 1200,
					Extra:          domain.TF2Extra{Spells: []string{"Exorcism"}},
				},
			},
		},
		sales: make(map[string][]domain.SalesRecord),
	}

	for _, s := range []struct {
		title string
		price domain.Cents
		n     int
	}{
		{"AK-47 | Redline (Field-Tested)", 1600, 8},
		{"M4A4 | Asiimov (Factory New)", 4500, 6},
		{"★ Karambit | Doppler (Factory New)", 88000, 12},
		{"Strange Rocket Launcher", 950, 7},
	} {
		f.sales[s.title] = salesAround(s.title, s.price, s.n, now)
	}
	return f
}

// salesAround genera n ventas alrededor del precio dado, la más reciente
// primero.
func salesAround(title string, price domain.Cents, n int, now time.Time) []domain.SalesRecord {
	sales := make([]domain.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		delta := domain.Cents(i%3-1) * price / 50
		sales = append(sales, domain.SalesRecord{
			Title:     title,
			Price:     price + delta,
			Timestamp: now.Add(-time.Duration(i*6) * time.Hour),
		})
	}
	return sales
}

func (f *fixtureProvider) FetchDiscounted(_ context.Context, game domain.Game, minPrice, maxPrice domain.Cents, limit int) ([]domain.Listing, error) {
	var out []domain.Listing
	for _, l := range f.listings[game] {
		if l.Price < minPrice || l.Price > maxPrice {
			continue
		}
		out = append(out, l)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fixtureProvider) FetchSalesHistory(_ context.Context, _ domain.Game, title string) ([]domain.SalesRecord, error) {
	return f.sales[title], nil
}
