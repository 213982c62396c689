package hold

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
	"github.com/alejandrodnm/skinbot/internal/rarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	mu        sync.Mutex
	saved     []domain.HoldDecision
	held      map[string]bool
	saveErr   error
	isHeldErr error
}

func (f *fakeStorage) SaveTreasure(_ context.Context, d domain.HoldDecision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, d)
	return nil
}

func (f *fakeStorage) IsHeld(_ context.Context, itemID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held[itemID], f.isHeldErr
}

func (f *fakeStorage) GetTreasures(context.Context) ([]domain.HoldDecision, error) {
	return nil, nil
}

func (f *fakeStorage) SaveCycle(context.Context, domain.ScanCycle) error {
	return nil
}

func cs2Item(id string, extra domain.CS2Extra) domain.Listing {
	return domain.Listing{
		ID:    id,
		Title: "AK-47 | Case Hardened (Field-Tested)",
		Game:  domain.GameCS2,
		Price: 5000,
		Extra: extra,
	}
}

func waitPersist(t *testing.T, ch <-chan error) error {
	t.Helper()
	require.NotNil(t, ch)
	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal("persistence did not complete")
		return nil
	}
}

func TestDecide_LowFloatOverride(t *testing.T) {
	e := New(DefaultConfig(), nil, nil, nil)

	d, _ := e.Decide(context.Background(), cs2Item("i1", domain.CS2Extra{
		Float: 0.0004, HasFloat: true,
	}))

	assert.True(t, d.ShouldHold)
	assert.Equal(t, domain.HoldLowFloat, d.Reason)
	assert.Equal(t, 1.8, d.EstimatedMultiplier)
	assert.Equal(t, []string{"csfloat", "skinport", "buff163"}, d.RecommendedPlatforms)
}

func TestDecide_FirstOverrideWins(t *testing.T) {
	// Low float y blue gem a la vez: gana el primero de la cadena.
	e := New(DefaultConfig(), nil, nil, nil)

	d, _ := e.Decide(context.Background(), cs2Item("i1", domain.CS2Extra{
		Float: 0.0004, HasFloat: true, PaintSeed: 387,
	}))

	assert.Equal(t, domain.HoldLowFloat, d.Reason)
	assert.Equal(t, 1.8, d.EstimatedMultiplier)
}

func TestDecide_OverridesWorkWithoutEvaluator(t *testing.T) {
	e := New(DefaultConfig(), nil, nil, nil)

	tests := []struct {
		name   string
		l      domain.Listing
		reason domain.HoldReason
	}{
		{
			"doppler", cs2Item("d", domain.CS2Extra{DopplerPhase: "Sapphire"}),
			domain.HoldDopplerPhase,
		},
		{
			"blue gem", cs2Item("b", domain.CS2Extra{PaintSeed: 955}),
			domain.HoldBlueGem,
		},
		{
			"sticker", cs2Item("s", domain.CS2Extra{
				Stickers: []domain.Sticker{{Name: "Sticker | Titan | Katowice 2014"}},
			}),
			domain.HoldRareSticker,
		},
		{
			"dota gem", domain.Listing{
				ID: "g", Title: "Genuine Weather Effect", Game: domain.GameDota2,
				Extra: domain.Dota2Extra{Gems: []domain.Gem{{Type: "ethereal", Name: "Snowfall"}}},
			},
			domain.HoldRareGem,
		},
		{
			"tf2 spell", domain.Listing{
				ID: "t", Title: "Strange Rocket Launcher", Game: domain.GameTF2,
				Extra: domain.TF2Extra{Spells: []string{"Exorcism"}},
			},
			domain.HoldSpell,
		},
		{
			"rust glow", domain.Listing{
				ID: "r", Title: "Neon Door", Game: domain.GameRust,
				Extra: domain.RustExtra{},
			},
			domain.HoldGlowSkin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := e.Decide(context.Background(), tt.l)
			assert.True(t, d.ShouldHold)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecide_EvaluatorJackpotFallback(t *testing.T) {
	// El seed 179 no está en la tabla de overrides pero sí en la del
	// evaluador: ningún override dispara y el fallback jackpot retiene.
	e := New(DefaultConfig(), rarity.NewEvaluator(), nil, nil)

	d, _ := e.Decide(context.Background(), cs2Item("j1", domain.CS2Extra{
		PaintSeed: 179,
	}))

	assert.True(t, d.ShouldHold)
	assert.Equal(t, domain.HoldJackpot, d.Reason)
	assert.InDelta(t, 1.50, d.EstimatedMultiplier, 1e-9)
	assert.Contains(t, d.ReasonDetails, "Blue Gem seed 179")
}

func TestDecide_EvaluatorMinMultiplier(t *testing.T) {
	e := New(DefaultConfig(), rarity.NewEvaluator(), nil, nil)

	// Float 0.005 (+0.15) + Phase 2 (+0.10) = 1.25 ≥ 1.20, sin override:
	// float dentro de los límites y fase no-gema.
	d, _ := e.Decide(context.Background(), domain.Listing{
		ID:    "m1",
		Title: "Karambit | Doppler (Factory New)",
		Game:  domain.GameCS2,
		Price: 90000,
		Extra: domain.CS2Extra{Float: 0.005, HasFloat: true, DopplerPhase: "Phase 2"},
	})

	assert.True(t, d.ShouldHold)
	assert.Equal(t, domain.HoldManualReview, d.Reason)
	assert.InDelta(t, 1.25, d.EstimatedMultiplier, 1e-9)
}

func TestDecide_NoHoldBelowThreshold(t *testing.T) {
	e := New(DefaultConfig(), rarity.NewEvaluator(), nil, nil)

	d, ch := e.Decide(context.Background(), domain.Listing{
		ID:    "n1",
		Title: "AK-47 | Redline (Field-Tested)",
		Game:  domain.GameCS2,
		Price: 1200,
		Extra: domain.CS2Extra{Float: 0.25, HasFloat: true},
	})

	assert.False(t, d.ShouldHold)
	assert.Equal(t, domain.HoldNone, d.Reason)
	assert.Nil(t, ch)
	assert.Empty(t, e.Treasures())
}

func TestDecide_PersistsTreasure(t *testing.T) {
	store := &fakeStorage{held: map[string]bool{}}
	e := New(DefaultConfig(), nil, store, nil)

	d, ch := e.Decide(context.Background(), cs2Item("p1", domain.CS2Extra{
		DopplerPhase: "Ruby",
	}))

	require.True(t, d.ShouldHold)
	assert.NoError(t, waitPersist(t, ch))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.saved, 1)
	assert.Equal(t, "p1", store.saved[0].ItemID)
}

func TestDecide_PersistenceFailureDoesNotInvalidateDecision(t *testing.T) {
	store := &fakeStorage{held: map[string]bool{}, saveErr: errors.New("disk full")}
	e := New(DefaultConfig(), nil, store, nil)

	d, ch := e.Decide(context.Background(), cs2Item("p2", domain.CS2Extra{
		DopplerPhase: "Ruby",
	}))

	assert.True(t, d.ShouldHold)
	err := waitPersist(t, ch)
	assert.Error(t, err) // observable, pero la decisión sigue siendo válida
	assert.Len(t, e.Treasures(), 1)
}

func TestDecide_AlreadyHeldSkipsDuplicateWrite(t *testing.T) {
	store := &fakeStorage{held: map[string]bool{"p3": true}}
	e := New(DefaultConfig(), nil, store, nil)

	_, ch := e.Decide(context.Background(), cs2Item("p3", domain.CS2Extra{
		DopplerPhase: "Ruby",
	}))

	assert.NoError(t, waitPersist(t, ch))
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.saved)
}

func TestStats(t *testing.T) {
	e := New(DefaultConfig(), nil, nil, nil)

	e.Decide(context.Background(), cs2Item("a", domain.CS2Extra{DopplerPhase: "Ruby"}))
	e.Decide(context.Background(), cs2Item("b", domain.CS2Extra{Float: 0.0002, HasFloat: true}))
	e.Decide(context.Background(), cs2Item("c", domain.CS2Extra{Float: 0.30, HasFloat: true}))
	e.Decide(context.Background(), cs2Item("d", domain.CS2Extra{Float: 0.40, HasFloat: true}))

	stats := e.Stats()
	assert.Equal(t, 4, stats.TotalProcessed)
	assert.Equal(t, 2, stats.TotalHeld)
	assert.InDelta(t, 50.0, stats.HoldRatePct, 1e-9)
	assert.Equal(t, 1, stats.ByReason[domain.HoldDopplerPhase])
	assert.Equal(t, 1, stats.ByReason[domain.HoldLowFloat])
}
