package storage

// sqlite.go — persistencia de treasures y resúmenes de ciclo.
//
// Estrategia:
//   - `treasures`: UNA fila por item (UPSERT por item_id). Solo decisiones
//     de hold positivas — un item que no se retiene no aporta histórico.
//   - `cycles`: resumen ligero por ciclo de scan. Siempre 1 fila por juego.
//   - Cache en memoria de item_ids retenidos: IsHeld no toca la DB en el
//     camino caliente y se precarga al arrancar.
//   - Prune automático al arrancar: cycles > 30d. Los treasures no se
//     podan — son inventario, no telemetría.

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alejandrodnm/skinbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por item retenido, sin duplicados
CREATE TABLE IF NOT EXISTS treasures (
    item_id        TEXT PRIMARY KEY,
    decision_id    TEXT     NOT NULL,
    title          TEXT     NOT NULL,
    game           TEXT     NOT NULL,
    reason         TEXT     NOT NULL,
    reason_details TEXT     NOT NULL DEFAULT '',
    est_multiplier REAL     NOT NULL DEFAULT 0,
    platforms      TEXT     NOT NULL DEFAULT '',
    decided_at     DATETIME NOT NULL
);

-- Resumen ligero por ciclo de scan: un ciclo cubre varios juegos, así
-- que la clave es (id, game)
CREATE TABLE IF NOT EXISTS cycles (
    id         TEXT NOT NULL,
    game       TEXT NOT NULL,
    scanned_at DATETIME NOT NULL,
    fetched    INTEGER  NOT NULL DEFAULT 0,
    filtered   INTEGER  NOT NULL DEFAULT 0,
    ranked     INTEGER  NOT NULL DEFAULT 0,
    issues     INTEGER  NOT NULL DEFAULT 0,
    best_score REAL     NOT NULL DEFAULT 0,
    PRIMARY KEY (id, game)
);

CREATE INDEX IF NOT EXISTS idx_cycles_at     ON cycles(scanned_at DESC);
CREATE INDEX IF NOT EXISTS idx_treasures_at  ON treasures(decided_at DESC);
CREATE INDEX IF NOT EXISTS idx_treasures_gm  ON treasures(game);
`

// retentionCycles es la retención del histórico de ciclos.
const retentionCycles = 30 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db   *sql.DB
	held map[string]struct{} // item_ids ya retenidos
	mu   sync.Mutex
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema, limpia ciclos antiguos y precarga la cache de held.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{
		db:   db,
		held: make(map[string]struct{}),
	}
	s.pruneOld(context.Background())
	s.warmCache(context.Background())
	return s, nil
}

// SaveTreasure guarda una decisión de hold positiva. Upsert por item: si
// el item ya estaba retenido se actualiza el veredicto más reciente.
func (s *SQLiteStorage) SaveTreasure(ctx context.Context, d domain.HoldDecision) error {
	if !d.ShouldHold {
		return fmt.Errorf("storage.SaveTreasure: decision for %q is not a hold", d.ItemID)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO treasures
			(item_id, decision_id, title, game, reason, reason_details,
			 est_multiplier, platforms, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			decision_id    = excluded.decision_id,
			reason         = excluded.reason,
			reason_details = excluded.reason_details,
			est_multiplier = MAX(est_multiplier, excluded.est_multiplier),
			platforms      = excluded.platforms,
			decided_at     = excluded.decided_at
	`,
		d.ItemID,
		d.ID,
		d.Title,
		string(d.Game),
		string(d.Reason),
		d.ReasonDetails,
		d.EstimatedMultiplier,
		strings.Join(d.RecommendedPlatforms, ","),
		d.DecidedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveTreasure: upsert %s: %w", d.ItemID, err)
	}

	s.mu.Lock()
	s.held[d.ItemID] = struct{}{}
	s.mu.Unlock()
	return nil
}

// IsHeld devuelve true si el item ya tiene un treasure registrado.
func (s *SQLiteStorage) IsHeld(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	_, ok := s.held[itemID]
	s.mu.Unlock()
	if ok {
		return true, nil
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM treasures WHERE item_id = ?)`, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("storage.IsHeld: query %s: %w", itemID, err)
	}
	return exists == 1, nil
}

// GetTreasures devuelve los treasures registrados, el más reciente primero.
func (s *SQLiteStorage) GetTreasures(ctx context.Context) ([]domain.HoldDecision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, decision_id, title, game, reason, reason_details,
		       est_multiplier, platforms, decided_at
		FROM treasures
		ORDER BY decided_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.GetTreasures: query: %w", err)
	}
	defer rows.Close()

	var decisions []domain.HoldDecision
	for rows.Next() {
		var d domain.HoldDecision
		var game, reason, platforms, decidedAt string

		if err := rows.Scan(
			&d.ItemID,
			&d.ID,
			&d.Title,
			&game,
			&reason,
			&d.ReasonDetails,
			&d.EstimatedMultiplier,
			&platforms,
			&decidedAt,
		); err != nil {
			return nil, fmt.Errorf("storage.GetTreasures: scan row: %w", err)
		}

		d.DecidedAt, _ = time.Parse(time.RFC3339, decidedAt)
		d.ShouldHold = true
		d.Game = domain.Game(game)
		d.Reason = domain.HoldReason(reason)
		if platforms != "" {
			d.RecommendedPlatforms = strings.Split(platforms, ",")
		}
		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}

// SaveCycle guarda el resumen de un ciclo de scan.
func (s *SQLiteStorage) SaveCycle(ctx context.Context, c domain.ScanCycle) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO cycles (id, game, scanned_at, fetched, filtered, ranked, issues, best_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID,
		string(c.Game),
		c.ScannedAt.UTC(),
		c.Fetched,
		c.Filtered,
		c.Ranked,
		c.Issues,
		c.BestScore,
	); err != nil {
		return fmt.Errorf("storage.SaveCycle: insert cycle %s: %w", c.ID, err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

// pruneOld elimina ciclos antiguos para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionCycles)
	s.db.ExecContext(ctx, `DELETE FROM cycles WHERE scanned_at < ?`, cutoff)
}

// warmCache precarga los item_ids retenidos, evitando queries redundantes
// de IsHeld tras un reinicio.
func (s *SQLiteStorage) warmCache(ctx context.Context) {
	rows, err := s.db.QueryContext(ctx, `SELECT item_id FROM treasures`)
	if err != nil {
		return
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var id string
		if rows.Scan(&id) == nil {
			s.held[id] = struct{}{}
		}
	}
}
