// Package sqlite persists the two durable session values (blueprint and
// plan flag) in a small key-value table. Values are stored as JSON and read
// once at startup; corrupted rows are cleared and reported as absent rather
// than failing.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/synchromap/synchromap-go/internal/domain"
)

const (
	keyBlueprint = "blueprint"
	keyPlan      = "plan"
)

// Store implements ports.StateStore on SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the state database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS session_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LoadBlueprint(ctx context.Context) (domain.BirthBlueprint, bool, error) {
	raw, ok, err := s.get(ctx, keyBlueprint)
	if err != nil || !ok {
		return domain.BirthBlueprint{}, false, err
	}

	var bp domain.BirthBlueprint
	if err := json.Unmarshal([]byte(raw), &bp); err != nil {
		s.discardCorrupted(ctx, keyBlueprint, err)
		return domain.BirthBlueprint{}, false, nil
	}
	if err := bp.Validate(); err != nil {
		s.discardCorrupted(ctx, keyBlueprint, err)
		return domain.BirthBlueprint{}, false, nil
	}
	return bp, true, nil
}

func (s *Store) SaveBlueprint(ctx context.Context, bp domain.BirthBlueprint) error {
	raw, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	return s.put(ctx, keyBlueprint, string(raw))
}

func (s *Store) LoadPlan(ctx context.Context) (domain.PlanState, error) {
	raw, ok, err := s.get(ctx, keyPlan)
	if err != nil || !ok {
		return domain.NewPlanState(false), err
	}

	var paid bool
	if err := json.Unmarshal([]byte(raw), &paid); err != nil {
		s.discardCorrupted(ctx, keyPlan, err)
		return domain.NewPlanState(false), nil
	}
	return domain.NewPlanState(paid), nil
}

func (s *Store) SavePlan(ctx context.Context, plan domain.PlanState) error {
	raw, err := json.Marshal(plan.Paid())
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	return s.put(ctx, keyPlan, string(raw))
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO session_state (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// discardCorrupted clears an unparseable row so the next startup starts
// clean. Corruption reads as absence, never as an error.
func (s *Store) discardCorrupted(ctx context.Context, key string, cause error) {
	s.logger.Warn("discarding corrupted state", "key", key, "error", cause)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_state WHERE key = ?`, key); err != nil {
		s.logger.Warn("failed to clear corrupted state", "key", key, "error", err)
	}
}
