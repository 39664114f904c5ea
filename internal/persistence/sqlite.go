package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/persistence/migrations"
	"github.com/preston-bernstein/dread-tracker/internal/persistence/sqlitemigrate"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

// SQLiteGateway keeps the state document in a key/value table.
type SQLiteGateway struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens a SQLite database at path and applies embedded migrations.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteGateway{sqlDB: sqlDB, now: time.Now}, nil
}

func (g *SQLiteGateway) Load(ctx context.Context) (state.State, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, err
	}
	if g == nil || g.sqlDB == nil {
		return state.State{}, fmt.Errorf("storage is not configured")
	}
	var payload []byte
	row := g.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, StateKey)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.State{}, domain.ErrNotFound
		}
		return state.State{}, fmt.Errorf("query state: %w", err)
	}
	return state.Decode(payload)
}

func (g *SQLiteGateway) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g == nil || g.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	payload, err := state.Encode(st)
	if err != nil {
		return err
	}
	_, err = g.sqlDB.ExecContext(ctx, `
INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, payload, g.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (g *SQLiteGateway) Close() error {
	if g == nil || g.sqlDB == nil {
		return nil
	}
	return g.sqlDB.Close()
}
