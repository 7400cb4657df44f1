// internal/tokenstore/sqlite.go
//
// SQLite-backed token store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql, recorded in _migrations.
//   - Reading/writing the single session row, sealing it when a Sealer is set.

package tokenstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite stores the token in a sqlite database.
type SQLite struct {
	db     *sql.DB
	sealer *Sealer
}

// OpenSQLite opens (and creates if missing) the token database at dsn and
// applies pending migrations. sealer may be nil to store tokens as-is.
func OpenSQLite(dsn string, sealer *Sealer) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, sealer: sealer}, nil
}

// openDB ensures the parent directory exists and opens the database with
// a busy timeout and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// One connection: ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies sql/*.sql in lexical order, each in its own transaction,
// skipping files already listed in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}

// Token returns the stored token. A token that cannot be unsealed (for
// example after WORDLE_TOKEN_KEY changed) is reported as absent.
func (s *SQLite) Token(ctx context.Context) (string, error) {
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session WHERE id=1`).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if s.sealer == nil {
		return stored, nil
	}
	tok, err := s.sealer.Open(stored)
	if err != nil {
		log.Warn().Err(err).Msg("stored token could not be unsealed, ignoring it")
		return "", nil
	}
	return tok, nil
}

func (s *SQLite) SetToken(ctx context.Context, token string) error {
	stored := token
	if s.sealer != nil {
		var err error
		if stored, err = s.sealer.Seal(token); err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO session (id, token, updated_at) VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET token=excluded.token, updated_at=excluded.updated_at`,
		stored, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id=1`); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
