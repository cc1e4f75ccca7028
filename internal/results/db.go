// internal/results/db.go
//
// SQLite helpers for the round results store.
// Responsibilities:
//   - Opening an in-memory SQLite database shared by every pooled connection.
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//
// Nothing here touches disk: the database lives as long as the process.

package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DefaultDSN names a shared-cache in-memory database.
const DefaultDSN = "file:mastermind?mode=memory&cache=shared"

var memSeq atomic.Int64

// MemoryDSN returns a DSN for a fresh, private in-memory database.
func MemoryDSN() string {
	return fmt.Sprintf("file:mastermind_%d?mode=memory&cache=shared", memSeq.Add(1))
}

// openDB opens the database with a busy timeout and enforced foreign keys.
// The pool is pinned to one connection so the in-memory database is never
// dropped between queries.
func openDB(dsn string) (*sql.DB, error) {
	if !strings.Contains(dsn, "mode=memory") && dsn != ":memory:" {
		return nil, fmt.Errorf("results: only in-memory databases are supported, got %q", dsn)
	}
	sep := "&"
	if !strings.Contains(dsn, "?") {
		sep = "?"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return db, nil
}

// migrate applies every *.sql file in fsys in lexical order, each inside
// its own transaction, skipping files already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
