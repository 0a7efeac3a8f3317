// Package store persists contacts, conversations and messages in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matheus3301/easekit/internal/letter"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by updates that target a missing row.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection for the profile's easekit.db.
type DB struct {
	*sql.DB
	letters letter.Transliterator
}

// Open creates a new SQLite connection with WAL mode and recommended pragmas.
// Initial letters of contacts are computed with the pinyin table.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{DB: db, letters: letter.Pinyin()}, nil
}

// Letters returns the transliteration table used for initial letters.
func (db *DB) Letters() letter.Transliterator {
	return db.letters
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Tx is a write transaction exposing the upserts used by batch ingestion.
type Tx struct {
	tx *sql.Tx
}

// InTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) InTx(fn func(tx *Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
