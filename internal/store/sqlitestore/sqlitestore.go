// Package sqlitestore keeps todos in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/idilsaglam/jot/internal/model"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/store/filelock"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	idx       INTEGER PRIMARY KEY,
	title     TEXT    NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);

INSERT OR IGNORE INTO meta (key, value) VALUES ('next_index', 1);
`

// Store implements store.Store on SQLite. The next index lives in the meta
// table so it survives restarts independently of the todos rows.
type Store struct {
	db     *sql.DB
	path   string
	lock   *filelock.Lock
	logger *log.Logger
}

var _ store.Store = (*Store)(nil)

// Open locks and opens (creating if needed) the database at path.
func Open(ctx context.Context, path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &store.IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	lk, err := filelock.Acquire(path + ".lock")
	if err != nil {
		return nil, &store.IOError{Op: "lock", Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		_ = lk.Release()
		return nil, classify("open", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			_ = lk.Release()
			return nil, classify("exec pragma", path, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = lk.Release()
		logger.Error("failed to initialise todo database", "path", path, "err", err)
		return nil, classify("ensure schema", path, err)
	}
	logger.Debug("todo database opened", "path", path)
	return &Store{db: db, path: path, lock: lk, logger: logger}, nil
}

// dsn makes every transaction start with BEGIN IMMEDIATE, taking sqlite's
// write lock before the first read.
func dsn(path string) string {
	return path + "?_txlock=immediate"
}

func (s *Store) Create(ctx context.Context, title string) (model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Todo{}, store.ErrEmptyTitle
	}

	var t model.Todo
	err := s.inTx(ctx, "create", func(tx *sql.Tx) error {
		var next, highest int
		if err := tx.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'next_index'`).Scan(&next); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(idx), 0) FROM todos`).Scan(&highest); err != nil {
			return err
		}
		if next <= highest {
			next = highest + 1
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO todos (idx, title, completed) VALUES (?, ?, 0)`, next, title); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE meta SET value = ? WHERE key = 'next_index'`, next+1); err != nil {
			return err
		}
		t = model.Todo{Index: next, Title: title}
		return nil
	})
	if err != nil {
		return model.Todo{}, err
	}
	s.logger.Debug("todo created", "index", t.Index, "title", t.Title)
	return t, nil
}

func (s *Store) Complete(ctx context.Context, index int) (model.Todo, error) {
	var t model.Todo
	err := s.inTx(ctx, "complete", func(tx *sql.Tx) error {
		var completed int
		err := tx.QueryRowContext(ctx, `SELECT title, completed FROM todos WHERE idx = ?`, index).Scan(&t.Title, &completed)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: index %d", store.ErrNotFound, index)
		}
		if err != nil {
			return err
		}
		t.Index = index
		t.Completed = true
		if completed != 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `UPDATE todos SET completed = 1 WHERE idx = ?`, index)
		return err
	})
	if err != nil {
		return model.Todo{}, err
	}
	s.logger.Debug("todo completed", "index", index)
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, title, completed FROM todos ORDER BY idx ASC`)
	if err != nil {
		return nil, classify("list", s.path, err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		var completed int
		if err := rows.Scan(&t.Index, &t.Title, &completed); err != nil {
			return nil, classify("scan", s.path, err)
		}
		t.Completed = completed != 0
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", s.path, err)
	}
	return todos, nil
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.Release()
	if dbErr != nil {
		return classify("close", s.path, dbErr)
	}
	if lockErr != nil {
		return &store.IOError{Op: "unlock", Path: s.path, Err: lockErr}
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin "+op, s.path, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		s.logger.Error("todo transaction failed", "op", op, "path", s.path, "err", err)
		return classify(op, s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return classify("commit "+op, s.path, err)
	}
	return nil
}

// classify maps driver errors onto the store error taxonomy.
func classify(op, path string, err error) error {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() & 0xff {
		case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
			return fmt.Errorf("%w: %s: %v", store.ErrCorruptState, path, err)
		}
	}
	return &store.IOError{Op: op, Path: path, Err: err}
}
